package models

import "time"

// User represents a registered user.
//
// A user is created the first time an email is referenced by a login link,
// a login, or as the owner of a new list. Users are never mutated.
type User struct {
	// Email is the user's email address and primary key.
	Email string

	// CreatedAt is the Unix timestamp when the user was first referenced.
	CreatedAt int64
}

// NewUser creates a user for the given email.
func NewUser(email string) *User {
	return &User{
		Email:     email,
		CreatedAt: time.Now().Unix(),
	}
}
