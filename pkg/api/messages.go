// Package api holds the request and response messages of the superlists.v1
// services. Messages travel as JSON; see Codec.
package api

// User is an account identified by email.
type User struct {
	Email     string `json:"email"`
	CreatedAt int64  `json:"created_at"`
}

// List is a to-do list. Name is the text of its first item.
type List struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	OwnerEmail string   `json:"owner_email,omitempty"`
	SharedWith []string `json:"shared_with,omitempty"`
	CreatedAt  int64    `json:"created_at"`
}

// Item is one entry of a list.
type Item struct {
	ID        int64  `json:"id"`
	ListID    int64  `json:"list_id"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"created_at"`
}

type CreateListRequest struct {
	Text string `json:"text"`
}

type CreateListResponse struct {
	List  *List   `json:"list"`
	Items []*Item `json:"items"`
}

type GetListRequest struct {
	ListID int64 `json:"list_id"`
}

type GetListResponse struct {
	List  *List   `json:"list"`
	Items []*Item `json:"items"`
}

type AddItemRequest struct {
	ListID int64  `json:"list_id"`
	Text   string `json:"text"`
}

type AddItemResponse struct {
	Item *Item `json:"item"`
}

type ShareListRequest struct {
	ListID int64  `json:"list_id"`
	Email  string `json:"email" validate:"required,email"`
}

type ShareListResponse struct {
	List *List `json:"list"`
}

type MyListsRequest struct{}

type MyListsResponse struct {
	Owned  []*List `json:"owned"`
	Shared []*List `json:"shared"`
}

type RequestLoginLinkRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type RequestLoginLinkResponse struct{}

// LoginRequest exchanges the token of a login link for a session.
type LoginRequest struct {
	Token string `json:"token" validate:"required"`
}

type LoginResponse struct {
	User *User `json:"user"`
	// Token is the session token to send as "Authorization: Bearer <token>".
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}
