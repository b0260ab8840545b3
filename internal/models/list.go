package models

// List represents a to-do list.
type List struct {
	// ID is the surrogate identifier assigned by the store.
	ID int64

	// OwnerEmail is the email of the user who created the list.
	// Empty for anonymous lists.
	OwnerEmail string

	// SharedWith holds the emails of users the list is shared with,
	// ordered by email. Populated by single-list lookups only.
	SharedWith []string

	// Name is the text of the list's first item (lowest item ID).
	// Empty when the list has no items; see HasName.
	Name string

	// CreatedAt is the Unix timestamp when the list was created.
	CreatedAt int64
}

// HasName reports whether the list has a first item to be named after.
// Item text is never empty, so an empty Name always means "no items".
func (l *List) HasName() bool {
	return l.Name != ""
}

// IsOwnedBy reports whether email owns the list.
func (l *List) IsOwnedBy(email string) bool {
	return l.OwnerEmail != "" && l.OwnerEmail == email
}

// IsSharedWith reports whether email is one of the list's sharees.
func (l *List) IsSharedWith(email string) bool {
	for _, e := range l.SharedWith {
		if e == email {
			return true
		}
	}
	return false
}

// Item represents a single entry on a list.
// Items are ordered by ID, which follows creation order.
type Item struct {
	ID     int64
	ListID int64

	// Text is the item text. Never empty, unique within its list.
	Text string

	CreatedAt int64
}

// VisibleLists groups the lists a user can see.
// Owned and Shared are disjoint: a list the user owns never appears in
// Shared, even if the user was added as a sharee.
type VisibleLists struct {
	Owned  []*List
	Shared []*List
}
