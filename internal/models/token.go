package models

// Token links an email to the uid embedded in a login link.
//
// There is at most one token per email: requesting another login link for
// the same email reuses the existing uid. Tokens do not expire.
type Token struct {
	Email string

	// UID is an opaque random identifier, unique across all tokens.
	UID string

	CreatedAt int64
}
