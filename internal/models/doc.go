// Package models defines the core domain models for Superlists.
//
// # Models
//
//   - User: an identity keyed by email. There is no password; users log in
//     through one-time login links backed by Token.
//   - Token: maps an opaque uid to an email for passwordless login.
//   - List: a to-do list, optionally owned and optionally shared.
//   - Item: a single entry on a list, unique by text within that list.
//
// # Design Principles
//
// 1. **Email is the identity key**: relationships reference users by email.
// 2. **Derived list names**: a list is named after its first item, looked up
// explicitly by the store rather than stored.
// 3. **Avoid circular references**: use IDs and emails instead of pointers.
// 4. **No last-login tracking**: the identity store never records when a
// user authenticated.
package models
