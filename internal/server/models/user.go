// Package models holds the server-side persistence models.
package models

// User is a traveller account. Accounts are created on first login with
// a given email; there is no password, the email is the identity.
type User struct {
	ID    string
	Email string
}
