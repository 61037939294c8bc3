// Package common contains shared constants and sentinel errors used across
// Launchbook components.
package common

// CredentialKey is the well-known key under which the session credential is
// stored and retrieved. The credential gate and the login flow share it.
const CredentialKey = "login"

// AuthHeaderName is the HTTP header carrying the session token on outbound
// protected requests.
const AuthHeaderName = "Authorization"
