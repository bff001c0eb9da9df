// Package session loads and validates the OAuth credential file used to call
// the translation provider, including account-ID extraction from token
// claims.
package session
