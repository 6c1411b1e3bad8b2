// Package session abstracts the client-local persistent token cell. The
// store is injected into the route guard and the shell rather than accessed
// as ambient global state, which keeps the session state machine testable
// in isolation.
package session

import "context"

// Store holds the browser-resident representation of "logged in": the access
// token string. Presence of a token is necessary but not sufficient for
// being authenticated; the server stays authoritative.
type Store interface {
	// Get returns the stored access token, or "" when no session exists.
	Get(ctx context.Context) (string, error)

	// Set persists the access token, replacing any previous one.
	Set(ctx context.Context, token string) error

	// Clear destroys the session.
	Clear(ctx context.Context) error
}
