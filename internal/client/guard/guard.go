// Package guard decides which screen an entry point should land on
// based on the current session state. Protected screens require a
// verified identity; the landing screen only checks for a stored token.
package guard

import (
	"context"
	"errors"

	"github.com/fluxpad/fluxpad/internal/client/client"
)

type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateChecking        State = "checking"
	StateAuthenticated   State = "authenticated"
	StateError           State = "error"
)

type Route string

const (
	RouteLanding   Route = "landing"
	RouteLogin     Route = "login"
	RouteDashboard Route = "dashboard"
)

// identityAPI is the slice of the API client the guard needs.
type identityAPI interface {
	HasSession() bool
	Me(ctx context.Context) (*client.Identity, error)
	Logout(ctx context.Context) error
}

type Guard struct {
	api      identityAPI
	state    State
	identity *client.Identity
}

func New(api identityAPI) *Guard {
	return &Guard{api: api, state: StateUnauthenticated}
}

func (g *Guard) State() State {
	return g.state
}

// Identity returns the verified identity, or nil when not authenticated.
func (g *Guard) Identity() *client.Identity {
	return g.identity
}

// EnterProtected resolves access to a protected screen.
//
// With no stored token it redirects to login immediately, without a
// network call. With a token it verifies the session against the
// backend: an unauthorized answer purges the session and redirects to
// login; a transport failure keeps the session and reports StateError
// so the caller can retry.
func (g *Guard) EnterProtected(ctx context.Context) (Route, error) {
	if !g.api.HasSession() {
		g.state = StateUnauthenticated
		g.identity = nil
		return RouteLogin, nil
	}

	g.state = StateChecking

	identity, err := g.api.Me(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			g.state = StateUnauthenticated
			g.identity = nil
			return RouteLogin, nil
		}
		g.state = StateError
		return RouteLanding, err
	}

	g.state = StateAuthenticated
	g.identity = identity
	return RouteDashboard, nil
}

// EnterLanding resolves the landing screen. A stored token redirects
// to the dashboard optimistically, without verifying it; a stale token
// bounces back to login on the first protected call.
func (g *Guard) EnterLanding() Route {
	if g.api.HasSession() {
		return RouteDashboard
	}
	return RouteLanding
}

// SignOut discards the session and resets the guard.
func (g *Guard) SignOut(ctx context.Context) error {
	if err := g.api.Logout(ctx); err != nil {
		return err
	}
	g.state = StateUnauthenticated
	g.identity = nil
	return nil
}

// SetAuthenticated records a fresh identity after login or register.
func (g *Guard) SetAuthenticated(identity *client.Identity) {
	g.state = StateAuthenticated
	g.identity = identity
}
