// Package client contains client-side building blocks for FluxPad.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) to talk
//     to the FluxPad backend: Register/Login/Me, account deletion, Ping,
//     and read access to datasets and query history.
//  2. A concrete HTTP implementation (see HTTPClient) that attaches the
//     access token as a bearer header, transparently refreshes it once on
//     a 401 response, and maps HTTP status codes to sentinel errors.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnavailable, ErrUnauthorized, ErrEmailTaken,
// ErrNotFound, ErrBadRequest.
package client
