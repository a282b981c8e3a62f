// Package api implements the HTTP client for the tracker REST service.
//
// # Overview
//
// Every store in the application talks to the server through this package.
// The Tracker interface mirrors the endpoints the client consumes; *Client
// is the production implementation and tests substitute fakes.
//
// # Conventions
//
// All requests carry a JSON Accept header, a User-Agent, a uuid
// X-Request-ID, and (when a token source is configured) a bearer token.
// Responses are JSON. Mutation endpoints acknowledge with a result boolean
// rather than the HTTP status alone: a 200 carrying result=false is a
// business rejection and is reported as ErrRejected, which callers treat
// exactly like a transport failure.
//
// # Error Handling
//
// The client never retries. Errors are wrapped with the failing operation
// and bubble to the stores, which log them and keep their previous state.
package api
