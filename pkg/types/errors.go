// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Error taxonomy for upstream interactions. Callers match with errors.Is;
// wrapped context never includes raw upstream bodies (those go to logs).
var (
	// ErrNotFound marks an explicit upstream 404 or an empty singleton
	// result.
	ErrNotFound = errors.New("not found")

	// ErrUpstreamTimeout marks a request that exceeded the configured
	// upstream timeout.
	ErrUpstreamTimeout = errors.New("upstream timeout")

	// ErrUpstreamUnavailable marks a transport failure or non-2xx status
	// other than 404.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrMalformedPayload marks a top-level payload that could not be
	// parsed at all. Field-level oddities are defaulted, not escalated.
	ErrMalformedPayload = errors.New("malformed upstream payload")

	// ErrInvalidIdentifier marks a caller-supplied id that fails the
	// type's shape check before any network call is made.
	ErrInvalidIdentifier = errors.New("invalid identifier shape")
)
