// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

// Call failures. Completions carry these wrapped; match with [errors.Is].
var (
	// ErrNetwork is a transport failure: no HTTP response was received.
	ErrNetwork = errors.New("inventory service unreachable")
	// ErrBadRequest is returned for 400 responses.
	ErrBadRequest = errors.New("bad request")
	// ErrForbidden is returned for 403 responses, which the inventory
	// service sends when a reply would be too large.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("not found")
	// ErrGone is returned for 410 responses: the target no longer exists.
	ErrGone = errors.New("gone")
	// ErrServer is returned for 5xx responses.
	ErrServer = errors.New("inventory service error")
	// ErrMalformed is returned when a reply body is not a JSON map.
	ErrMalformed = errors.New("malformed reply")
	// ErrUnavailable is returned synchronously when the capability needed
	// for a call was not granted.
	ErrUnavailable = errors.New("capability unavailable")
	// ErrShuttingDown is returned once the client is closed.
	ErrShuttingDown = errors.New("client shutting down")
)
