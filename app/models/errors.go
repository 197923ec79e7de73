package models

import "errors"

// Business errors surfaced by the query layer. Handlers map these to HTTP
// statuses; anything else is an unexpected failure and becomes a 500.
var (
	// ErrNotFound means the target resource id does not resolve. Existence is
	// always checked before authorization, so a missing resource never leaks
	// as a Forbidden.
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden means the caller is authenticated but not authorized for
	// the resource. Nothing is mutated.
	ErrForbidden = errors.New("forbidden")

	// ErrRoomUnavailable means an assign/reassign found the target room
	// unavailable or already referenced by a tenant. The whole transaction is
	// rolled back.
	ErrRoomUnavailable = errors.New("room is not available")

	// ErrRoomMismatch means the target room does not belong to the property
	// given in the request.
	ErrRoomMismatch = errors.New("room does not belong to the specified property")

	// ErrInvalidTransition means a payment status change is not permitted from
	// the payment's current status.
	ErrInvalidTransition = errors.New("invalid payment status transition")

	// ErrEmailTaken means a registration used an email that already exists.
	ErrEmailTaken = errors.New("email is already registered")
)
