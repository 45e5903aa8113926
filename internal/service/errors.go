package service

import "errors"

// Sentinel errors shared across services. Handlers map these onto HTTP
// statuses; anything unrecognized becomes a 500.
var (
	// ErrNotFound covers both genuinely missing records and private recipes
	// the caller has no grant for: existence is never confirmed to an
	// unauthorized caller.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the caller is known to be allowed to see
	// the record but lacks the capability for the requested operation.
	ErrForbidden = errors.New("forbidden")

	// ErrSelfShare rejects sharing a recipe with its own author.
	ErrSelfShare = errors.New("cannot share a recipe with yourself")

	// ErrRecipientNotFound means no user exists for the share target email.
	ErrRecipientNotFound = errors.New("no user found with that email address")

	// ErrModelResponse means the upstream model returned output that does not
	// decode into the expected shape. Never partially applied.
	ErrModelResponse = errors.New("malformed model response")
)
