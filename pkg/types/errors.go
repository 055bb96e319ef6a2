package types

import "errors"

var (
	ErrUnknownQuery     = errors.New("unknown catalog query")
	ErrUnknownReport    = errors.New("unknown report")
	ErrMissingParameter = errors.New("missing required parameter")
	ErrConstraint       = errors.New("constraint violation")

	ErrProviderNotFound = errors.New("provider not found")
	ErrReceiverNotFound = errors.New("receiver not found")
	ErrListingNotFound  = errors.New("food listing not found")
	ErrClaimNotFound    = errors.New("claim not found")
)
