package entity

import "errors"

var (
	// ErrInvalidFormat is returned when a chat line is not a pair URL.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrResolution is returned when the price API yields no usable pair.
	ErrResolution = errors.New("failed to obtain name from pair address")
	// ErrMissingName marks a record that would be persisted without a name.
	ErrMissingName = errors.New("missing base token name")
	// ErrMalformedUpdate is returned when an inbound update lacks required fields.
	ErrMalformedUpdate = errors.New("malformed update")
	// ErrNoPayload is returned when the inbound body is not a JSON document.
	ErrNoPayload = errors.New("no JSON payload")
)
