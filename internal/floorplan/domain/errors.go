package domain

import "errors"

var (
	ErrInvalidEnvelope = errors.New("invalid envelope")
	ErrInvalidCount    = errors.New("invalid count")
	ErrMalformedLayout = errors.New("malformed layout")
	ErrLayoutNotFound  = errors.New("layout not found")
)

var ErrNameRequired = errors.New("layout name required")
