package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound          = errors.New("not found")
	ErrUnknownCategory   = errors.New("unknown food category")
	ErrUnknownUnit       = errors.New("unknown temperature unit")
	ErrInvalidInput      = errors.New("invalid conversion input")
	ErrInvalidTransition = errors.New("invalid timer transition")
	ErrConversionFailed  = errors.New("conversion failed")
)
