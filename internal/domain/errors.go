package domain

import "errors"

// Sentinel errors used across all layers.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidSnapshot = errors.New("invalid snapshot")
	ErrInvalidSection  = errors.New("invalid section")
	ErrUnknownList     = errors.New("unknown list")
	ErrUnknownField    = errors.New("unknown field")
)
