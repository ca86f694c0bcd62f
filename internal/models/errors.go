package models

import "errors"

// Error constants shared across the panel
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidID          = errors.New("invalid id")
	ErrMissingParentID    = errors.New("parent id is required for child rows")
	ErrInvalidTransition  = errors.New("invalid form state transition")
	ErrDeleteNotConfirmed = errors.New("delete was not confirmed")
)
