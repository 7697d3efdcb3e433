package domain

import "errors"

var (
	ErrNotFound         = errors.New("resource not found")
	ErrSessionNotLoaded = errors.New("review session has no invoice loaded")
	ErrStaleSession     = errors.New("review session superseded by a newer invoice")
	ErrRowNotFound      = errors.New("line item not found in session")
	ErrUnknownField     = errors.New("unknown editable field")
	ErrValidationFailed = errors.New("invoice failed validation")
	ErrInvalidAction    = errors.New("action must be approve or reject")
	ErrActionFailed     = errors.New("invoice action failed")
	ErrUpdateFailed     = errors.New("invoice update failed")
)
