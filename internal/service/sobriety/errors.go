package sobriety

import "errors"

// Sentinel errors for the sobriety service layer.
var (
	ErrNotFound          = errors.New("clock not found")
	ErrUserRequired      = errors.New("user id is required")
	ErrAddictionRequired = errors.New("addiction type is required")
	ErrStartRequired     = errors.New("start date is required")
)
