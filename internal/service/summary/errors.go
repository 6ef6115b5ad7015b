package summary

import "errors"

// Sentinel errors for the summary service layer.
var (
	ErrOwnerRequired = errors.New("user id is required")
	ErrPartialRange  = errors.New("both start and end must be supplied, or neither")
	ErrInvalidRange  = errors.New("start must not be after end")
	ErrRangeTooLong  = errors.New("range is too long")
)
