package entry

import "errors"

// Sentinel errors for the entry service layer.
var (
	ErrOwnerRequired    = errors.New("user id is required")
	ErrCategoryRequired = errors.New("category is required")
)
