package profile

import "errors"

var (
	// ErrMissingUserID indicates a required account identifier was absent.
	ErrMissingUserID = errors.New("user id is required")
)
