package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound    = errors.New("event not found")
	ErrMissingID   = errors.New("event id must not be empty")
	ErrDuplicateID = errors.New("event id already exists")
)
