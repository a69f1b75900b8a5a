package repositories

import "errors"

// ErrNotFound is returned when a requested record does not exist. Any other
// storage error propagates uncaught to the caller.
var ErrNotFound = errors.New("record not found")
