package repository

import "errors"

// ErrNotFound distinguishes a missing record from a query failure.
var ErrNotFound = errors.New("record not found")
