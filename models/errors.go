package models

import "errors"

// ErrNotFound is returned by stores when a key has never been written.
var ErrNotFound = errors.New("not found")
