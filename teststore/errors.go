package teststore

import "errors"

// ErrEmptyPath indicates the store was configured without a file path.
var ErrEmptyPath = errors.New("teststore: file path cannot be empty")
