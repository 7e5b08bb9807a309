package repository

import "errors"

// ErrInvalidImageURL is returned when a URL fails validation before any
// network call is attempted.
var ErrInvalidImageURL = errors.New("invalid image URL")
