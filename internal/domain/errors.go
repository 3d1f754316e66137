// Package domain holds the error categories shared by every entity package.
// Concrete errors wrap one of these so callers can classify with errors.Is.
package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrDerivation         = errors.New("thumbnail derivation failed")
	ErrStorageUnavailable = errors.New("object storage unavailable")
)
