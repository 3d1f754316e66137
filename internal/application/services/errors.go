package services

import (
	"errors"
	"fmt"

	"image-hosting-api/internal/domain"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrFailedToGenerateToken = errors.New("failed to generate token")
	ErrUnauthenticated       = errors.New("caller is not a known user")

	ErrAccountTypeRequired = fmt.Errorf("%w: account type does not exist", domain.ErrValidation)
	ErrPasswordTooShort    = fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, MinPasswordLen)
	ErrWrongPassword       = fmt.Errorf("%w: old password is not correct", domain.ErrValidation)
	ErrInvalidTTL          = fmt.Errorf(
		"%w: expiration_time_seconds must be between %d and %d",
		domain.ErrValidation, MinTemporaryLinkTTL, MaxTemporaryLinkTTL,
	)
	ErrInvalidFileKind     = fmt.Errorf("%w: file kind must be %q or %q", domain.ErrValidation, FileKindImage, FileKindThumbnail)
	ErrUnsupportedFormat   = fmt.Errorf("%w: image must be jpeg or png", domain.ErrValidation)
	ErrImageNotFound       = fmt.Errorf("image %w", domain.ErrNotFound)
	ErrNotVisible          = fmt.Errorf("resource %w", domain.ErrNotFound)
	ErrThumbnailNotFound   = fmt.Errorf("thumbnail %w", domain.ErrNotFound)
	ErrLinkNotAllowed      = fmt.Errorf("%w: account type does not allow temporary links", domain.ErrForbidden)
)
