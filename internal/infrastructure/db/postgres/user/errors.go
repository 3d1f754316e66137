package user

import (
	"fmt"

	"image-hosting-api/internal/domain"
)

var (
	ErrUsernameAlreadyExists = fmt.Errorf("%w: a user with this username already exists", domain.ErrConflict)
	ErrEmailAlreadyExists    = fmt.Errorf("%w: a user with this email address already exists", domain.ErrConflict)
	ErrUnknownAccountType    = fmt.Errorf("%w: account type does not exist", domain.ErrValidation)
)
