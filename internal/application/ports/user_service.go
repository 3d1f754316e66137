package ports

import (
	"context"

	"image-hosting-api/internal/domain/account_type"
	"image-hosting-api/internal/domain/user"
)

type (
	Registration struct {
		Username      string
		Email         string
		Password      string
		AccountTypeID uint64
	}

	UserService interface {
		FindUserByID(ctx context.Context, uuid user.UUID) (*user.User, error)
		FindByUsername(ctx context.Context, username string) (*user.User, error)
		RegisterUser(ctx context.Context, in Registration) (*user.User, error)
		ChangePassword(ctx context.Context, uuid user.UUID, oldPassword, newPassword string) error
		ListAccountTypes(ctx context.Context) (account_type.AccountTypes, error)
	}
)
