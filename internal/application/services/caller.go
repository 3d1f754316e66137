package services

import (
	"context"
	"fmt"

	"image-hosting-api/internal/domain/account_type"
	"image-hosting-api/internal/domain/user"
)

// callerLoader resolves an authenticated identity into a user with its tier.
type callerLoader struct {
	userRepository        user.Repository
	accountTypeRepository account_type.Repository
}

func (cl callerLoader) load(ctx context.Context, uuid user.UUID) (*user.User, error) {
	u, err := cl.userRepository.FetchUserByID(ctx, uuid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUnauthenticated
	}

	tier, err := cl.accountTypeRepository.FetchAccountType(ctx, u.AccountTypeID)
	if err != nil {
		return nil, err
	}
	if tier == nil {
		return nil, fmt.Errorf("user %s: %w", u.UUID, ErrAccountTypeRequired)
	}
	u.AccountType = tier

	return u, nil
}
