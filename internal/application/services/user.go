package services

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"image-hosting-api/internal/application/ports"
	"image-hosting-api/internal/domain/account_type"
	domain "image-hosting-api/internal/domain/user"
)

const MinPasswordLen = 7

type UserService struct {
	callers               callerLoader
	userRepository        domain.Repository
	accountTypeRepository account_type.Repository
	mCounter              *prometheus.CounterVec
}

func NewUserService(
	userRepository domain.Repository,
	accountTypeRepository account_type.Repository,
	mCounter *prometheus.CounterVec,
) ports.UserService {
	return &UserService{
		callers: callerLoader{
			userRepository:        userRepository,
			accountTypeRepository: accountTypeRepository,
		},
		userRepository:        userRepository,
		accountTypeRepository: accountTypeRepository,
		mCounter:              mCounter,
	}
}

// FindUserByID returns the user with its account type attached.
func (us *UserService) FindUserByID(ctx context.Context, uuid domain.UUID) (*domain.User, error) {
	u, err := us.callers.load(ctx, uuid)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			return nil, nil
		}
		return nil, err
	}

	return u, nil
}

func (us *UserService) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (us *UserService) RegisterUser(ctx context.Context, in ports.Registration) (*domain.User, error) {
	if utf8.RuneCountInString(in.Password) < MinPasswordLen {
		return nil, ErrPasswordTooShort
	}

	tier, err := us.accountTypeRepository.FetchAccountType(ctx, account_type.ID(in.AccountTypeID))
	if err != nil {
		return nil, err
	}
	if tier == nil {
		return nil, ErrAccountTypeRequired
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u, err := us.userRepository.CreateUser(ctx, domain.User{
		Username:      in.Username,
		Email:         in.Email,
		PasswordHash:  &hash,
		AccountTypeID: tier.ID,
	})
	if err != nil {
		return nil, err
	}
	u.AccountType = tier

	us.mCounter.WithLabelValues("user_created_total").Inc()

	return u, nil
}

func (us *UserService) ChangePassword(ctx context.Context, uuid domain.UUID, oldPassword, newPassword string) error {
	u, err := us.userRepository.FetchUserByID(ctx, uuid)
	if err != nil {
		return err
	}
	if u == nil || u.PasswordHash == nil {
		return ErrUnauthenticated
	}

	if err = bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrWrongPassword
	}
	if utf8.RuneCountInString(newPassword) < MinPasswordLen {
		return ErrPasswordTooShort
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	if err = us.userRepository.UpdatePassword(ctx, u.ID, hash); err != nil {
		return err
	}

	us.mCounter.WithLabelValues("user_password_changed_total").Inc()

	return nil
}

func (us *UserService) ListAccountTypes(ctx context.Context) (account_type.AccountTypes, error) {
	return us.accountTypeRepository.FetchAccountTypes(ctx)
}

func hashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}
