package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"image-hosting-api/internal/domain"
	"image-hosting-api/internal/domain/user"
	"image-hosting-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.Querier
}

func NewRepository(db postgres.Querier) user.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchUserByID(ctx context.Context, uuid user.UUID) (*user.User, error) {
	return r.fetchOne(ctx, SelectUserByID, uuid.String())
}

func (r *Repository) FetchUserByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.fetchOne(ctx, SelectUserByUsername, username)
}

func (r *Repository) fetchOne(ctx context.Context, query string, arg any) (*user.User, error) {
	u := new(User)
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.UUID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.AccountTypeID,

		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) CreateUser(ctx context.Context, req user.User) (*user.User, error) {
	if req.PasswordHash == nil {
		return nil, fmt.Errorf("%w: password hash is required", domain.ErrValidation)
	}

	u := new(User)
	err := r.db.QueryRow(
		ctx,
		InsertUser,
		req.Username, req.Email, *req.PasswordHash, uint64(req.AccountTypeID),
	).Scan(
		&u.ID,
		&u.UUID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.AccountTypeID,

		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		switch {
		case postgres.IsPgUniqueViolation(err):
			if postgres.ConstraintName(err) == constraintUsername {
				return nil, ErrUsernameAlreadyExists
			}
			return nil, ErrEmailAlreadyExists
		case postgres.IsPgForeignKeyViolation(err):
			return nil, ErrUnknownAccountType
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) UpdatePassword(ctx context.Context, id user.ID, passwordHash string) error {
	tag, err := r.db.Exec(ctx, UpdatePasswordByID, passwordHash, uint64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
