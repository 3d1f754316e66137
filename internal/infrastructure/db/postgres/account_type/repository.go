package account_type

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domain "image-hosting-api/internal/domain/account_type"
	"image-hosting-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.Querier
}

func NewRepository(db postgres.Querier) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchAccountType(ctx context.Context, id domain.ID) (*domain.AccountType, error) {
	at := new(AccountType)
	err := r.db.QueryRow(ctx, SelectAccountType, uint64(id)).Scan(
		&at.ID,
		&at.Name,
		&at.OriginalImageLink,
		&at.TimeLimitedLink,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err = r.attachSizes(ctx, AccountTypes{at}); err != nil {
		return nil, err
	}

	return fromDBModel(at)
}

func (r *Repository) FetchAccountTypes(ctx context.Context) (domain.AccountTypes, error) {
	rows, err := r.db.Query(ctx, SelectAccountTypes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ats AccountTypes
	for rows.Next() {
		at := new(AccountType)
		if err = rows.Scan(
			&at.ID,
			&at.Name,
			&at.OriginalImageLink,
			&at.TimeLimitedLink,
		); err != nil {
			return nil, err
		}
		ats = append(ats, at)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err = r.attachSizes(ctx, ats); err != nil {
		return nil, err
	}

	return fromDBModels(ats)
}

func (r *Repository) attachSizes(ctx context.Context, ats AccountTypes) error {
	if len(ats) == 0 {
		return nil
	}

	byID := make(map[uint64]*AccountType, len(ats))
	ids := make([]uint64, 0, len(ats))
	for _, at := range ats {
		byID[at.ID] = at
		ids = append(ids, at.ID)
	}

	rows, err := r.db.Query(ctx, SelectThumbnailSizes, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   uint64
			size int
		)
		if err = rows.Scan(&id, &size); err != nil {
			return err
		}
		if at, ok := byID[id]; ok {
			at.Sizes = append(at.Sizes, size)
		}
	}

	return rows.Err()
}
