package image

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"image-hosting-api/internal/domain"
	domainImage "image-hosting-api/internal/domain/image"
	"image-hosting-api/internal/domain/user"
	"image-hosting-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) domainImage.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchImages(ctx context.Context, ownerID user.ID) (domainImage.Images, error) {
	rows, err := r.db.Query(ctx, SelectImagesByOwner, uint64(ownerID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var imgs Images
	for rows.Next() {
		img := new(Image)
		if err = scanImage(rows, img); err != nil {
			return nil, err
		}
		imgs = append(imgs, img)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	thumbs, err := r.fetchThumbnails(ctx, imgs)
	if err != nil {
		return nil, err
	}

	return fromDBModels(imgs, thumbs), nil
}

func (r *Repository) FetchImage(ctx context.Context, id domainImage.ID) (*domainImage.Image, error) {
	img := new(Image)
	if err := scanImage(r.db.QueryRow(ctx, SelectImageByID, uint64(id)), img); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	thumbs, err := r.fetchThumbnails(ctx, Images{img})
	if err != nil {
		return nil, err
	}

	return fromDBModels(Images{img}, thumbs)[0], nil
}

func (r *Repository) FetchThumbnail(ctx context.Context, id domainImage.ThumbnailID) (*domainImage.Thumbnail, error) {
	t := new(Thumbnail)
	if err := scanThumbnail(r.db.QueryRow(ctx, SelectThumbnailByID, uint64(id)), t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBThumbnail(t), nil
}

// CreateImage inserts the image, runs the hook and inserts the returned
// thumbnails in a single transaction.
func (r *Repository) CreateImage(
	ctx context.Context,
	req *domainImage.Image,
	hook domainImage.PostCreateHook,
) (*domainImage.Image, error) {
	var out *domainImage.Image

	err := postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		img := new(Image)
		if err := scanImage(tx.QueryRow(
			ctx,
			InsertImage,
			uint64(req.OwnerID), req.DisplayName, req.StorageKey, req.ContentType, req.Width, req.Height,
		), img); err != nil {
			if postgres.IsPgUniqueViolation(err) {
				return fmt.Errorf("%w: storage key %s already used", domain.ErrConflict, req.StorageKey)
			}
			return err
		}
		created := fromDBModel(img)

		if hook == nil {
			out = created
			return nil
		}

		thumbs, err := hook(ctx, created)
		if err != nil {
			return err
		}
		for _, th := range thumbs {
			t := new(Thumbnail)
			if err = scanThumbnail(tx.QueryRow(
				ctx,
				InsertThumbnail,
				img.ID, img.OwnerID, th.Height, th.Width, th.StorageKey, th.ContentType,
			), t); err != nil {
				if postgres.IsPgUniqueViolation(err) {
					return fmt.Errorf("%w: thumbnail height %d already exists for image %d", domain.ErrConflict, th.Height, img.ID)
				}
				return err
			}
			created.Thumbnails = append(created.Thumbnails, fromDBThumbnail(t))
		}

		out = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *Repository) DeleteImage(ctx context.Context, id domainImage.ID) error {
	return postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, DeleteThumbnailsByImageID, uint64(id)); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, DeleteImageByID, uint64(id))
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("image %d: %w", id, domain.ErrNotFound)
		}
		return nil
	})
}

func (r *Repository) fetchThumbnails(ctx context.Context, imgs Images) (Thumbnails, error) {
	if len(imgs) == 0 {
		return nil, nil
	}

	ids := make([]uint64, len(imgs))
	for idx, img := range imgs {
		ids[idx] = img.ID
	}

	rows, err := r.db.Query(ctx, SelectThumbnailsByImageIDs, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ts Thumbnails
	for rows.Next() {
		t := new(Thumbnail)
		if err = scanThumbnail(rows, t); err != nil {
			return nil, err
		}
		ts = append(ts, t)
	}

	return ts, rows.Err()
}

func scanImage(row pgx.Row, img *Image) error {
	return row.Scan(
		&img.ID,
		&img.OwnerID,
		&img.DisplayName,
		&img.StorageKey,
		&img.ContentType,
		&img.Width,
		&img.Height,

		&img.CreatedAt,
	)
}

func scanThumbnail(row pgx.Row, t *Thumbnail) error {
	return row.Scan(
		&t.ID,
		&t.ImageID,
		&t.OwnerID,
		&t.Height,
		&t.Width,
		&t.StorageKey,
		&t.ContentType,

		&t.CreatedAt,
	)
}
