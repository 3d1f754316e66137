package image

import (
	"context"

	"image-hosting-api/internal/domain/user"
)

type Repository interface {
	FetchImages(ctx context.Context, ownerID user.ID) (Images, error)
	FetchImage(ctx context.Context, id ID) (*Image, error)
	FetchThumbnail(ctx context.Context, id ThumbnailID) (*Thumbnail, error)
	CreateImage(ctx context.Context, req *Image, hook PostCreateHook) (*Image, error)
	DeleteImage(ctx context.Context, id ID) error
}
