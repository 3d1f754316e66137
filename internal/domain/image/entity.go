package image

import (
	"context"
	"time"

	"image-hosting-api/internal/domain/user"
)

const MaxDisplayNameLen = 164

type (
	ID          uint64
	ThumbnailID uint64

	Image struct {
		ID          ID
		OwnerID     user.ID
		DisplayName string
		StorageKey  string
		ContentType string
		Width       int
		Height      int

		CreatedAt time.Time

		// Thumbnails are ordered by ascending height.
		Thumbnails Thumbnails
	}
	Images []*Image

	Thumbnail struct {
		ID          ThumbnailID
		ImageID     ID
		OwnerID     user.ID
		Height      int
		Width       int
		StorageKey  string
		ContentType string

		CreatedAt time.Time
	}
	Thumbnails []*Thumbnail

	// PostCreateHook runs inside the image creation transaction once the
	// image row exists. The returned thumbnails are persisted in the same
	// transaction; an error rolls everything back.
	PostCreateHook func(ctx context.Context, created *Image) (Thumbnails, error)
)

// StorageKeys lists the image key followed by every thumbnail key.
func (i *Image) StorageKeys() []string {
	keys := make([]string, 0, len(i.Thumbnails)+1)
	keys = append(keys, i.StorageKey)
	for _, t := range i.Thumbnails {
		keys = append(keys, t.StorageKey)
	}
	return keys
}
