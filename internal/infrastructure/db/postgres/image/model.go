package image

import (
	"time"
)

type (
	Image struct {
		ID          uint64
		OwnerID     uint64
		DisplayName string
		StorageKey  string
		ContentType string
		Width       int
		Height      int

		CreatedAt time.Time
	}
	Images []*Image

	Thumbnail struct {
		ID          uint64
		ImageID     uint64
		OwnerID     uint64
		Height      int
		Width       int
		StorageKey  string
		ContentType string

		CreatedAt time.Time
	}
	Thumbnails []*Thumbnail
)
