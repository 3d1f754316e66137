package image

import (
	domain "image-hosting-api/internal/domain/image"
	"image-hosting-api/internal/domain/user"
)

func fromDBModel(model *Image) *domain.Image {
	var img = &domain.Image{
		ID:          domain.ID(model.ID),
		OwnerID:     user.ID(model.OwnerID),
		DisplayName: model.DisplayName,
		StorageKey:  model.StorageKey,
		ContentType: model.ContentType,
		Width:       model.Width,
		Height:      model.Height,

		CreatedAt: model.CreatedAt,
	}

	return img
}

func fromDBThumbnail(model *Thumbnail) *domain.Thumbnail {
	var t = &domain.Thumbnail{
		ID:          domain.ThumbnailID(model.ID),
		ImageID:     domain.ID(model.ImageID),
		OwnerID:     user.ID(model.OwnerID),
		Height:      model.Height,
		Width:       model.Width,
		StorageKey:  model.StorageKey,
		ContentType: model.ContentType,

		CreatedAt: model.CreatedAt,
	}

	return t
}

// fromDBModels keeps image order and attaches thumbnails, which arrive
// ordered by (image_id, height).
func fromDBModels(models Images, thumbs Thumbnails) domain.Images {
	imgs := make(domain.Images, len(models))
	byID := make(map[uint64]*domain.Image, len(models))
	for idx, m := range models {
		imgs[idx] = fromDBModel(m)
		byID[m.ID] = imgs[idx]
	}
	for _, t := range thumbs {
		if img, ok := byID[t.ImageID]; ok {
			img.Thumbnails = append(img.Thumbnails, fromDBThumbnail(t))
		}
	}

	return imgs
}
