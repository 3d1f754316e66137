package image

import (
	"image-hosting-api/internal/application/ports"
	domain "image-hosting-api/internal/domain/image"
)

func ToResponseImage(v domain.ImageView) Image {
	img := v.Image
	var out = Image{
		ID:         uint64(img.ID),
		Name:       img.DisplayName,
		Width:      img.Width,
		Height:     img.Height,
		CreatedAt:  img.CreatedAt,
		Thumbnails: make(Thumbnails, len(img.Thumbnails)),
	}
	if v.View == domain.FullView {
		key := img.StorageKey
		out.Image = &key
	}
	for idx, th := range img.Thumbnails {
		out.Thumbnails[idx] = Thumbnail{
			ID:    uint64(th.ID),
			Size:  th.Height,
			Width: th.Width,
			Image: th.StorageKey,
		}
	}

	return out
}

func ToResponseImages(vs domain.ImageViews) Images {
	out := make(Images, len(vs))
	for idx, v := range vs {
		out[idx] = ToResponseImage(v)
	}

	return out
}

func ToResponseTemporaryLink(l ports.TemporaryLink) TemporaryLink {
	return TemporaryLink{
		URL:       l.URL,
		ExpiresIn: int(l.ExpiresIn.Seconds()),
	}
}
