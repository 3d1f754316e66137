package image

import "time"

type (
	Thumbnail struct {
		ID    uint64 `json:"id"`
		Size  int    `json:"size"`
		Width int    `json:"width"`
		Image string `json:"image"`
	}
	Thumbnails []Thumbnail

	// Image is rendered in two shapes: the "image" field is only present
	// for callers whose account type grants the original image link.
	Image struct {
		ID         uint64     `json:"id"`
		Name       string     `json:"name"`
		Image      *string    `json:"image,omitempty"`
		Width      int        `json:"width"`
		Height     int        `json:"height"`
		CreatedAt  time.Time  `json:"created_at"`
		Thumbnails Thumbnails `json:"thumbnails"`
	}
	Images       []Image
	ResponseData struct {
		Data Images `json:"data"`
	}

	TemporaryLink struct {
		URL       string `json:"url"`
		ExpiresIn int    `json:"expires_in"`
	}
)
