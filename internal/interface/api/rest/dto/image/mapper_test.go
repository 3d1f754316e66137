package image

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-hosting-api/internal/application/ports"
	domain "image-hosting-api/internal/domain/image"
)

func TestToResponseImage_Views(t *testing.T) {
	img := &domain.Image{
		ID:          3,
		DisplayName: "cat",
		StorageKey:  "users-images/k.png",
		Thumbnails: domain.Thumbnails{
			{ID: 1, Height: 200, Width: 400, StorageKey: "users-images/k_200.png"},
		},
	}

	tests := []struct {
		name      string
		view      domain.View
		wantImage bool
	}{
		{name: "basic hides original", view: domain.BasicView},
		{name: "full exposes original", view: domain.FullView, wantImage: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(ToResponseImage(domain.ImageView{View: tt.view, Image: img}))
			require.NoError(t, err)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(b, &resp))
			if tt.wantImage {
				assert.Equal(t, "users-images/k.png", resp["image"])
			} else {
				assert.NotContains(t, resp, "image")
			}

			thumbs, ok := resp["thumbnails"].([]any)
			require.True(t, ok)
			require.Len(t, thumbs, 1)
			th := thumbs[0].(map[string]any)
			assert.Equal(t, float64(200), th["size"])
			assert.Equal(t, "users-images/k_200.png", th["image"])
		})
	}
}

func TestToResponseImage_EmptyThumbnailsRenderAsList(t *testing.T) {
	b, err := json.Marshal(ToResponseImage(domain.ImageView{View: domain.BasicView, Image: &domain.Image{ID: 1}}))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"thumbnails":[]`)
}

func TestToResponseTemporaryLink(t *testing.T) {
	got := ToResponseTemporaryLink(ports.TemporaryLink{URL: "https://x", ExpiresIn: 300 * time.Second})
	assert.Equal(t, TemporaryLink{URL: "https://x", ExpiresIn: 300}, got)
}
