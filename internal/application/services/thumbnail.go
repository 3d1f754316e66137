package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"math"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"image-hosting-api/internal/application/ports"
	"image-hosting-api/internal/domain"
	domainImage "image-hosting-api/internal/domain/image"
)

type ThumbnailDeriver struct {
	store       ports.ObjectStore
	logger      *zap.Logger
	parallelism int
	duration    *prometheus.HistogramVec
}

func NewThumbnailDeriver(
	store ports.ObjectStore,
	logger *zap.Logger,
	parallelism int,
	duration *prometheus.HistogramVec,
) ports.ThumbnailDeriver {
	if parallelism <= 0 {
		parallelism = 1
	}
	return &ThumbnailDeriver{
		store:       store,
		logger:      logger,
		parallelism: parallelism,
		duration:    duration,
	}
}

// ThumbnailKey derives a rendition key from the original one:
// "users-images/abc.png" at 200px becomes "users-images/abc_200.png".
func ThumbnailKey(originalKey string, height int) string {
	ext := path.Ext(originalKey)
	return strings.TrimSuffix(originalKey, ext) + "_" + strconv.Itoa(height) + ext
}

// ScaledWidth keeps the aspect ratio of a w x h source at the target height.
func ScaledWidth(w, h, height int) int {
	width := int(math.Round(float64(w) * float64(height) / float64(h)))
	if width < 1 {
		return 1
	}
	return width
}

// Derive renders one thumbnail per height and uploads it. Either every
// rendition is stored or none is: blobs written before a failure are removed.
func (d *ThumbnailDeriver) Derive(
	ctx context.Context,
	img *domainImage.Image,
	payload []byte,
	heights []int,
) (domainImage.Thumbnails, error) {
	if len(heights) == 0 {
		return nil, nil
	}

	format, err := imaging.FormatFromFilename(img.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("%w: image %d: %w", domain.ErrDerivation, img.ID, err)
	}
	// Pixels are used as stored, EXIF orientation is ignored, so the
	// thumbnail aspect ratio matches the stored original dimensions.
	src, err := imaging.Decode(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: decode image %d: %w", domain.ErrDerivation, img.ID, err)
	}
	bounds := src.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("%w: image %d has no pixels", domain.ErrDerivation, img.ID)
	}

	var (
		mu       sync.Mutex
		uploaded []string
		thumbs   = make(domainImage.Thumbnails, 0, len(heights))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.parallelism)
	for _, height := range heights {
		height := height
		g.Go(func() error {
			started := time.Now()
			th, err := d.render(gctx, img, src, format, height)
			d.observe(height, started, err)
			if err != nil {
				return err
			}

			mu.Lock()
			uploaded = append(uploaded, th.StorageKey)
			thumbs = append(thumbs, th)
			mu.Unlock()
			return nil
		})
	}

	if err = g.Wait(); err != nil {
		d.cleanup(context.WithoutCancel(ctx), uploaded)
		return nil, fmt.Errorf("%w: image %d: %w", domain.ErrDerivation, img.ID, err)
	}

	sort.Slice(thumbs, func(i, j int) bool { return thumbs[i].Height < thumbs[j].Height })

	return thumbs, nil
}

func (d *ThumbnailDeriver) render(
	ctx context.Context,
	img *domainImage.Image,
	src image.Image,
	format imaging.Format,
	height int,
) (*domainImage.Thumbnail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	width := ScaledWidth(bounds.Dx(), bounds.Dy(), height)
	resized := imaging.Resize(src, width, height, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format); err != nil {
		return nil, fmt.Errorf("encode %dpx: %w", height, err)
	}

	th := &domainImage.Thumbnail{
		ImageID:     img.ID,
		OwnerID:     img.OwnerID,
		Height:      height,
		Width:       width,
		StorageKey:  ThumbnailKey(img.StorageKey, height),
		ContentType: img.ContentType,
	}
	if err := d.store.Put(ctx, th.StorageKey, buf.Bytes(), th.ContentType); err != nil {
		return nil, fmt.Errorf("upload %dpx: %w", height, err)
	}

	d.logger.Debug("thumbnail derived",
		zap.Uint64("image_id", uint64(img.ID)),
		zap.Int("height", height),
		zap.Int("width", width),
	)

	return th, nil
}

func (d *ThumbnailDeriver) observe(height int, started time.Time, err error) {
	if d.duration == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	d.duration.WithLabelValues(strconv.Itoa(height), result).Observe(time.Since(started).Seconds())
}

func (d *ThumbnailDeriver) cleanup(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := d.store.Remove(ctx, key); err != nil {
			d.logger.Warn("thumbnail cleanup failed", zap.String("key", key), zap.Error(err))
		}
	}
}
