package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"image-hosting-api/internal/application/ports"
	"image-hosting-api/internal/domain"
	"image-hosting-api/internal/domain/account_type"
	domainImage "image-hosting-api/internal/domain/image"
	"image-hosting-api/internal/domain/user"
	"image-hosting-api/internal/infrastructure/mq"
)

const storagePrefix = "users-images/"

// encodings lists the accepted source formats with their key extension and
// content type.
var encodings = map[string]struct {
	ext         string
	contentType string
}{
	"jpeg": {ext: ".jpeg", contentType: "image/jpeg"},
	"png":  {ext: ".png", contentType: "image/png"},
}

type ImageService struct {
	callers         callerLoader
	imageRepository domainImage.Repository
	store           ports.ObjectStore
	deriver         ports.ThumbnailDeriver
	gate            ports.AccessGate
	mq              ports.RabbitMQ
	mCounter        *prometheus.CounterVec
	logger          *zap.Logger
}

func NewImageService(
	userRepository user.Repository,
	accountTypeRepository account_type.Repository,
	imageRepository domainImage.Repository,
	store ports.ObjectStore,
	deriver ports.ThumbnailDeriver,
	gate ports.AccessGate,
	mq ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
) ports.ImageService {
	return &ImageService{
		callers: callerLoader{
			userRepository:        userRepository,
			accountTypeRepository: accountTypeRepository,
		},
		imageRepository: imageRepository,
		store:           store,
		deriver:         deriver,
		gate:            gate,
		mq:              mq,
		mCounter:        mCounter,
		logger:          logger,
	}
}

// CreateImage stores the original, derives every thumbnail configured for
// the owner's tier and persists all records atomically. On failure nothing
// is left behind in the database or the bucket.
func (is *ImageService) CreateImage(
	ctx context.Context,
	ownerUUID user.UUID,
	in ports.NewImage,
) (*domainImage.ImageView, error) {
	name, err := domainImage.NormalizeDisplayName(in.DisplayName)
	if err != nil {
		return nil, err
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(in.Payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}
	enc, ok := encodings[format]
	if !ok || cfg.Width == 0 || cfg.Height == 0 {
		return nil, ErrUnsupportedFormat
	}

	caller, err := is.callers.load(ctx, ownerUUID)
	if err != nil {
		return nil, err
	}

	req := &domainImage.Image{
		OwnerID:     caller.ID,
		DisplayName: name,
		StorageKey:  storagePrefix + uuid.NewString() + enc.ext,
		ContentType: enc.contentType,
		Width:       cfg.Width,
		Height:      cfg.Height,
	}
	if err = is.store.Put(ctx, req.StorageKey, in.Payload, req.ContentType); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}

	var (
		mu      sync.Mutex
		derived domainImage.Thumbnails
	)
	heights := caller.AccountType.Heights()
	hook := func(ctx context.Context, created *domainImage.Image) (domainImage.Thumbnails, error) {
		thumbs, err := is.deriver.Derive(ctx, created, in.Payload, heights)
		if err != nil {
			return nil, err
		}
		mu.Lock()
		derived = thumbs
		mu.Unlock()
		return thumbs, nil
	}

	created, err := is.imageRepository.CreateImage(ctx, req, hook)
	if err != nil {
		mu.Lock()
		keys := (&domainImage.Image{StorageKey: req.StorageKey, Thumbnails: derived}).StorageKeys()
		mu.Unlock()
		is.removeBlobs(context.WithoutCancel(ctx), keys)
		return nil, err
	}

	is.publish(mq.ActionImageCreated, caller, created)
	is.mCounter.WithLabelValues("images_created_total").Inc()

	return &domainImage.ImageView{
		View:  is.gate.ViewFor(domainImage.OpCreate, caller.AccountType),
		Image: created,
	}, nil
}

func (is *ImageService) ListImages(ctx context.Context, ownerUUID user.UUID) (domainImage.ImageViews, error) {
	caller, err := is.callers.load(ctx, ownerUUID)
	if err != nil {
		return nil, err
	}

	imgs, err := is.imageRepository.FetchImages(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	view := is.gate.ViewFor(domainImage.OpList, caller.AccountType)
	out := make(domainImage.ImageViews, 0, len(imgs))
	for _, img := range imgs {
		out = append(out, domainImage.ImageView{View: view, Image: img})
	}

	return out, nil
}

func (is *ImageService) GetImage(
	ctx context.Context,
	callerUUID user.UUID,
	id domainImage.ID,
) (*domainImage.ImageView, error) {
	caller, img, err := is.ownedImage(ctx, callerUUID, id)
	if err != nil {
		return nil, err
	}

	return &domainImage.ImageView{
		View:  is.gate.ViewFor(domainImage.OpRetrieve, caller.AccountType),
		Image: img,
	}, nil
}

// DeleteImage removes every blob of the image before its rows. Object removal
// is idempotent, so a retry after a storage failure converges.
func (is *ImageService) DeleteImage(ctx context.Context, callerUUID user.UUID, id domainImage.ID) error {
	caller, img, err := is.ownedImage(ctx, callerUUID, id)
	if err != nil {
		return err
	}

	keys := img.StorageKeys()
	for idx := len(keys) - 1; idx >= 0; idx-- {
		if err = is.store.Remove(ctx, keys[idx]); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
		}
	}

	if err = is.imageRepository.DeleteImage(ctx, img.ID); err != nil {
		return err
	}

	is.publish(mq.ActionImageDeleted, caller, img)
	is.mCounter.WithLabelValues("images_deleted_total").Inc()

	return nil
}

func (is *ImageService) ownedImage(
	ctx context.Context,
	callerUUID user.UUID,
	id domainImage.ID,
) (*user.User, *domainImage.Image, error) {
	caller, err := is.callers.load(ctx, callerUUID)
	if err != nil {
		return nil, nil, err
	}

	img, err := is.imageRepository.FetchImage(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if img == nil {
		return nil, nil, ErrImageNotFound
	}
	if err = is.gate.AuthorizeOwner(caller, img.OwnerID); err != nil {
		return nil, nil, err
	}

	return caller, img, nil
}

func (is *ImageService) removeBlobs(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := is.store.Remove(ctx, key); err != nil {
			is.logger.Warn("orphaned blob", zap.String("key", key), zap.Error(err))
		}
	}
}

// publish never waits for the publisher: the records are already committed,
// so a stalled broker must not hold the request.
func (is *ImageService) publish(action string, caller *user.User, img *domainImage.Image) {
	heights := make([]int, 0, len(img.Thumbnails))
	for _, th := range img.Thumbnails {
		heights = append(heights, th.Height)
	}

	e := mq.Event{
		Id:     uuid.New(),
		TS:     time.Now(),
		Action: action,
		UserID: caller.UUID.String(),
		Payload: mq.EventImage{
			ID:               uint64(img.ID),
			DisplayName:      img.DisplayName,
			StorageKey:       img.StorageKey,
			ThumbnailHeights: heights,
			StorageKeys:      img.StorageKeys(),
		},
	}

	select {
	case is.mq.GetInputChan() <- e:
	default:
		is.logger.Warn("image event dropped", zap.String("action", action), zap.Uint64("image_id", uint64(img.ID)))
	}
}
