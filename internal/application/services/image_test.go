package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"image-hosting-api/internal/application/ports"
	"image-hosting-api/internal/domain"
	domainImage "image-hosting-api/internal/domain/image"
	"image-hosting-api/internal/domain/user"
	"image-hosting-api/internal/infrastructure/mq"
)

// committingRepo emulates the transactional repository: the hook runs after
// the image row gets an id, and thumbnails get ids in order.
func committingRepo() *FakeImageRepository {
	return &FakeImageRepository{
		CreateImageFn: func(ctx context.Context, req *domainImage.Image, hook domainImage.PostCreateHook) (*domainImage.Image, error) {
			created := *req
			created.ID = 77
			created.CreatedAt = time.Now()
			thumbs, err := hook(ctx, &created)
			if err != nil {
				return nil, err
			}
			for idx, th := range thumbs {
				th.ID = domainImage.ThumbnailID(idx + 1)
			}
			created.Thumbnails = thumbs
			return &created, nil
		},
	}
}

type imageServiceDeps struct {
	users  *FakeUserRepository
	images *FakeImageRepository
	store  *memoryStore
	mq     *FakeRabbitMQ
}

func newImageServiceForTest(deps imageServiceDeps) ports.ImageService {
	return NewImageService(
		deps.users,
		tiersRepo(),
		deps.images,
		deps.store,
		NewThumbnailDeriver(deps.store, zap.NewNop(), 2, nil),
		NewAccessGate(),
		deps.mq,
		newTestCounter(),
		zap.NewNop(),
	)
}

func TestImageService_CreateImage(t *testing.T) {
	premium := newTestUser(4, premiumTier)
	basic := newTestUser(5, basicTier)

	tests := []struct {
		name        string
		caller      *user.User
		in          ports.NewImage
		wantView    domainImage.View
		wantHeights []int
		wantWidths  []int
		wantExt     string
	}{
		{
			name:        "premium jpeg gets two thumbnails",
			caller:      premium,
			in:          ports.NewImage{DisplayName: " holiday.jpg ", Payload: encodeJPEG(t, 800, 400)},
			wantView:    domainImage.FullView,
			wantHeights: []int{200, 400},
			wantWidths:  []int{400, 800},
			wantExt:     ".jpeg",
		},
		{
			name:        "basic png gets one thumbnail",
			caller:      basic,
			in:          ports.NewImage{DisplayName: "cat", Payload: encodePNG(t, 100, 400)},
			wantView:    domainImage.BasicView,
			wantHeights: []int{200},
			wantWidths:  []int{50},
			wantExt:     ".png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			bus := newFakeRabbitMQ()
			svc := newImageServiceForTest(imageServiceDeps{
				users:  usersRepo(premium, basic),
				images: committingRepo(),
				store:  store,
				mq:     bus,
			})

			got, err := svc.CreateImage(context.Background(), tt.caller.UUID, tt.in)
			require.NoError(t, err)
			require.NotNil(t, got)

			img := got.Image
			assert.Equal(t, tt.wantView, got.View)
			assert.Equal(t, tt.caller.ID, img.OwnerID)
			assert.Equal(t, strings.TrimSpace(tt.in.DisplayName), img.DisplayName)
			assert.True(t, strings.HasPrefix(img.StorageKey, "users-images/"))
			assert.True(t, strings.HasSuffix(img.StorageKey, tt.wantExt))

			require.Len(t, img.Thumbnails, len(tt.wantHeights))
			for idx, th := range img.Thumbnails {
				assert.Equal(t, tt.wantHeights[idx], th.Height)
				assert.Equal(t, tt.wantWidths[idx], th.Width)
			}
			assert.ElementsMatch(t, img.StorageKeys(), store.keys())

			select {
			case e := <-bus.in:
				assert.Equal(t, mq.ActionImageCreated, e.Action)
				assert.Equal(t, tt.caller.UUID.String(), e.UserID)
				assert.Equal(t, tt.wantHeights, e.Payload.ThumbnailHeights)
			default:
				t.Fatal("image.created event was not published")
			}
		})
	}
}

func TestImageService_CreateImage_Rejected(t *testing.T) {
	premium := newTestUser(4, premiumTier)

	tests := []struct {
		name    string
		in      ports.NewImage
		wantErr error
	}{
		{
			name:    "blank name",
			in:      ports.NewImage{DisplayName: "  ", Payload: encodePNG(t, 10, 10)},
			wantErr: domainImage.ErrDisplayNameRequired,
		},
		{
			name:    "name too long",
			in:      ports.NewImage{DisplayName: strings.Repeat("x", 165), Payload: encodePNG(t, 10, 10)},
			wantErr: domainImage.ErrDisplayNameTooLong,
		},
		{
			name:    "not an image",
			in:      ports.NewImage{DisplayName: "a.png", Payload: []byte("GIF89a")},
			wantErr: ErrUnsupportedFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			images := &FakeImageRepository{
				CreateImageFn: func(ctx context.Context, req *domainImage.Image, hook domainImage.PostCreateHook) (*domainImage.Image, error) {
					t.Fatal("repository must not be reached")
					return nil, nil
				},
			}
			svc := newImageServiceForTest(imageServiceDeps{
				users: usersRepo(premium), images: images, store: store, mq: newFakeRabbitMQ(),
			})

			got, err := svc.CreateImage(context.Background(), premium.UUID, tt.in)
			require.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Nil(t, got)
			assert.Empty(t, store.keys())
		})
	}
}

func TestImageService_CreateImage_RollsBackBlobs(t *testing.T) {
	premium := newTestUser(4, premiumTier)

	tests := []struct {
		name    string
		failPut func(key string) error
		repo    *FakeImageRepository
		wantErr error
	}{
		{
			name: "derivation fails",
			failPut: func(key string) error {
				if strings.HasSuffix(key, "_400.jpeg") {
					return errBackend
				}
				return nil
			},
			repo:    committingRepo(),
			wantErr: domain.ErrDerivation,
		},
		{
			name: "thumbnail insert fails after derivation",
			repo: &FakeImageRepository{
				CreateImageFn: func(ctx context.Context, req *domainImage.Image, hook domainImage.PostCreateHook) (*domainImage.Image, error) {
					created := *req
					created.ID = 1
					if _, err := hook(ctx, &created); err != nil {
						return nil, err
					}
					return nil, domain.ErrConflict
				},
			},
			wantErr: domain.ErrConflict,
		},
		{
			name: "original upload fails",
			failPut: func(key string) error {
				return errBackend
			},
			repo:    committingRepo(),
			wantErr: domain.ErrStorageUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			store.failPut = tt.failPut
			bus := newFakeRabbitMQ()
			svc := newImageServiceForTest(imageServiceDeps{
				users: usersRepo(premium), images: tt.repo, store: store, mq: bus,
			})

			got, err := svc.CreateImage(context.Background(), premium.UUID, ports.NewImage{
				DisplayName: "x.jpg",
				Payload:     encodeJPEG(t, 800, 400),
			})
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, got)
			assert.Empty(t, store.keys())
			assert.Empty(t, bus.in)
		})
	}
}

func TestImageService_ListImages(t *testing.T) {
	basic := newTestUser(5, basicTier)
	imgs := domainImage.Images{
		{ID: 1, OwnerID: 5, StorageKey: "k1.png"},
		{ID: 2, OwnerID: 5, StorageKey: "k2.png"},
	}

	svc := newImageServiceForTest(imageServiceDeps{
		users: usersRepo(basic),
		images: &FakeImageRepository{
			FetchImagesFn: func(ctx context.Context, ownerID user.ID) (domainImage.Images, error) {
				assert.Equal(t, basic.ID, ownerID)
				return imgs, nil
			},
		},
		store: newMemoryStore(),
		mq:    newFakeRabbitMQ(),
	})

	got, err := svc.ListImages(context.Background(), basic.UUID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for idx, v := range got {
		assert.Equal(t, domainImage.BasicView, v.View)
		assert.Equal(t, imgs[idx].ID, v.Image.ID)
	}
}

func TestImageService_UnknownCaller(t *testing.T) {
	svc := newImageServiceForTest(imageServiceDeps{
		users:  usersRepo(),
		images: &FakeImageRepository{},
		store:  newMemoryStore(),
		mq:     newFakeRabbitMQ(),
	})

	_, err := svc.ListImages(context.Background(), newTestUser(1, basicTier).UUID)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestImageService_GetAndDelete_Ownership(t *testing.T) {
	owner := newTestUser(4, premiumTier)
	stranger := newTestUser(5, enterpriseTier)
	img := &domainImage.Image{
		ID: 3, OwnerID: owner.ID, StorageKey: "users-images/o.png",
		Thumbnails: domainImage.Thumbnails{{ID: 8, ImageID: 3, Height: 200, StorageKey: "users-images/o_200.png"}},
	}

	newSvc := func(store *memoryStore, deleted *bool) ports.ImageService {
		return newImageServiceForTest(imageServiceDeps{
			users: usersRepo(owner, stranger),
			images: &FakeImageRepository{
				FetchImageFn: func(ctx context.Context, id domainImage.ID) (*domainImage.Image, error) {
					if id == img.ID {
						return img, nil
					}
					return nil, nil
				},
				DeleteImageFn: func(ctx context.Context, id domainImage.ID) error {
					*deleted = true
					return nil
				},
			},
			store: store,
			mq:    newFakeRabbitMQ(),
		})
	}

	t.Run("stranger sees not found", func(t *testing.T) {
		var deleted bool
		store := newMemoryStore()
		store.objects[img.StorageKey] = []byte("x")
		svc := newSvc(store, &deleted)

		_, err := svc.GetImage(context.Background(), stranger.UUID, img.ID)
		require.ErrorIs(t, err, domain.ErrNotFound)

		err = svc.DeleteImage(context.Background(), stranger.UUID, img.ID)
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.False(t, deleted)
		assert.Equal(t, []string{img.StorageKey}, store.keys())
	})

	t.Run("missing image", func(t *testing.T) {
		var deleted bool
		svc := newSvc(newMemoryStore(), &deleted)

		err := svc.DeleteImage(context.Background(), owner.UUID, 404)
		require.ErrorIs(t, err, ErrImageNotFound)
		assert.False(t, deleted)
	})

	t.Run("owner retrieves full view", func(t *testing.T) {
		var deleted bool
		svc := newSvc(newMemoryStore(), &deleted)

		got, err := svc.GetImage(context.Background(), owner.UUID, img.ID)
		require.NoError(t, err)
		assert.Equal(t, domainImage.FullView, got.View)
		assert.Same(t, img, got.Image)
	})

	t.Run("owner deletes blobs and rows", func(t *testing.T) {
		var deleted bool
		store := newMemoryStore()
		for _, k := range img.StorageKeys() {
			store.objects[k] = []byte("x")
		}
		store.objects["users-images/other.png"] = []byte("x")
		svc := newSvc(store, &deleted)

		require.NoError(t, svc.DeleteImage(context.Background(), owner.UUID, img.ID))
		assert.True(t, deleted)
		assert.Equal(t, []string{"users-images/other.png"}, store.keys())
	})

	t.Run("storage failure keeps rows", func(t *testing.T) {
		var deleted bool
		store := newMemoryStore()
		store.failRemove = func(key string) error { return errBackend }
		svc := newSvc(store, &deleted)

		err := svc.DeleteImage(context.Background(), owner.UUID, img.ID)
		require.ErrorIs(t, err, domain.ErrStorageUnavailable)
		assert.True(t, errors.Is(err, errBackend))
		assert.False(t, deleted)
	})
}

func TestImageService_CreateAndDeleteUpdateMetrics(t *testing.T) {
	premium := newTestUser(4, premiumTier)
	store := newMemoryStore()
	images := committingRepo()
	counter := newTestCounter()
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "test_derivation_seconds"},
		[]string{"height", "result"},
	)

	svc := NewImageService(
		usersRepo(premium),
		tiersRepo(),
		images,
		store,
		NewThumbnailDeriver(store, zap.NewNop(), 2, duration),
		NewAccessGate(),
		newFakeRabbitMQ(),
		counter,
		zap.NewNop(),
	)

	got, err := svc.CreateImage(context.Background(), premium.UUID, ports.NewImage{
		DisplayName: "sunset",
		Payload:     encodePNG(t, 300, 200),
	})
	require.NoError(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(counter.WithLabelValues("images_created_total")))
	assert.Equal(t, 2, testutil.CollectAndCount(duration))

	images.FetchImageFn = func(ctx context.Context, id domainImage.ID) (*domainImage.Image, error) {
		return got.Image, nil
	}
	images.DeleteImageFn = func(ctx context.Context, id domainImage.ID) error { return nil }

	require.NoError(t, svc.DeleteImage(context.Background(), premium.UUID, got.Image.ID))
	assert.Equal(t, float64(1), testutil.ToFloat64(counter.WithLabelValues("images_deleted_total")))
	assert.Empty(t, store.keys())
}

func TestImageService_CreateImage_StalledPublisherDoesNotBlock(t *testing.T) {
	premium := newTestUser(4, premiumTier)
	bus := &FakeRabbitMQ{in: make(chan mq.Event)}
	svc := newImageServiceForTest(imageServiceDeps{
		users:  usersRepo(premium),
		images: committingRepo(),
		store:  newMemoryStore(),
		mq:     bus,
	})

	payload := encodePNG(t, 40, 20)
	done := make(chan error, 1)
	go func() {
		_, err := svc.CreateImage(context.Background(), premium.UUID, ports.NewImage{
			DisplayName: "sunset",
			Payload:     payload,
		})
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("CreateImage waited for the event publisher")
	}
}
