package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"

	"image-hosting-api/internal/domain/account_type"
	domainImage "image-hosting-api/internal/domain/image"
	"image-hosting-api/internal/domain/user"
	"image-hosting-api/internal/infrastructure/mq"
)

var (
	basicTier = &account_type.AccountType{
		ID: 1, Name: "Basic",
		ThumbnailSizes: []account_type.ThumbnailSize{200},
	}
	premiumTier = &account_type.AccountType{
		ID: 2, Name: "Premium", OriginalImageLink: true,
		ThumbnailSizes: []account_type.ThumbnailSize{200, 400},
	}
	enterpriseTier = &account_type.AccountType{
		ID: 3, Name: "Enterprise", OriginalImageLink: true, TimeLimitedLink: true,
		ThumbnailSizes: []account_type.ThumbnailSize{400, 200, 400},
	}
)

type FakeUserRepository struct {
	FetchUserByIDFn       func(ctx context.Context, id user.UUID) (*user.User, error)
	FetchUserByUsernameFn func(ctx context.Context, username string) (*user.User, error)
	CreateUserFn          func(ctx context.Context, req user.User) (*user.User, error)
	UpdatePasswordFn      func(ctx context.Context, id user.ID, hash string) error
}

func (f *FakeUserRepository) FetchUserByID(ctx context.Context, id user.UUID) (*user.User, error) {
	return f.FetchUserByIDFn(ctx, id)
}

func (f *FakeUserRepository) FetchUserByUsername(ctx context.Context, username string) (*user.User, error) {
	return f.FetchUserByUsernameFn(ctx, username)
}

func (f *FakeUserRepository) CreateUser(ctx context.Context, req user.User) (*user.User, error) {
	return f.CreateUserFn(ctx, req)
}

func (f *FakeUserRepository) UpdatePassword(ctx context.Context, id user.ID, hash string) error {
	return f.UpdatePasswordFn(ctx, id, hash)
}

// usersRepo serves a fixed set of users keyed by uuid.
func usersRepo(users ...*user.User) *FakeUserRepository {
	return &FakeUserRepository{
		FetchUserByIDFn: func(ctx context.Context, id user.UUID) (*user.User, error) {
			for _, u := range users {
				if u.UUID == id {
					cp := *u
					return &cp, nil
				}
			}
			return nil, nil
		},
	}
}

type FakeAccountTypeRepository struct {
	FetchAccountTypeFn  func(ctx context.Context, id account_type.ID) (*account_type.AccountType, error)
	FetchAccountTypesFn func(ctx context.Context) (account_type.AccountTypes, error)
}

func (f *FakeAccountTypeRepository) FetchAccountType(ctx context.Context, id account_type.ID) (*account_type.AccountType, error) {
	return f.FetchAccountTypeFn(ctx, id)
}

func (f *FakeAccountTypeRepository) FetchAccountTypes(ctx context.Context) (account_type.AccountTypes, error) {
	return f.FetchAccountTypesFn(ctx)
}

func tiersRepo() *FakeAccountTypeRepository {
	all := account_type.AccountTypes{basicTier, premiumTier, enterpriseTier}
	return &FakeAccountTypeRepository{
		FetchAccountTypeFn: func(ctx context.Context, id account_type.ID) (*account_type.AccountType, error) {
			for _, at := range all {
				if at.ID == id {
					return at, nil
				}
			}
			return nil, nil
		},
		FetchAccountTypesFn: func(ctx context.Context) (account_type.AccountTypes, error) {
			return all, nil
		},
	}
}

type FakeImageRepository struct {
	FetchImagesFn    func(ctx context.Context, ownerID user.ID) (domainImage.Images, error)
	FetchImageFn     func(ctx context.Context, id domainImage.ID) (*domainImage.Image, error)
	FetchThumbnailFn func(ctx context.Context, id domainImage.ThumbnailID) (*domainImage.Thumbnail, error)
	CreateImageFn    func(ctx context.Context, req *domainImage.Image, hook domainImage.PostCreateHook) (*domainImage.Image, error)
	DeleteImageFn    func(ctx context.Context, id domainImage.ID) error
}

func (f *FakeImageRepository) FetchImages(ctx context.Context, ownerID user.ID) (domainImage.Images, error) {
	return f.FetchImagesFn(ctx, ownerID)
}

func (f *FakeImageRepository) FetchImage(ctx context.Context, id domainImage.ID) (*domainImage.Image, error) {
	return f.FetchImageFn(ctx, id)
}

func (f *FakeImageRepository) FetchThumbnail(ctx context.Context, id domainImage.ThumbnailID) (*domainImage.Thumbnail, error) {
	return f.FetchThumbnailFn(ctx, id)
}

func (f *FakeImageRepository) CreateImage(ctx context.Context, req *domainImage.Image, hook domainImage.PostCreateHook) (*domainImage.Image, error) {
	return f.CreateImageFn(ctx, req, hook)
}

func (f *FakeImageRepository) DeleteImage(ctx context.Context, id domainImage.ID) error {
	return f.DeleteImageFn(ctx, id)
}

// memoryStore is an in-memory bucket. failPut and failPresign inject backend errors.
type memoryStore struct {
	mu          sync.Mutex
	objects     map[string][]byte
	failPut     func(key string) error
	failRemove  func(key string) error
	failPresign error
	presigned   []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: map[string][]byte{}}
}

func (s *memoryStore) Put(ctx context.Context, key string, payload []byte, contentType string) error {
	if s.failPut != nil {
		if err := s.failPut(key); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = append([]byte(nil), payload...)
	return nil
}

func (s *memoryStore) Remove(ctx context.Context, key string) error {
	if s.failRemove != nil {
		if err := s.failRemove(key); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *memoryStore) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presigned = append(s.presigned, key)
	if s.failPresign != nil {
		return "", s.failPresign
	}
	return "https://bucket.local/" + key + "?X-Amz-Expires=" + ttl.String(), nil
}

func (s *memoryStore) GetBucket() string { return "uploads" }

func (s *memoryStore) keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.objects))
	for k := range s.objects {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

type FakeRabbitMQ struct {
	in chan mq.Event
}

func newFakeRabbitMQ() *FakeRabbitMQ { return &FakeRabbitMQ{in: make(chan mq.Event, 16)} }

func (f *FakeRabbitMQ) Connect(ctx context.Context, dsn string) error { return nil }
func (f *FakeRabbitMQ) Init() error                                   { return nil }
func (f *FakeRabbitMQ) PublisherWorker(ctx context.Context)           {}
func (f *FakeRabbitMQ) GetInputChan() chan mq.Event                   { return f.in }
func (f *FakeRabbitMQ) GetConn() *amqp091.Connection                  { return nil }

func newTestCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_counters"}, []string{"result"})
}

func newTestUser(id user.ID, tier *account_type.AccountType) *user.User {
	return &user.User{
		ID:            id,
		UUID:          uuid.New(),
		Username:      "user",
		AccountTypeID: tier.ID,
	}
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, gradient(w, h), &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, gradient(w, h)))
	return buf.Bytes()
}

func gradient(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

var errBackend = errors.New("backend unavailable")
