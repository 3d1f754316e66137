package services

import (
	"context"
	"fmt"
	"time"

	"image-hosting-api/internal/application/ports"
	"image-hosting-api/internal/domain"
	"image-hosting-api/internal/domain/account_type"
	domainImage "image-hosting-api/internal/domain/image"
	"image-hosting-api/internal/domain/user"
)

const (
	MinTemporaryLinkTTL     = 300
	MaxTemporaryLinkTTL     = 30000
	DefaultTemporaryLinkTTL = 3600

	FileKindImage     = "image"
	FileKindThumbnail = "thumbnail"
)

type FileKind string

func ParseFileKind(s string) (FileKind, error) {
	switch s {
	case FileKindImage, FileKindThumbnail:
		return FileKind(s), nil
	}
	return "", ErrInvalidFileKind
}

// ResolveTTL applies the default and checks the inclusive bounds.
func ResolveTTL(seconds *int) (time.Duration, error) {
	if seconds == nil {
		return DefaultTemporaryLinkTTL * time.Second, nil
	}
	if *seconds < MinTemporaryLinkTTL || *seconds > MaxTemporaryLinkTTL {
		return 0, ErrInvalidTTL
	}
	return time.Duration(*seconds) * time.Second, nil
}

type TemporaryLinkService struct {
	callers         callerLoader
	imageRepository domainImage.Repository
	store           ports.ObjectStore
	gate            ports.AccessGate
}

func NewTemporaryLinkService(
	userRepository user.Repository,
	accountTypeRepository account_type.Repository,
	imageRepository domainImage.Repository,
	store ports.ObjectStore,
	gate ports.AccessGate,
) ports.TemporaryLinkService {
	return &TemporaryLinkService{
		callers: callerLoader{
			userRepository:        userRepository,
			accountTypeRepository: accountTypeRepository,
		},
		imageRepository: imageRepository,
		store:           store,
		gate:            gate,
	}
}

// IssueTemporaryLink validates the request before any lookup, then signs a
// read URL for the exact storage key of the requested file.
func (ts *TemporaryLinkService) IssueTemporaryLink(
	ctx context.Context,
	callerUUID user.UUID,
	kind string,
	fileID uint64,
	ttlSeconds *int,
) (*ports.TemporaryLink, error) {
	fk, err := ParseFileKind(kind)
	if err != nil {
		return nil, err
	}
	ttl, err := ResolveTTL(ttlSeconds)
	if err != nil {
		return nil, err
	}

	caller, err := ts.callers.load(ctx, callerUUID)
	if err != nil {
		return nil, err
	}

	ownerID, key, err := ts.lookup(ctx, fk, fileID)
	if err != nil {
		return nil, err
	}
	if err = ts.gate.AuthorizeTemporaryLink(caller, ownerID); err != nil {
		return nil, err
	}

	url, err := ts.store.PresignGet(ctx, key, ttl)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}

	return &ports.TemporaryLink{URL: url, ExpiresIn: ttl}, nil
}

func (ts *TemporaryLinkService) lookup(ctx context.Context, kind FileKind, id uint64) (user.ID, string, error) {
	switch kind {
	case FileKindThumbnail:
		th, err := ts.imageRepository.FetchThumbnail(ctx, domainImage.ThumbnailID(id))
		if err != nil {
			return 0, "", err
		}
		if th == nil {
			return 0, "", ErrThumbnailNotFound
		}
		return th.OwnerID, th.StorageKey, nil
	default:
		img, err := ts.imageRepository.FetchImage(ctx, domainImage.ID(id))
		if err != nil {
			return 0, "", err
		}
		if img == nil {
			return 0, "", ErrImageNotFound
		}
		return img.OwnerID, img.StorageKey, nil
	}
}
