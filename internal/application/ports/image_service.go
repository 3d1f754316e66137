package ports

import (
	"context"
	"time"

	"image-hosting-api/internal/domain/account_type"
	"image-hosting-api/internal/domain/image"
	"image-hosting-api/internal/domain/user"
)

type (
	// NewImage is an upload that passed transport validation.
	NewImage struct {
		DisplayName string
		Payload     []byte
	}

	ImageService interface {
		CreateImage(ctx context.Context, ownerUUID user.UUID, in NewImage) (*image.ImageView, error)
		ListImages(ctx context.Context, ownerUUID user.UUID) (image.ImageViews, error)
		GetImage(ctx context.Context, callerUUID user.UUID, id image.ID) (*image.ImageView, error)
		DeleteImage(ctx context.Context, callerUUID user.UUID, id image.ID) error
	}

	ThumbnailDeriver interface {
		Derive(ctx context.Context, img *image.Image, payload []byte, heights []int) (image.Thumbnails, error)
	}

	TemporaryLink struct {
		URL       string
		ExpiresIn time.Duration
	}

	TemporaryLinkService interface {
		IssueTemporaryLink(
			ctx context.Context,
			callerUUID user.UUID,
			kind string,
			fileID uint64,
			ttlSeconds *int,
		) (*TemporaryLink, error)
	}

	AccessGate interface {
		ViewFor(op image.Operation, tier *account_type.AccountType) image.View
		AuthorizeOwner(caller *user.User, ownerID user.ID) error
		AuthorizeTemporaryLink(caller *user.User, ownerID user.ID) error
	}
)
