package image

import "image-hosting-api/internal/domain/account_type"

// View selects which fields of an image a caller may see.
type View uint8

const (
	// BasicView exposes the image identity and its thumbnails only.
	BasicView View = iota + 1
	// FullView additionally exposes the original image reference.
	FullView
)

type Operation uint8

const (
	OpCreate Operation = iota + 1
	OpList
	OpRetrieve
)

type ImageView struct {
	View  View
	Image *Image
}
type ImageViews []ImageView

// ResolveView maps an operation and the caller's tier to a response shape.
func ResolveView(op Operation, tier *account_type.AccountType) View {
	switch op {
	case OpCreate, OpList, OpRetrieve:
		if tier != nil && tier.OriginalImageLink {
			return FullView
		}
	}
	return BasicView
}
