package account_type

import (
	"errors"
	"sort"
)

var ErrInvalidThumbnailSize = errors.New("thumbnail size must be a positive number of pixels")

type (
	ID uint64
	// ThumbnailSize is a target thumbnail height in pixels.
	ThumbnailSize int
	AccountType   struct {
		ID                ID
		Name              string
		OriginalImageLink bool
		TimeLimitedLink   bool
		ThumbnailSizes    []ThumbnailSize
	}
	AccountTypes []*AccountType
)

func NewThumbnailSize(px int) (ThumbnailSize, error) {
	if px <= 0 {
		return 0, ErrInvalidThumbnailSize
	}
	return ThumbnailSize(px), nil
}

// Heights returns the configured thumbnail heights, deduplicated and ascending.
func (at *AccountType) Heights() []int {
	if at == nil {
		return nil
	}

	seen := make(map[ThumbnailSize]struct{}, len(at.ThumbnailSizes))
	out := make([]int, 0, len(at.ThumbnailSizes))
	for _, s := range at.ThumbnailSizes {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, int(s))
	}
	sort.Ints(out)

	return out
}
