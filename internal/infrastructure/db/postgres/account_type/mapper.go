package account_type

import (
	"fmt"

	domain "image-hosting-api/internal/domain/account_type"
)

func fromDBModel(model *AccountType) (*domain.AccountType, error) {
	sizes := make([]domain.ThumbnailSize, 0, len(model.Sizes))
	for _, px := range model.Sizes {
		s, err := domain.NewThumbnailSize(px)
		if err != nil {
			return nil, fmt.Errorf("account type %d: %w", model.ID, err)
		}
		sizes = append(sizes, s)
	}

	var at = &domain.AccountType{
		ID:                domain.ID(model.ID),
		Name:              model.Name,
		OriginalImageLink: model.OriginalImageLink,
		TimeLimitedLink:   model.TimeLimitedLink,
		ThumbnailSizes:    sizes,
	}

	return at, nil
}

func fromDBModels(models AccountTypes) (domain.AccountTypes, error) {
	ats := make(domain.AccountTypes, len(models))
	for idx, m := range models {
		at, err := fromDBModel(m)
		if err != nil {
			return nil, err
		}
		ats[idx] = at
	}

	return ats, nil
}
