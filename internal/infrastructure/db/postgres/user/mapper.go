package user

import (
	"image-hosting-api/internal/domain/account_type"
	domain "image-hosting-api/internal/domain/user"
)

func fromDBModel(model *User) *domain.User {
	hash := model.PasswordHash

	var u = &domain.User{
		ID:            domain.ID(model.ID),
		UUID:          model.UUID,
		Username:      model.Username,
		Email:         model.Email,
		PasswordHash:  &hash,
		AccountTypeID: account_type.ID(model.AccountTypeID),

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	return u
}
