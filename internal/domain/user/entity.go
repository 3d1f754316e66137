package user

import (
	"time"

	"github.com/google/uuid"

	"image-hosting-api/internal/domain/account_type"
)

type (
	ID   uint64
	UUID = uuid.UUID
	User struct {
		ID            ID
		UUID          UUID
		Username      string
		Email         string
		PasswordHash  *string
		AccountTypeID account_type.ID
		// AccountType is loaded on demand; nil until resolved.
		AccountType *account_type.AccountType

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User
)
