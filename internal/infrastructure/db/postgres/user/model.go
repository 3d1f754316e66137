package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	User struct {
		ID            uint64
		UUID          uuid.UUID
		Username      string
		Email         string
		PasswordHash  string
		AccountTypeID uint64

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User
)
