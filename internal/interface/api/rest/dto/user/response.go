package user

import (
	"github.com/google/uuid"
)

type (
	AccountType struct {
		ID                uint64 `json:"id"`
		Name              string `json:"name"`
		OriginalImageLink bool   `json:"original_image_link"`
		TimeLimitedLink   bool   `json:"time_limited_link"`
		ThumbnailSizes    []int  `json:"thumbnail_sizes"`
	}
	AccountTypes []AccountType

	User struct {
		UUID        uuid.UUID    `json:"uuid"`
		Username    string       `json:"username"`
		Email       string       `json:"email"`
		AccountType *AccountType `json:"account_type,omitempty"`
	}
	Users        []User
	ResponseData struct {
		Data Users `json:"data"`
	}
	AccountTypesResponse struct {
		Data AccountTypes `json:"data"`
	}
)
