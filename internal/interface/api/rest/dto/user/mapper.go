package user

import (
	"strings"

	"image-hosting-api/internal/application/ports"
	"image-hosting-api/internal/domain/account_type"
	"image-hosting-api/internal/domain/user"
)

func ToResponseUser(uDomain user.User) User {
	var u = User{
		UUID:     uDomain.UUID,
		Username: uDomain.Username,
		Email:    uDomain.Email,
	}
	if uDomain.AccountType != nil {
		at := ToResponseAccountType(*uDomain.AccountType)
		u.AccountType = &at
	}

	return u
}

func ToResponseAccountType(atDomain account_type.AccountType) AccountType {
	return AccountType{
		ID:                uint64(atDomain.ID),
		Name:              atDomain.Name,
		OriginalImageLink: atDomain.OriginalImageLink,
		TimeLimitedLink:   atDomain.TimeLimitedLink,
		ThumbnailSizes:    atDomain.Heights(),
	}
}

func ToResponseAccountTypes(atsDomain account_type.AccountTypes) AccountTypes {
	ats := make(AccountTypes, len(atsDomain))
	for idx, at := range atsDomain {
		ats[idx] = ToResponseAccountType(*at)
	}

	return ats
}

func ToRegistration(uRequest Request) ports.Registration {
	return ports.Registration{
		Username:      strings.TrimSpace(uRequest.Username),
		Email:         strings.ToLower(strings.TrimSpace(uRequest.Email)),
		Password:      uRequest.Password,
		AccountTypeID: uRequest.AccountTypeID,
	}
}
