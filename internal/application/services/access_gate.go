package services

import (
	"image-hosting-api/internal/application/ports"
	"image-hosting-api/internal/domain/account_type"
	domainImage "image-hosting-api/internal/domain/image"
	"image-hosting-api/internal/domain/user"
)

// AccessGate decides what a caller may see or sign. Foreign resources are
// reported as missing so their existence is never disclosed.
type AccessGate struct{}

func NewAccessGate() ports.AccessGate { return AccessGate{} }

func (AccessGate) ViewFor(op domainImage.Operation, tier *account_type.AccountType) domainImage.View {
	return domainImage.ResolveView(op, tier)
}

func (AccessGate) AuthorizeOwner(caller *user.User, ownerID user.ID) error {
	if caller == nil || caller.ID != ownerID {
		return ErrNotVisible
	}
	return nil
}

func (g AccessGate) AuthorizeTemporaryLink(caller *user.User, ownerID user.ID) error {
	if err := g.AuthorizeOwner(caller, ownerID); err != nil {
		return err
	}
	if caller.AccountType == nil || !caller.AccountType.TimeLimitedLink {
		return ErrLinkNotAllowed
	}
	return nil
}
