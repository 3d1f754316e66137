package account_type

import "context"

type Repository interface {
	FetchAccountType(ctx context.Context, id ID) (*AccountType, error)
	FetchAccountTypes(ctx context.Context) (AccountTypes, error)
}
