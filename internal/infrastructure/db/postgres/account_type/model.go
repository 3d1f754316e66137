package account_type

type (
	AccountType struct {
		ID                uint64
		Name              string
		OriginalImageLink bool
		TimeLimitedLink   bool
		Sizes             []int
	}
	AccountTypes []*AccountType
)
