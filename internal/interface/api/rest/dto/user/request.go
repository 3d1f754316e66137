package user

type (
	Request struct {
		Username      string `json:"username"`
		Email         string `json:"email"`
		Password      string `json:"password"`
		AccountTypeID uint64 `json:"account_type_id"`
	}
	ChangePasswordRequest struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
)
