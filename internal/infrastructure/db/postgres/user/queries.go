package user

const (
	SelectUserByID = `
		SELECT id, uuid, username, email, password_hash, account_type_id, created_at, updated_at
		FROM users
		WHERE uuid = $1
	`
	SelectUserByUsername = `
		SELECT id, uuid, username, email, password_hash, account_type_id, created_at, updated_at
		FROM users
		WHERE username = $1
	`
	InsertUser = `
		INSERT INTO users (username, email, password_hash, account_type_id)
		VALUES ($1, $2, $3, $4)
		RETURNING
		  id, uuid, username, email, password_hash, account_type_id, created_at, updated_at
	`
	UpdatePasswordByID = `
		UPDATE users
		SET password_hash = $1,
		    updated_at = now()
		WHERE id = $2
	`

	constraintUsername = "users_username_key"
	constraintEmail    = "users_email_key"
)
