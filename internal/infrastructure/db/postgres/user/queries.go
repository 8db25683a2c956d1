package user

const (
	SelectUserByEmail = `
		SELECT id, uuid, email, password_hash, created_at, deleted_at
		FROM users
		WHERE lower(email) = lower($1) AND deleted_at IS NULL
	`
	SelectUserByUUID = `
		SELECT id, uuid, email, password_hash, created_at, deleted_at
		FROM users
		WHERE uuid = $1 AND deleted_at IS NULL
	`
	InsertUser = `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING
		  id, uuid, email, password_hash, created_at, deleted_at
	`
)
