package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	UUID = uuid.UUID
	User struct {
		UUID         UUID
		Email        string
		PasswordHash *string

		CreatedAt time.Time
		DeletedAt *time.Time
	}
	Users []*User

	// Identity is the authenticated principal attached to a request:
	// a stable user id plus the verified email the token was issued for.
	Identity struct {
		ID    UUID
		Email string
	}
)
