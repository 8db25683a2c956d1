package ports

import (
	"context"

	"fileshare-api/internal/domain/user"
)

type Auth interface {
	Register(ctx context.Context, email, password string) (*user.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}
