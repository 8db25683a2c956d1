package user

import (
	"context"
)

type Repository interface {
	FetchUserByEmail(ctx context.Context, email string) (*User, error)
	FetchUserByID(ctx context.Context, uuid UUID) (*User, error)
	CreateUser(ctx context.Context, req User) (*User, error)
}
