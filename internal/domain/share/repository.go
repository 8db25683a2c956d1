package share

import (
	"context"
)

type Repository interface {
	// CreateShare persists a grant with a server-assigned SharedAt.
	// The (FileID, RecipientEmailLower) pair is guarded by a uniqueness
	// constraint at the storage layer; a conflicting insert surfaces as
	// ErrDuplicateShare from the implementation.
	CreateShare(ctx context.Context, req *ShareGrant) (*ShareGrant, error)
	FetchSharesByRecipient(ctx context.Context, emailLower string) (ShareGrants, error)
	FetchSharesByOwner(ctx context.Context, emailLower string) (ShareGrants, error)
}
