package ports

import (
	"context"

	"fileshare-api/internal/domain/file"
	"fileshare-api/internal/domain/share"
	"fileshare-api/internal/domain/user"
)

// FileFeed and ShareFeed are the change-feed primitives of the backing
// store: each watch is a standing query delivering full result-set
// snapshots until its context is cancelled or a terminal error arrives.

type FileFeed interface {
	WatchByOwner(ctx context.Context, ownerID user.UUID) (<-chan file.Snapshot, error)
}

type ShareFeed interface {
	WatchByOwner(ctx context.Context, emailLower string) (<-chan share.Snapshot, error)
	WatchByRecipient(ctx context.Context, emailLower string) (<-chan share.Snapshot, error)
}
