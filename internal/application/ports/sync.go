package ports

import (
	"context"

	"fileshare-api/internal/domain/file"
	"fileshare-api/internal/domain/share"
	"fileshare-api/internal/domain/user"
)

type Sync interface {
	// WatchMyFiles streams the owner's live file list.
	WatchMyFiles(ctx context.Context, ownerID user.UUID) (<-chan file.Snapshot, error)
	// WatchMyShares streams the merged live view of grants where the
	// caller is owner or recipient, re-merged on every partition update.
	WatchMyShares(ctx context.Context, email string) (<-chan share.Snapshot, error)
}
