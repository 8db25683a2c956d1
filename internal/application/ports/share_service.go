package ports

import (
	"context"

	"fileshare-api/internal/domain/file"
	"fileshare-api/internal/domain/share"
	"fileshare-api/internal/domain/user"
)

type ShareService interface {
	ShareFile(ctx context.Context, fileID file.UUID, sharer user.Identity, recipientEmail string) (*share.ShareGrant, error)
	FindSharesByRecipient(ctx context.Context, email string) (share.ShareGrants, error)
	FindSharesByOwner(ctx context.Context, email string) (share.ShareGrants, error)
}
