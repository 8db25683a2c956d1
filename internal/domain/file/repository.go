package file

import (
	"context"

	"fileshare-api/internal/domain/user"
)

type Repository interface {
	CreateFile(ctx context.Context, req *FileRecord) (*FileRecord, error)
	FetchFileByID(ctx context.Context, fileUUID UUID) (*FileRecord, error)
	FetchFilesByOwner(ctx context.Context, ownerID user.UUID) (FileRecords, error)
	// DeleteFile reports whether a live record was actually removed,
	// so a repeated delete can be told apart from a successful one.
	DeleteFile(ctx context.Context, fileUUID UUID) (bool, error)
}
