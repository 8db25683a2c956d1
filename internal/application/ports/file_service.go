package ports

import (
	"context"
	"mime/multipart"

	"fileshare-api/internal/domain/file"
	"fileshare-api/internal/domain/user"
)

type FileService interface {
	UploadFile(ctx context.Context, owner user.Identity, in *multipart.FileHeader, progress func(float64)) (*file.FileRecord, error)
	FindFilesByOwner(ctx context.Context, ownerID user.UUID) (file.FileRecords, error)
	DeleteFile(ctx context.Context, fileID file.UUID, requester user.Identity) error
	DownloadURL(ctx context.Context, fileID file.UUID, requester user.Identity) (string, error)
}
