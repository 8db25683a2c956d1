package file

import (
	"time"

	"github.com/google/uuid"
)

type (
	FileRecord struct {
		ID         uint64
		UUID       uuid.UUID
		OwnerID    uuid.UUID
		OwnerEmail string

		Bucket      string
		StorageKey  string
		FileName    string
		MimeType    string
		SizeBytes   uint64
		DownloadURL string

		CreatedAt time.Time
		DeletedAt *time.Time
	}
	FileRecords []*FileRecord
)
