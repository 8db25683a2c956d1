package file

import (
	"time"

	"github.com/google/uuid"

	"fileshare-api/internal/domain/user"
)

type (
	UUID = uuid.UUID

	// FileRecord is the metadata document for one uploaded object.
	// Everything except the db-assigned UUID and CreatedAt is fixed at
	// creation time; records are never updated, only soft-deleted.
	FileRecord struct {
		UUID       UUID
		OwnerID    user.UUID
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

	// Snapshot is one event of a live file-list feed: the full current
	// result set, or a terminal error after which the feed is closed.
	Snapshot struct {
		Files FileRecords
		Err   error
	}
)
