package share

import (
	"time"

	"github.com/google/uuid"

	"fileshare-api/internal/domain/file"
	"fileshare-api/internal/domain/user"
)

type (
	UUID = uuid.UUID

	// ShareGrant gives one recipient address visibility into one file.
	// File attributes are denormalized on purpose: reading a grant never
	// joins against the files table, and the grant stays readable after
	// the file itself is deleted (the snapshot may go stale, which is the
	// accepted trade-off). Grants are created once and never mutated.
	ShareGrant struct {
		UUID   UUID
		FileID file.UUID

		FileName string
		FileURL  string
		FileSize uint64
		FileType string

		OwnerID         user.UUID
		OwnerEmail      string
		OwnerEmailLower string

		RecipientEmail      string
		RecipientEmailLower string

		SharedAt time.Time
	}
	ShareGrants []*ShareGrant

	// Snapshot is one event of a live share feed: the full current result
	// set of that feed's query, or a terminal error closing the feed.
	Snapshot struct {
		Grants ShareGrants
		Err    error
	}
)
