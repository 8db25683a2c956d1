package share

import (
	"time"

	"github.com/google/uuid"
)

type (
	ShareGrant struct {
		ID     uint64
		UUID   uuid.UUID
		FileID uuid.UUID

		FileName string
		FileURL  string
		FileSize uint64
		FileType string

		OwnerID         uuid.UUID
		OwnerEmail      string
		OwnerEmailLower string

		RecipientEmail      string
		RecipientEmailLower string

		SharedAt time.Time
	}
	ShareGrants []*ShareGrant
)
