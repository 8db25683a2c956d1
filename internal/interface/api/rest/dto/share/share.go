package share

import (
	"time"

	"github.com/google/uuid"
)

type (
	Request struct {
		RecipientEmail string `json:"recipient_email"`
	}

	ShareGrant struct {
		UUID           uuid.UUID `json:"uuid"`
		FileID         uuid.UUID `json:"file_id"`
		FileName       string    `json:"file_name"`
		FileURL        string    `json:"file_url"`
		FileSize       uint64    `json:"file_size"`
		FileType       string    `json:"file_type"`
		OwnerEmail     string    `json:"owner_email"`
		RecipientEmail string    `json:"recipient_email"`
		SharedAt       time.Time `json:"shared_at"`
	}
	ShareGrants  []ShareGrant
	ResponseData struct {
		Data ShareGrants `json:"data"`
	}
)
