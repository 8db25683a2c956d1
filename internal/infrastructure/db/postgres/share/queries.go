package share

// The shares table carries a unique index on (file_id, recipient_email_lower)
// so two racing share attempts for the same pair cannot both commit; the
// loser's insert simply returns no row.
const (
	shareColumns = `id, uuid, file_id, file_name, file_url, file_size, file_type, owner_id, owner_email, owner_email_lower, recipient_email, recipient_email_lower, shared_at`

	SelectSharesByRecipient = `
		SELECT ` + shareColumns + `
		FROM shares
		WHERE recipient_email_lower = $1
		ORDER BY shared_at DESC
	`
	SelectSharesByOwner = `
		SELECT ` + shareColumns + `
		FROM shares
		WHERE owner_email_lower = $1
		ORDER BY shared_at DESC
	`
	InsertShare = `
		INSERT INTO shares (file_id, file_name, file_url, file_size, file_type, owner_id, owner_email, owner_email_lower, recipient_email, recipient_email_lower)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (file_id, recipient_email_lower) DO NOTHING
		RETURNING
		  ` + shareColumns + `
	`
)
