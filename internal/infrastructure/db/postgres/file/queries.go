package file

const (
	SelectFilesByOwner = `
		SELECT id, uuid, owner_id, owner_email, bucket, storage_key, file_name, mime_type, size_bytes, download_url, created_at, deleted_at
		FROM files
		WHERE owner_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`
	SelectFileByUUID = `
		SELECT id, uuid, owner_id, owner_email, bucket, storage_key, file_name, mime_type, size_bytes, download_url, created_at, deleted_at
		FROM files
		WHERE uuid = $1 AND deleted_at IS NULL
	`
	InsertFile = `
		INSERT INTO files (owner_id, owner_email, bucket, storage_key, file_name, mime_type, size_bytes, download_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING
		  id, uuid, owner_id, owner_email, bucket, storage_key, file_name, mime_type, size_bytes, download_url, created_at, deleted_at
	`
	SoftDeleteFileByUUID = `
		UPDATE files
		SET deleted_at = now()
		WHERE uuid = $1 AND deleted_at IS NULL
	`
)
