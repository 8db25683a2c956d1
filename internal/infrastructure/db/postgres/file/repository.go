package file

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domain "fileshare-api/internal/domain/file"
	"fileshare-api/internal/domain/user"
	"fileshare-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchFilesByOwner(ctx context.Context, ownerID user.UUID) (domain.FileRecords, error) {
	rows, err := r.db.Query(ctx, SelectFilesByOwner, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var frs FileRecords
	for rows.Next() {
		fr := new(FileRecord)

		if err = rows.Scan(
			&fr.ID,
			&fr.UUID,
			&fr.OwnerID,
			&fr.OwnerEmail,

			&fr.Bucket,
			&fr.StorageKey,
			&fr.FileName,
			&fr.MimeType,
			&fr.SizeBytes,
			&fr.DownloadURL,

			&fr.CreatedAt,
			&fr.DeletedAt,
		); err != nil {
			return nil, err
		}

		frs = append(frs, fr)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&frs), nil
}

func (r *Repository) FetchFileByID(ctx context.Context, fileUUID domain.UUID) (*domain.FileRecord, error) {
	fr := new(FileRecord)
	err := r.db.QueryRow(ctx, SelectFileByUUID, fileUUID).Scan(
		&fr.ID,
		&fr.UUID,
		&fr.OwnerID,
		&fr.OwnerEmail,

		&fr.Bucket,
		&fr.StorageKey,
		&fr.FileName,
		&fr.MimeType,
		&fr.SizeBytes,
		&fr.DownloadURL,

		&fr.CreatedAt,
		&fr.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return fromDBModel(fr), nil
}

func (r *Repository) CreateFile(ctx context.Context, req *domain.FileRecord) (*domain.FileRecord, error) {
	fr := new(FileRecord)

	err := r.db.QueryRow(
		ctx,
		InsertFile,
		req.OwnerID, req.OwnerEmail, req.Bucket, req.StorageKey, req.FileName, req.MimeType, req.SizeBytes, req.DownloadURL,
	).Scan(
		&fr.ID,
		&fr.UUID,
		&fr.OwnerID,
		&fr.OwnerEmail,

		&fr.Bucket,
		&fr.StorageKey,
		&fr.FileName,
		&fr.MimeType,
		&fr.SizeBytes,
		&fr.DownloadURL,

		&fr.CreatedAt,
		&fr.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	return fromDBModel(fr), nil
}

func (r *Repository) DeleteFile(ctx context.Context, fileUUID domain.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, SoftDeleteFileByUUID, fileUUID)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}
