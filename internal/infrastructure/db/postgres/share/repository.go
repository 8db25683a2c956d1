package share

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domain "fileshare-api/internal/domain/share"
	"fileshare-api/internal/infrastructure/db/postgres"
)

var ErrDuplicateShare = errors.New("share already exists for this file and recipient")

const uniqueViolation = "23505"

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateShare(ctx context.Context, req *domain.ShareGrant) (*domain.ShareGrant, error) {
	sg := new(ShareGrant)

	err := r.db.QueryRow(
		ctx,
		InsertShare,
		req.FileID, req.FileName, req.FileURL, req.FileSize, req.FileType,
		req.OwnerID, req.OwnerEmail, req.OwnerEmailLower,
		req.RecipientEmail, req.RecipientEmailLower,
	).Scan(
		&sg.ID,
		&sg.UUID,
		&sg.FileID,

		&sg.FileName,
		&sg.FileURL,
		&sg.FileSize,
		&sg.FileType,

		&sg.OwnerID,
		&sg.OwnerEmail,
		&sg.OwnerEmailLower,

		&sg.RecipientEmail,
		&sg.RecipientEmailLower,

		&sg.SharedAt,
	)
	if err != nil {
		// ON CONFLICT DO NOTHING yields no row on a duplicate; a concurrent
		// insert can still surface as a direct unique violation.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDuplicateShare
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrDuplicateShare
		}
		return nil, err
	}

	return fromDBModel(sg), nil
}

func (r *Repository) FetchSharesByRecipient(ctx context.Context, emailLower string) (domain.ShareGrants, error) {
	return r.fetchShares(ctx, SelectSharesByRecipient, emailLower)
}

func (r *Repository) FetchSharesByOwner(ctx context.Context, emailLower string) (domain.ShareGrants, error) {
	return r.fetchShares(ctx, SelectSharesByOwner, emailLower)
}

func (r *Repository) fetchShares(ctx context.Context, query, emailLower string) (domain.ShareGrants, error) {
	rows, err := r.db.Query(ctx, query, emailLower)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sgs ShareGrants
	for rows.Next() {
		sg := new(ShareGrant)

		if err = rows.Scan(
			&sg.ID,
			&sg.UUID,
			&sg.FileID,

			&sg.FileName,
			&sg.FileURL,
			&sg.FileSize,
			&sg.FileType,

			&sg.OwnerID,
			&sg.OwnerEmail,
			&sg.OwnerEmailLower,

			&sg.RecipientEmail,
			&sg.RecipientEmailLower,

			&sg.SharedAt,
		); err != nil {
			return nil, err
		}

		sgs = append(sgs, sg)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&sgs), nil
}
