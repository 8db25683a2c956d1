package file

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	domain "fileshare-api/internal/domain/file"
	"fileshare-api/internal/domain/user"
	"fileshare-api/internal/infrastructure/db/postgres"
)

const notifyChannel = "files_changed"

// Feed delivers live file-list snapshots, re-querying on every
// files table notification.
type Feed struct {
	pool *pgxpool.Pool
	repo *Repository
}

func NewFeed(pool *pgxpool.Pool, repo *Repository) *Feed {
	return &Feed{pool: pool, repo: repo}
}

func (f *Feed) WatchByOwner(ctx context.Context, ownerID user.UUID) (<-chan domain.Snapshot, error) {
	in, err := postgres.Subscribe(ctx, f.pool, notifyChannel, func(ctx context.Context) (domain.FileRecords, error) {
		return f.repo.FetchFilesByOwner(ctx, ownerID)
	})
	if err != nil {
		return nil, err
	}

	out := make(chan domain.Snapshot, 1)
	go func() {
		defer close(out)
		for res := range in {
			select {
			case out <- domain.Snapshot{Files: res.Value, Err: res.Err}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
