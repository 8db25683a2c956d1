package share

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	domain "fileshare-api/internal/domain/share"
	"fileshare-api/internal/infrastructure/db/postgres"
)

const notifyChannel = "shares_changed"

// Feed delivers live share snapshots. The owner-side and recipient-side
// watches are independent subscriptions over the same notification channel;
// merging them is the sync engine's job, not the feed's.
type Feed struct {
	pool *pgxpool.Pool
	repo *Repository
}

func NewFeed(pool *pgxpool.Pool, repo *Repository) *Feed {
	return &Feed{pool: pool, repo: repo}
}

func (f *Feed) WatchByOwner(ctx context.Context, emailLower string) (<-chan domain.Snapshot, error) {
	return f.watch(ctx, func(ctx context.Context) (domain.ShareGrants, error) {
		return f.repo.FetchSharesByOwner(ctx, emailLower)
	})
}

func (f *Feed) WatchByRecipient(ctx context.Context, emailLower string) (<-chan domain.Snapshot, error) {
	return f.watch(ctx, func(ctx context.Context) (domain.ShareGrants, error) {
		return f.repo.FetchSharesByRecipient(ctx, emailLower)
	})
}

func (f *Feed) watch(ctx context.Context, query func(context.Context) (domain.ShareGrants, error)) (<-chan domain.Snapshot, error) {
	in, err := postgres.Subscribe(ctx, f.pool, notifyChannel, query)
	if err != nil {
		return nil, err
	}

	out := make(chan domain.Snapshot, 1)
	go func() {
		defer close(out)
		for res := range in {
			select {
			case out <- domain.Snapshot{Grants: res.Value, Err: res.Err}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
