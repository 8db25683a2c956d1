package services

import (
	"context"
	"sort"

	"fileshare-api/internal/application/ports"
	"fileshare-api/internal/domain/file"
	"fileshare-api/internal/domain/share"
	"fileshare-api/internal/domain/user"
)

// The backing store cannot answer "owner = me OR recipient = me" as one
// live query, so the share view runs two independent subscriptions and
// merges client-side. Every event carries a full snapshot of its own
// partition; merging is replace-then-resort, never a patch of the merged
// list, which makes the result independent of how the two feeds
// interleave. There is no cross-feed ordering guarantee to lean on.

type SyncService struct {
	fileFeed  ports.FileFeed
	shareFeed ports.ShareFeed
}

func NewSyncService(fileFeed ports.FileFeed, shareFeed ports.ShareFeed) ports.Sync {
	return &SyncService{
		fileFeed:  fileFeed,
		shareFeed: shareFeed,
	}
}

// MergeShareGrants is the pure merge operator: concatenate both partitions
// and sort descending by SharedAt. A zero SharedAt (timestamp still
// pending server-side) sorts oldest. Equal timestamps keep a stable order.
func MergeShareGrants(owner, recipient share.ShareGrants) share.ShareGrants {
	merged := make(share.ShareGrants, 0, len(owner)+len(recipient))
	merged = append(merged, owner...)
	merged = append(merged, recipient...)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].SharedAt.After(merged[j].SharedAt)
	})

	return merged
}

func (ss *SyncService) WatchMyFiles(ctx context.Context, ownerID user.UUID) (<-chan file.Snapshot, error) {
	return ss.fileFeed.WatchByOwner(ctx, ownerID)
}

func (ss *SyncService) WatchMyShares(ctx context.Context, email string) (<-chan share.Snapshot, error) {
	emailLower := NormalizeEmail(email)

	// Cancelling watchCtx tears down both feeds together; a restarted
	// view starts from empty partitions, never from stale ones.
	watchCtx, cancel := context.WithCancel(ctx)

	ownerCh, err := ss.shareFeed.WatchByOwner(watchCtx, emailLower)
	if err != nil {
		cancel()
		return nil, err
	}
	recipientCh, err := ss.shareFeed.WatchByRecipient(watchCtx, emailLower)
	if err != nil {
		cancel()
		return nil, err
	}

	out := make(chan share.Snapshot, 1)
	go func() {
		defer close(out)
		defer cancel()

		var ownerPart, recipientPart share.ShareGrants

		emit := func(snap share.Snapshot) bool {
			select {
			case out <- snap:
				return true
			case <-watchCtx.Done():
				return false
			}
		}

		for ownerCh != nil || recipientCh != nil {
			select {
			case snap, ok := <-ownerCh:
				if !ok {
					ownerCh = nil
					continue
				}
				if snap.Err != nil {
					emit(share.Snapshot{Err: snap.Err})
					return
				}
				ownerPart = snap.Grants
			case snap, ok := <-recipientCh:
				if !ok {
					recipientCh = nil
					continue
				}
				if snap.Err != nil {
					emit(share.Snapshot{Err: snap.Err})
					return
				}
				recipientPart = snap.Grants
			case <-watchCtx.Done():
				return
			}

			if !emit(share.Snapshot{Grants: MergeShareGrants(ownerPart, recipientPart)}) {
				return
			}
		}
	}()

	return out, nil
}
