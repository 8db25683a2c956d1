package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fileshare-api/internal/domain/file"
	"fileshare-api/internal/domain/share"
	"fileshare-api/internal/domain/user"
)

func grantAt(name string, t time.Time) *share.ShareGrant {
	return &share.ShareGrant{
		UUID:     uuid.New(),
		FileName: name,
		SharedAt: t,
	}
}

func names(grants share.ShareGrants) []string {
	out := make([]string, len(grants))
	for i, g := range grants {
		out[i] = g.FileName
	}
	return out
}

func TestMergeShareGrants_DescendingBySharedAt(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)
	t3 := t1.Add(2 * time.Minute)

	owner := share.ShareGrants{grantAt("A", t1), grantAt("B", t3)}
	recipient := share.ShareGrants{grantAt("C", t2)}

	merged := MergeShareGrants(owner, recipient)
	assert.Equal(t, []string{"B", "C", "A"}, names(merged))

	// Same result regardless of which partition is which.
	merged = MergeShareGrants(recipient, owner)
	assert.Equal(t, []string{"B", "C", "A"}, names(merged))
}

func TestMergeShareGrants_PendingTimestampSortsOldest(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	owner := share.ShareGrants{grantAt("pending", time.Time{})}
	recipient := share.ShareGrants{grantAt("committed", t1)}

	merged := MergeShareGrants(owner, recipient)
	assert.Equal(t, []string{"committed", "pending"}, names(merged))
}

func TestMergeShareGrants_Empty(t *testing.T) {
	merged := MergeShareGrants(nil, nil)
	assert.Empty(t, merged)
}

type fakeShareFeed struct {
	ownerCh     chan share.Snapshot
	recipientCh chan share.Snapshot
}

func (f *fakeShareFeed) WatchByOwner(ctx context.Context, emailLower string) (<-chan share.Snapshot, error) {
	return f.ownerCh, nil
}

func (f *fakeShareFeed) WatchByRecipient(ctx context.Context, emailLower string) (<-chan share.Snapshot, error) {
	return f.recipientCh, nil
}

type fakeFileFeed struct {
	ch chan file.Snapshot
}

func (f *fakeFileFeed) WatchByOwner(ctx context.Context, ownerID user.UUID) (<-chan file.Snapshot, error) {
	return f.ch, nil
}

func recvSnapshot(t *testing.T, ch <-chan share.Snapshot) share.Snapshot {
	t.Helper()
	select {
	case snap, ok := <-ch:
		require.True(t, ok, "feed closed unexpectedly")
		return snap
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
		return share.Snapshot{}
	}
}

func TestSyncService_WatchMyShares_ConvergesForEitherInterleaving(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)
	t3 := t1.Add(2 * time.Minute)

	ownerEvents := []share.ShareGrants{
		{grantAt("A", t1)},
		{grantAt("A", t1), grantAt("B", t3)},
	}
	recipientEvents := []share.ShareGrants{
		{grantAt("C", t2)},
	}

	type delivery struct {
		toOwner bool
		idx     int
	}
	interleavings := [][]delivery{
		{{true, 0}, {true, 1}, {false, 0}},
		{{false, 0}, {true, 0}, {true, 1}},
	}

	for _, order := range interleavings {
		feed := &fakeShareFeed{
			ownerCh:     make(chan share.Snapshot, 4),
			recipientCh: make(chan share.Snapshot, 4),
		}
		ss := NewSyncService(&fakeFileFeed{}, feed)

		ctx, cancel := context.WithCancel(context.Background())
		out, err := ss.WatchMyShares(ctx, "me@gmail.com")
		require.NoError(t, err)

		var last share.Snapshot
		for _, d := range order {
			if d.toOwner {
				feed.ownerCh <- share.Snapshot{Grants: ownerEvents[d.idx]}
			} else {
				feed.recipientCh <- share.Snapshot{Grants: recipientEvents[d.idx]}
			}
			last = recvSnapshot(t, out)
			require.NoError(t, last.Err)
		}

		assert.Equal(t, []string{"B", "C", "A"}, names(last.Grants))
		cancel()
	}
}

func TestSyncService_WatchMyShares_PartitionReplaceIsIdempotent(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	feed := &fakeShareFeed{
		ownerCh:     make(chan share.Snapshot, 4),
		recipientCh: make(chan share.Snapshot, 4),
	}
	ss := NewSyncService(&fakeFileFeed{}, feed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out, err := ss.WatchMyShares(ctx, "me@gmail.com")
	require.NoError(t, err)

	snapshot := share.ShareGrants{grantAt("A", t1)}
	feed.ownerCh <- share.Snapshot{Grants: snapshot}
	first := recvSnapshot(t, out)
	feed.ownerCh <- share.Snapshot{Grants: snapshot}
	second := recvSnapshot(t, out)

	// Redelivering the same full snapshot replaces the partition, it
	// never accumulates.
	assert.Equal(t, names(first.Grants), names(second.Grants))
	assert.Len(t, second.Grants, 1)
}

func TestSyncService_WatchMyShares_FeedErrorIsTerminal(t *testing.T) {
	feed := &fakeShareFeed{
		ownerCh:     make(chan share.Snapshot, 4),
		recipientCh: make(chan share.Snapshot, 4),
	}
	ss := NewSyncService(&fakeFileFeed{}, feed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out, err := ss.WatchMyShares(ctx, "me@gmail.com")
	require.NoError(t, err)

	feed.recipientCh <- share.Snapshot{Err: assert.AnError}
	snap := recvSnapshot(t, out)
	require.Error(t, snap.Err)

	select {
	case _, ok := <-out:
		assert.False(t, ok, "feed must close after a terminal error")
	case <-time.After(time.Second):
		t.Fatal("feed not closed after terminal error")
	}
}

func TestSyncService_WatchMyShares_CancelTearsDown(t *testing.T) {
	feed := &fakeShareFeed{
		ownerCh:     make(chan share.Snapshot, 4),
		recipientCh: make(chan share.Snapshot, 4),
	}
	ss := NewSyncService(&fakeFileFeed{}, feed)

	ctx, cancel := context.WithCancel(context.Background())
	out, err := ss.WatchMyShares(ctx, "me@gmail.com")
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-out:
		assert.False(t, ok, "feed must close on cancellation")
	case <-time.After(time.Second):
		t.Fatal("feed not closed after cancel")
	}
}
