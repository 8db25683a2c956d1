package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fileDomain "fileshare-api/internal/domain/file"
	domain "fileshare-api/internal/domain/share"
	"fileshare-api/internal/domain/user"
	shareDB "fileshare-api/internal/infrastructure/db/postgres/share"
	"fileshare-api/internal/infrastructure/mq"
)

type fakeShareRepo struct {
	createCalled bool
	CreateFunc   func(ctx context.Context, req *domain.ShareGrant) (*domain.ShareGrant, error)
	ByRecipient  func(ctx context.Context, emailLower string) (domain.ShareGrants, error)
	ByOwner      func(ctx context.Context, emailLower string) (domain.ShareGrants, error)
}

func (f *fakeShareRepo) CreateShare(ctx context.Context, req *domain.ShareGrant) (*domain.ShareGrant, error) {
	f.createCalled = true
	if f.CreateFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CreateFunc(ctx, req)
}

func (f *fakeShareRepo) FetchSharesByRecipient(ctx context.Context, emailLower string) (domain.ShareGrants, error) {
	if f.ByRecipient == nil {
		return nil, errors.New("not used")
	}
	return f.ByRecipient(ctx, emailLower)
}

func (f *fakeShareRepo) FetchSharesByOwner(ctx context.Context, emailLower string) (domain.ShareGrants, error) {
	if f.ByOwner == nil {
		return nil, errors.New("not used")
	}
	return f.ByOwner(ctx, emailLower)
}

type fakeFileRepo struct {
	FetchByIDFunc func(ctx context.Context, fileUUID fileDomain.UUID) (*fileDomain.FileRecord, error)
	ByOwnerFunc   func(ctx context.Context, ownerID user.UUID) (fileDomain.FileRecords, error)
	CreateFunc    func(ctx context.Context, req *fileDomain.FileRecord) (*fileDomain.FileRecord, error)
	DeleteFunc    func(ctx context.Context, fileUUID fileDomain.UUID) (bool, error)
}

func (f *fakeFileRepo) FetchFileByID(ctx context.Context, fileUUID fileDomain.UUID) (*fileDomain.FileRecord, error) {
	if f.FetchByIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchByIDFunc(ctx, fileUUID)
}

func (f *fakeFileRepo) FetchFilesByOwner(ctx context.Context, ownerID user.UUID) (fileDomain.FileRecords, error) {
	if f.ByOwnerFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ByOwnerFunc(ctx, ownerID)
}

func (f *fakeFileRepo) CreateFile(ctx context.Context, req *fileDomain.FileRecord) (*fileDomain.FileRecord, error) {
	if f.CreateFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CreateFunc(ctx, req)
}

func (f *fakeFileRepo) DeleteFile(ctx context.Context, fileUUID fileDomain.UUID) (bool, error) {
	if f.DeleteFunc == nil {
		return false, errors.New("not used")
	}
	return f.DeleteFunc(ctx, fileUUID)
}

type fakeMQ struct {
	in chan mq.Event
}

func newFakeMQ() *fakeMQ { return &fakeMQ{in: make(chan mq.Event, 8)} }

func (f *fakeMQ) Connect(ctx context.Context, dsn string) error { return nil }
func (f *fakeMQ) Init() error                                   { return nil }
func (f *fakeMQ) PublisherWorker(ctx context.Context)           {}
func (f *fakeMQ) GetInputChan() chan mq.Event                   { return f.in }
func (f *fakeMQ) GetConn() *amqp091.Connection                  { return nil }

func testCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "test", Name: "general_counters"},
		[]string{"result"},
	)
}

func ownedFile(ownerID user.UUID) *fileDomain.FileRecord {
	return &fileDomain.FileRecord{
		UUID:        uuid.New(),
		OwnerID:     ownerID,
		OwnerEmail:  "owner@gmail.com",
		FileName:    "report.pdf",
		MimeType:    "application/pdf",
		SizeBytes:   2 << 20,
		StorageKey:  "files/x/1_report.pdf",
		DownloadURL: "https://bucket.s3.eu-west-1.amazonaws.com/files/x/1_report.pdf",
		CreatedAt:   time.Now(),
	}
}

func TestShareService_ShareFile_ValidationOrder(t *testing.T) {
	ownerID := uuid.New()
	sharer := user.Identity{ID: ownerID, Email: "owner@gmail.com"}

	tests := []struct {
		name      string
		recipient string
		wantErr   error
	}{
		{"rejects non-gmail address", "friend@yahoo.com", ErrInvalidRecipient},
		{"rejects malformed address", "not-an-email", ErrInvalidRecipient},
		{"rejects self share exact", "owner@gmail.com", ErrSelfShare},
		{"rejects self share case-insensitive", "OWNER@gmail.com", ErrSelfShare},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeShareRepo{}
			ss := NewShareService(repo, &fakeFileRepo{}, newFakeMQ(), testCounter())

			sg, err := ss.ShareFile(context.Background(), uuid.New(), sharer, tt.recipient)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, sg)
			assert.False(t, repo.createCalled, "no side effects on validation failure")
		})
	}
}

func TestShareService_ShareFile_SelfShareToleratesWhitespace(t *testing.T) {
	ownerID := uuid.New()
	// Identity email as arrived from the provider, whitespace included.
	sharer := user.Identity{ID: ownerID, Email: "  Owner@gmail.com "}

	ss := NewShareService(&fakeShareRepo{}, &fakeFileRepo{}, newFakeMQ(), testCounter())

	_, err := ss.ShareFile(context.Background(), uuid.New(), sharer, "owner@gmail.com")
	require.ErrorIs(t, err, ErrSelfShare)
}

func TestShareService_ShareFile_FileChecks(t *testing.T) {
	ownerID := uuid.New()
	stranger := user.Identity{ID: uuid.New(), Email: "stranger@gmail.com"}
	sharer := user.Identity{ID: ownerID, Email: "owner@gmail.com"}
	fr := ownedFile(ownerID)

	t.Run("missing file", func(t *testing.T) {
		fileRepo := &fakeFileRepo{
			FetchByIDFunc: func(ctx context.Context, fileUUID fileDomain.UUID) (*fileDomain.FileRecord, error) {
				return nil, nil
			},
		}
		ss := NewShareService(&fakeShareRepo{}, fileRepo, newFakeMQ(), testCounter())

		_, err := ss.ShareFile(context.Background(), uuid.New(), sharer, "friend@gmail.com")
		require.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("non-owner cannot share", func(t *testing.T) {
		fileRepo := &fakeFileRepo{
			FetchByIDFunc: func(ctx context.Context, fileUUID fileDomain.UUID) (*fileDomain.FileRecord, error) {
				return fr, nil
			},
		}
		repo := &fakeShareRepo{}
		ss := NewShareService(repo, fileRepo, newFakeMQ(), testCounter())

		_, err := ss.ShareFile(context.Background(), fr.UUID, stranger, "friend@gmail.com")
		require.ErrorIs(t, err, ErrForbidden)
		assert.False(t, repo.createCalled)
	})
}

func TestShareService_ShareFile_Duplicate(t *testing.T) {
	ownerID := uuid.New()
	sharer := user.Identity{ID: ownerID, Email: "owner@gmail.com"}
	fr := ownedFile(ownerID)

	fileRepo := &fakeFileRepo{
		FetchByIDFunc: func(ctx context.Context, fileUUID fileDomain.UUID) (*fileDomain.FileRecord, error) {
			return fr, nil
		},
	}
	repo := &fakeShareRepo{
		CreateFunc: func(ctx context.Context, req *domain.ShareGrant) (*domain.ShareGrant, error) {
			return nil, shareDB.ErrDuplicateShare
		},
	}
	ss := NewShareService(repo, fileRepo, newFakeMQ(), testCounter())

	_, err := ss.ShareFile(context.Background(), fr.UUID, sharer, "friend@gmail.com")
	require.ErrorIs(t, err, ErrAlreadyShared)
}

func TestShareService_ShareFile_Success(t *testing.T) {
	ownerID := uuid.New()
	sharer := user.Identity{ID: ownerID, Email: "Owner@gmail.com"}
	fr := ownedFile(ownerID)

	fileRepo := &fakeFileRepo{
		FetchByIDFunc: func(ctx context.Context, fileUUID fileDomain.UUID) (*fileDomain.FileRecord, error) {
			return fr, nil
		},
	}

	var created *domain.ShareGrant
	repo := &fakeShareRepo{
		CreateFunc: func(ctx context.Context, req *domain.ShareGrant) (*domain.ShareGrant, error) {
			created = req
			out := *req
			out.UUID = uuid.New()
			out.SharedAt = time.Now()
			return &out, nil
		},
	}
	fmq := newFakeMQ()
	ss := NewShareService(repo, fileRepo, fmq, testCounter())

	sg, err := ss.ShareFile(context.Background(), fr.UUID, sharer, "  friend@gmail.com")
	require.Error(t, err, "leading whitespace fails the recipient pattern")
	require.ErrorIs(t, err, ErrInvalidRecipient)

	sg, err = ss.ShareFile(context.Background(), fr.UUID, sharer, "Friend@gmail.com")
	require.NoError(t, err)
	require.NotNil(t, sg)

	// Denormalized snapshot of the file at share time.
	assert.Equal(t, fr.UUID, created.FileID)
	assert.Equal(t, fr.FileName, created.FileName)
	assert.Equal(t, fr.DownloadURL, created.FileURL)
	assert.Equal(t, fr.SizeBytes, created.FileSize)
	assert.Equal(t, fr.MimeType, created.FileType)

	assert.Equal(t, "Owner@gmail.com", created.OwnerEmail)
	assert.Equal(t, "owner@gmail.com", created.OwnerEmailLower)
	assert.Equal(t, "Friend@gmail.com", created.RecipientEmail)
	assert.Equal(t, "friend@gmail.com", created.RecipientEmailLower)

	require.Len(t, fmq.in, 1)
	ev := <-fmq.in
	assert.Equal(t, mq.ActionShareCreated, ev.Action)
}
