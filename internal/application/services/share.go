package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"fileshare-api/internal/application/ports"
	"fileshare-api/internal/domain/file"
	domain "fileshare-api/internal/domain/share"
	"fileshare-api/internal/domain/user"
	shareDB "fileshare-api/internal/infrastructure/db/postgres/share"
	"fileshare-api/internal/infrastructure/mq"
)

var (
	ErrInvalidRecipient = errors.New("recipient must be a valid gmail address")
	ErrSelfShare        = errors.New("cannot share a file with yourself")
	ErrAlreadyShared    = errors.New("file is already shared with this recipient")
)

// Only one mail provider's address format is accepted for recipients.
var gmailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@gmail\.com$`)

type ShareService struct {
	shareRepository domain.Repository
	fileRepository  file.Repository
	mq              ports.RabbitMQ
	mCounter        *prometheus.CounterVec
}

func NewShareService(
	shareRepository domain.Repository,
	fileRepository file.Repository,
	mq ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.ShareService {
	return &ShareService{
		shareRepository: shareRepository,
		fileRepository:  fileRepository,
		mq:              mq,
		mCounter:        mCounter,
	}
}

// NormalizeEmail is the matching form used for self-share and duplicate
// checks and for recipient/owner lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ShareFile validates in a fixed order, first failure wins and nothing is
// persisted: recipient format, then self-share, then duplicate. The
// duplicate check is the insert itself, conditional on the ledger's
// (file_id, recipient_email_lower) uniqueness constraint, so two racing
// share attempts cannot both commit.
func (ss *ShareService) ShareFile(
	ctx context.Context,
	fileID file.UUID,
	sharer user.Identity,
	recipientEmail string,
) (*domain.ShareGrant, error) {
	if !gmailRe.MatchString(recipientEmail) {
		return nil, ErrInvalidRecipient
	}
	if NormalizeEmail(recipientEmail) == NormalizeEmail(sharer.Email) {
		return nil, ErrSelfShare
	}

	fr, err := ss.fileRepository.FetchFileByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if fr == nil {
		return nil, ErrFileNotFound
	}
	if fr.OwnerID != sharer.ID {
		return nil, ErrForbidden
	}

	req := &domain.ShareGrant{
		FileID: fr.UUID,

		FileName: fr.FileName,
		FileURL:  fr.DownloadURL,
		FileSize: fr.SizeBytes,
		FileType: fr.MimeType,

		OwnerID:         sharer.ID,
		OwnerEmail:      sharer.Email,
		OwnerEmailLower: NormalizeEmail(sharer.Email),

		RecipientEmail:      strings.TrimSpace(recipientEmail),
		RecipientEmailLower: NormalizeEmail(recipientEmail),
	}

	out, err := ss.shareRepository.CreateShare(ctx, req)
	if err != nil {
		if errors.Is(err, shareDB.ErrDuplicateShare) {
			return nil, ErrAlreadyShared
		}
		return nil, err
	}

	ss.mCounter.WithLabelValues("shares_created_total").Inc()
	ss.mq.GetInputChan() <- mq.Event{
		Id:      uuid.New(),
		TS:      time.Now(),
		Action:  mq.ActionShareCreated,
		ActorID: sharer.ID.String(),
		Payload: map[string]any{"share_id": out.UUID.String(), "file_id": out.FileID.String(), "recipient": out.RecipientEmail},
	}

	return out, nil
}

func (ss *ShareService) FindSharesByRecipient(ctx context.Context, email string) (domain.ShareGrants, error) {
	return ss.shareRepository.FetchSharesByRecipient(ctx, NormalizeEmail(email))
}

func (ss *ShareService) FindSharesByOwner(ctx context.Context, email string) (domain.ShareGrants, error) {
	return ss.shareRepository.FetchSharesByOwner(ctx, NormalizeEmail(email))
}
