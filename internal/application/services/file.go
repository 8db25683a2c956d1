package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"

	"fileshare-api/internal/application/ports"
	domain "fileshare-api/internal/domain/file"
	"fileshare-api/internal/domain/user"
	"fileshare-api/internal/infrastructure/mq"
	"fileshare-api/internal/infrastructure/objectstore"
)

var (
	ErrFileTooLarge = errors.New("file exceeds the 50 MiB limit")
	ErrFileNotFound = errors.New("file not found")
	ErrForbidden    = errors.New("operation not permitted")
)

type FileService struct {
	objectStore    ports.ObjectStore
	fileRepository domain.Repository
	mq             ports.RabbitMQ
	mCounter       *prometheus.CounterVec
	now            func() time.Time
}

func NewFileService(
	objectStore ports.ObjectStore,
	fileRepository domain.Repository,
	mq ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.FileService {
	return &FileService{
		objectStore:    objectStore,
		fileRepository: fileRepository,
		mq:             mq,
		mCounter:       mCounter,
		now:            time.Now,
	}
}

func (fs *FileService) FindFilesByOwner(ctx context.Context, ownerID user.UUID) (domain.FileRecords, error) {
	return fs.fileRepository.FetchFilesByOwner(ctx, ownerID)
}

// UploadFile stores the blob first and writes metadata only once the store
// confirmed completion. A metadata write failure leaves the blob orphaned
// on purpose: rolling back a confirmed upload races against the failure and
// risks silent data loss, so the error is surfaced instead.
func (fs *FileService) UploadFile(
	ctx context.Context,
	owner user.Identity,
	in *multipart.FileHeader,
	progress func(float64),
) (*domain.FileRecord, error) {
	if in.Size > objectstore.MaxUploadBytes {
		return nil, ErrFileTooLarge
	}

	fr := fs.fillMetaData(in, owner)

	f, err := in.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if _, err = fs.objectStore.Upload(ctx, fr.StorageKey, f, in.Size, fr.MimeType, progress); err != nil {
		return nil, err
	}

	out, err := fs.fileRepository.CreateFile(ctx, fr)
	if err != nil {
		return nil, fmt.Errorf("persist metadata (blob %q left orphaned): %w", fr.StorageKey, err)
	}

	fs.mCounter.WithLabelValues("files_uploaded_total").Inc()
	fs.mq.GetInputChan() <- mq.Event{
		Id:      uuid.New(),
		TS:      time.Now(),
		Action:  mq.ActionFileUploaded,
		ActorID: owner.ID.String(),
		Payload: map[string]any{"file_id": out.UUID.String(), "file_name": out.FileName, "size_bytes": out.SizeBytes},
	}

	return out, nil
}

func (fs *FileService) fillMetaData(in *multipart.FileHeader, owner user.Identity) *domain.FileRecord {
	fr := &domain.FileRecord{
		OwnerID:    owner.ID,
		OwnerEmail: owner.Email,
		FileName:   objectstore.SanitizeFileName(in.Filename),
		MimeType:   in.Header.Get("Content-Type"),
		SizeBytes:  uint64(in.Size),
		Bucket:     fs.objectStore.Bucket(),
	}
	if fr.MimeType == "" {
		fr.MimeType = "application/octet-stream"
	}
	fr.StorageKey = objectstore.StorageKey(owner.ID, in.Filename, fs.now())
	fr.DownloadURL = fs.objectStore.PublicURL(fr.StorageKey)

	return fr
}

// DeleteFile removes the blob and then the metadata. Only the owner may
// delete. A missing blob is benign; any other blob failure is reported
// but does not stop the metadata removal, since a user-visible record for
// unreachable bytes is worse than a leaked blob.
func (fs *FileService) DeleteFile(ctx context.Context, fileID domain.UUID, requester user.Identity) error {
	fr, err := fs.fileRepository.FetchFileByID(ctx, fileID)
	if err != nil {
		return err
	}
	if fr == nil {
		return ErrFileNotFound
	}
	if fr.OwnerID != requester.ID {
		return ErrForbidden
	}

	var result *multierror.Error
	if err = fs.objectStore.Delete(ctx, fr.StorageKey); err != nil && !errors.Is(err, objectstore.ErrNotFound) {
		result = multierror.Append(result, fmt.Errorf("blob reclaim failed: %w", err))
	}

	deleted, err := fs.fileRepository.DeleteFile(ctx, fileID)
	if err != nil {
		return multierror.Append(result, err).ErrorOrNil()
	}
	if !deleted {
		return ErrFileNotFound
	}

	fs.mCounter.WithLabelValues("files_deleted_total").Inc()
	fs.mq.GetInputChan() <- mq.Event{
		Id:      uuid.New(),
		TS:      time.Now(),
		Action:  mq.ActionFileDeleted,
		ActorID: requester.ID.String(),
		Payload: map[string]any{"file_id": fileID.String(), "file_name": fr.FileName},
	}

	return result.ErrorOrNil()
}

func (fs *FileService) DownloadURL(ctx context.Context, fileID domain.UUID, requester user.Identity) (string, error) {
	fr, err := fs.fileRepository.FetchFileByID(ctx, fileID)
	if err != nil {
		return "", err
	}
	if fr == nil {
		return "", ErrFileNotFound
	}
	if fr.OwnerID != requester.ID {
		return "", ErrForbidden
	}

	return fs.objectStore.DownloadURL(fr.StorageKey)
}
