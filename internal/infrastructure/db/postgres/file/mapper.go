package file

import (
	domain "fileshare-api/internal/domain/file"
)

func fromDBModel(model *FileRecord) *domain.FileRecord {
	return &domain.FileRecord{
		UUID:       model.UUID,
		OwnerID:    model.OwnerID,
		OwnerEmail: model.OwnerEmail,

		Bucket:      model.Bucket,
		StorageKey:  model.StorageKey,
		FileName:    model.FileName,
		MimeType:    model.MimeType,
		SizeBytes:   model.SizeBytes,
		DownloadURL: model.DownloadURL,

		CreatedAt: model.CreatedAt,
		DeletedAt: model.DeletedAt,
	}
}

func fromDBModels(models *FileRecords) domain.FileRecords {
	frs := make(domain.FileRecords, len(*models))
	for idx, m := range *models {
		frs[idx] = fromDBModel(m)
	}

	return frs
}
