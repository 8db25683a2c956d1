package file

import (
	domain "fileshare-api/internal/domain/file"
)

func ToResponseFileRecord(fDomain domain.FileRecord) FileRecord {
	return FileRecord{
		UUID:        fDomain.UUID,
		FileName:    fDomain.FileName,
		MimeType:    fDomain.MimeType,
		SizeBytes:   fDomain.SizeBytes,
		StorageKey:  fDomain.StorageKey,
		DownloadURL: fDomain.DownloadURL,
		CreatedAt:   fDomain.CreatedAt,
	}
}

func ToResponseFileRecords(fDomain domain.FileRecords) FileRecords {
	frs := make(FileRecords, len(fDomain))
	for idx, f := range fDomain {
		frs[idx] = ToResponseFileRecord(*f)
	}

	return frs
}
