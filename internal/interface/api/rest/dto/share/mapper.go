package share

import (
	domain "fileshare-api/internal/domain/share"
)

func ToResponseShareGrant(sDomain domain.ShareGrant) ShareGrant {
	return ShareGrant{
		UUID:           sDomain.UUID,
		FileID:         sDomain.FileID,
		FileName:       sDomain.FileName,
		FileURL:        sDomain.FileURL,
		FileSize:       sDomain.FileSize,
		FileType:       sDomain.FileType,
		OwnerEmail:     sDomain.OwnerEmail,
		RecipientEmail: sDomain.RecipientEmail,
		SharedAt:       sDomain.SharedAt,
	}
}

func ToResponseShareGrants(sDomain domain.ShareGrants) ShareGrants {
	sgs := make(ShareGrants, len(sDomain))
	for idx, s := range sDomain {
		sgs[idx] = ToResponseShareGrant(*s)
	}

	return sgs
}
