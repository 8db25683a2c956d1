package share

import (
	domain "fileshare-api/internal/domain/share"
)

func fromDBModel(model *ShareGrant) *domain.ShareGrant {
	return &domain.ShareGrant{
		UUID:   model.UUID,
		FileID: model.FileID,

		FileName: model.FileName,
		FileURL:  model.FileURL,
		FileSize: model.FileSize,
		FileType: model.FileType,

		OwnerID:         model.OwnerID,
		OwnerEmail:      model.OwnerEmail,
		OwnerEmailLower: model.OwnerEmailLower,

		RecipientEmail:      model.RecipientEmail,
		RecipientEmailLower: model.RecipientEmailLower,

		SharedAt: model.SharedAt,
	}
}

func fromDBModels(models *ShareGrants) domain.ShareGrants {
	sgs := make(domain.ShareGrants, len(*models))
	for idx, m := range *models {
		sgs[idx] = fromDBModel(m)
	}

	return sgs
}
