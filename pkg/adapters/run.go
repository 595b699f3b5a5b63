package adapters

import (
	"github.com/de-tools/area-atlas/pkg/models/api"
	"github.com/de-tools/area-atlas/pkg/models/domain"
	"github.com/de-tools/area-atlas/pkg/models/store"
)

func MapStoreRunToDomain(r *store.Run) *domain.Run {
	if r == nil {
		return nil
	}

	return &domain.Run{
		ID:         r.ID,
		FileName:   r.FileName,
		Status:     domain.RunStatus(r.Status),
		Message:    r.Message,
		CreatedAt:  r.CreatedAt,
		FinishedAt: r.FinishedAt,
	}
}

func MapDomainRunToApi(r *domain.Run) api.Run {
	return api.Run{
		ID:         r.ID,
		FileName:   r.FileName,
		Status:     string(r.Status),
		Message:    r.Message,
		CreatedAt:  r.CreatedAt,
		FinishedAt: r.FinishedAt,
	}
}
