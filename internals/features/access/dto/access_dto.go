// file: internals/features/access/dto/access_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"simasjid_backend/internals/features/access/model"
)

type ViewerAccessRequest struct {
	MasjidID uuid.UUID `json:"masjid_id" validate:"required"`
}

type ViewerAccessResponse struct {
	ViewerAccessID string     `json:"viewer_access_id"`
	ViewerID       string     `json:"viewer_id"`
	MasjidID       string     `json:"masjid_id"`
	GrantedBy      *uuid.UUID `json:"granted_by,omitempty"`
	Status         string     `json:"status"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func FromModel(g *model.ViewerAccessModel) ViewerAccessResponse {
	return ViewerAccessResponse{
		ViewerAccessID: g.ViewerAccessID.String(),
		ViewerID:       g.ViewerAccessViewerID.String(),
		MasjidID:       g.ViewerAccessMasjidID.String(),
		GrantedBy:      g.ViewerAccessGrantedBy,
		Status:         g.ViewerAccessStatus,
		ExpiresAt:      g.ViewerAccessExpiresAt,
		CreatedAt:      g.ViewerAccessCreatedAt,
	}
}

func FromModels(list []model.ViewerAccessModel) []ViewerAccessResponse {
	out := make([]ViewerAccessResponse, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i]))
	}
	return out
}
