// file: internals/features/masjids/dto/masjid_dto.go
package dto

import (
	"strings"
	"time"

	"simasjid_backend/internals/features/masjids/model"
)

/* =========================================================
   REQUEST DTO: CREATE / UPDATE (writable fields only)
========================================================= */

type MasjidRequest struct {
	MasjidName    string `json:"masjid_name" validate:"required,min=3,max=100"`
	MasjidAddress string `json:"masjid_address" validate:"required,max=255"`
}

func (r *MasjidRequest) Normalize() {
	r.MasjidName = strings.TrimSpace(r.MasjidName)
	r.MasjidAddress = strings.TrimSpace(r.MasjidAddress)
}

func (r *MasjidRequest) ToModel() *model.MasjidModel {
	return &model.MasjidModel{
		MasjidName:    r.MasjidName,
		MasjidAddress: r.MasjidAddress,
	}
}

/* =========================================================
   RESPONSE DTO
========================================================= */

type MasjidResponse struct {
	MasjidID      string    `json:"masjid_id"`
	MasjidName    string    `json:"masjid_name"`
	MasjidAddress string    `json:"masjid_address"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func FromModel(m *model.MasjidModel) MasjidResponse {
	return MasjidResponse{
		MasjidID:      m.MasjidID.String(),
		MasjidName:    m.MasjidName,
		MasjidAddress: m.MasjidAddress,
		CreatedAt:     m.MasjidCreatedAt,
		UpdatedAt:     m.MasjidUpdatedAt,
	}
}

func FromModels(list []model.MasjidModel) []MasjidResponse {
	out := make([]MasjidResponse, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i]))
	}
	return out
}
