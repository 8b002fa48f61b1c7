// file: internals/features/users/user/dto/pengguna_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"simasjid_backend/internals/features/users/user/model"
)

type PenggunaResponse struct {
	PenggunaID     string     `json:"pengguna_id"`
	PenggunaName   string     `json:"pengguna_name"`
	PenggunaEmail  string     `json:"pengguna_email"`
	PenggunaRole   string     `json:"pengguna_role"`
	PenggunaStatus string     `json:"pengguna_status"`
	MasjidID       *uuid.UUID `json:"masjid_id,omitempty"`
	Provider       *string    `json:"provider,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func FromModel(u *model.PenggunaModel) PenggunaResponse {
	return PenggunaResponse{
		PenggunaID:     u.PenggunaID.String(),
		PenggunaName:   u.PenggunaName,
		PenggunaEmail:  u.PenggunaEmail,
		PenggunaRole:   u.PenggunaRole,
		PenggunaStatus: u.PenggunaStatus,
		MasjidID:       u.PenggunaMasjidID,
		Provider:       u.PenggunaProvider,
		CreatedAt:      u.PenggunaCreatedAt,
	}
}

func FromModels(list []model.PenggunaModel) []PenggunaResponse {
	out := make([]PenggunaResponse, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i]))
	}
	return out
}
