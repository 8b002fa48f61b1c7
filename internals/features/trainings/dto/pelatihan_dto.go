// file: internals/features/trainings/dto/pelatihan_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"simasjid_backend/internals/features/trainings/model"
	"simasjid_backend/internals/features/trainings/service"
)

/* =========================================================
   REQUEST DTO
========================================================= */

type PelatihanRequest struct {
	PelatihanName      string    `json:"pelatihan_name" validate:"required,min=3,max=150"`
	PelatihanStartTime time.Time `json:"pelatihan_start_time" validate:"required"`
	PelatihanEndTime   time.Time `json:"pelatihan_end_time" validate:"required,gtfield=PelatihanStartTime"`
	PelatihanLocation  string    `json:"pelatihan_location" validate:"max=255"`
	PelatihanQuota     int       `json:"pelatihan_quota" validate:"required,gt=0"`
	PelatihanStatus    string    `json:"pelatihan_status" validate:"omitempty,oneof=upcoming ongoing completed cancelled"`
}

func (r *PelatihanRequest) Normalize() {
	r.PelatihanName = strings.TrimSpace(r.PelatihanName)
	r.PelatihanLocation = strings.TrimSpace(r.PelatihanLocation)
	r.PelatihanStatus = strings.ToLower(strings.TrimSpace(r.PelatihanStatus))
}

func (r *PelatihanRequest) ToModel(masjidID, createdBy uuid.UUID) *model.PelatihanModel {
	return &model.PelatihanModel{
		PelatihanName:      r.PelatihanName,
		PelatihanStartTime: r.PelatihanStartTime,
		PelatihanEndTime:   r.PelatihanEndTime,
		PelatihanLocation:  r.PelatihanLocation,
		PelatihanQuota:     r.PelatihanQuota,
		PelatihanStatus:    r.PelatihanStatus,
		PelatihanMasjidID:  masjidID,
		PelatihanCreatedBy: createdBy,
	}
}

func (r *PelatihanRequest) ApplyToModel(t *model.PelatihanModel) {
	t.PelatihanName = r.PelatihanName
	t.PelatihanStartTime = r.PelatihanStartTime
	t.PelatihanEndTime = r.PelatihanEndTime
	t.PelatihanLocation = r.PelatihanLocation
	t.PelatihanQuota = r.PelatihanQuota
	if r.PelatihanStatus != "" {
		t.PelatihanStatus = r.PelatihanStatus
	}
}

type RegisterRequest struct {
	PelatihanID uuid.UUID `json:"pelatihan_id" validate:"required"`
	Note        *string   `json:"note,omitempty" validate:"omitempty,max=500"`
}

type UpdatePendaftarRequest struct {
	Status string  `json:"status" validate:"required,oneof=pending approved rejected attended"`
	Note   *string `json:"note,omitempty" validate:"omitempty,max=500"`
}

/* =========================================================
   RESPONSE DTO
========================================================= */

type PelatihanResponse struct {
	PelatihanID  string                `json:"pelatihan_id"`
	Name         string                `json:"name"`
	StartTime    time.Time             `json:"start_time"`
	EndTime      time.Time             `json:"end_time"`
	Location     string                `json:"location"`
	Quota        int                   `json:"quota"`
	Status       string                `json:"status"`
	MasjidID     string                `json:"masjid_id"`
	CreatedBy    string                `json:"created_by"`
	Availability *service.Availability `json:"availability,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
}

func FromModel(t *model.PelatihanModel) PelatihanResponse {
	return PelatihanResponse{
		PelatihanID: t.PelatihanID.String(),
		Name:        t.PelatihanName,
		StartTime:   t.PelatihanStartTime,
		EndTime:     t.PelatihanEndTime,
		Location:    t.PelatihanLocation,
		Quota:       t.PelatihanQuota,
		Status:      t.PelatihanStatus,
		MasjidID:    t.PelatihanMasjidID.String(),
		CreatedBy:   t.PelatihanCreatedBy.String(),
		CreatedAt:   t.PelatihanCreatedAt,
	}
}

func FromModels(list []model.PelatihanModel) []PelatihanResponse {
	out := make([]PelatihanResponse, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i]))
	}
	return out
}

type PendaftarResponse struct {
	PendaftarID string    `json:"pendaftar_id"`
	PelatihanID string    `json:"pelatihan_id"`
	UserID      string    `json:"user_id"`
	Status      string    `json:"status"`
	Note        *string   `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func PendaftarFromModel(p *model.PendaftarPelatihanModel) PendaftarResponse {
	return PendaftarResponse{
		PendaftarID: p.PendaftarID.String(),
		PelatihanID: p.PendaftarPelatihanID.String(),
		UserID:      p.PendaftarUserID.String(),
		Status:      p.PendaftarStatus,
		Note:        p.PendaftarNote,
		CreatedAt:   p.PendaftarCreatedAt,
	}
}
