// file: internals/features/programs/dto/program_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"simasjid_backend/internals/features/programs/model"
)

type ProgramRequest struct {
	ProgramName        string `json:"program_name" validate:"required,min=3,max=150"`
	ProgramDescription string `json:"program_description" validate:"max=5000"`
}

func (r *ProgramRequest) Normalize() {
	r.ProgramName = strings.TrimSpace(r.ProgramName)
	r.ProgramDescription = strings.TrimSpace(r.ProgramDescription)
}

func (r *ProgramRequest) ToModel(masjidID, createdBy uuid.UUID) *model.ProgramModel {
	return &model.ProgramModel{
		ProgramName:        r.ProgramName,
		ProgramDescription: r.ProgramDescription,
		ProgramMasjidID:    masjidID,
		ProgramCreatedBy:   createdBy,
	}
}

type PublikasiRequest struct {
	PublikasiTitle       string         `json:"publikasi_title" validate:"required,min=3,max=200"`
	PublikasiContent     string         `json:"publikasi_content" validate:"max=20000"`
	PublikasiProgramID   *uuid.UUID     `json:"publikasi_program_id,omitempty"`
	PublikasiAttachments datatypes.JSON `json:"publikasi_attachments,omitempty"`
}

func (r *PublikasiRequest) Normalize() {
	r.PublikasiTitle = strings.TrimSpace(r.PublikasiTitle)
}

func (r *PublikasiRequest) ToModel(masjidID uuid.UUID) *model.PublikasiModel {
	return &model.PublikasiModel{
		PublikasiTitle:       r.PublikasiTitle,
		PublikasiContent:     r.PublikasiContent,
		PublikasiProgramID:   r.PublikasiProgramID,
		PublikasiMasjidID:    masjidID,
		PublikasiAttachments: r.PublikasiAttachments,
	}
}
