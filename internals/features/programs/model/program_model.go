// file: internals/features/programs/model/program_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ProgramModel merepresentasikan tabel programs (program keberlanjutan masjid).
// CRUD pass-through: tidak ada invariant selain scoping masjid lewat gate akses.
type ProgramModel struct {
	ProgramID          uuid.UUID `gorm:"column:program_id;type:uuid;default:gen_random_uuid();primaryKey" json:"program_id"`
	ProgramName        string    `gorm:"column:program_name;size:150;not null" json:"program_name"`
	ProgramDescription string    `gorm:"column:program_description" json:"program_description"`
	ProgramMasjidID    uuid.UUID `gorm:"column:program_masjid_id;type:uuid;not null" json:"program_masjid_id"`
	ProgramCreatedBy   uuid.UUID `gorm:"column:program_created_by;type:uuid;not null" json:"program_created_by"`

	ProgramCreatedAt time.Time `gorm:"column:program_created_at;autoCreateTime" json:"program_created_at"`
	ProgramUpdatedAt time.Time `gorm:"column:program_updated_at;autoUpdateTime" json:"program_updated_at"`
}

func (ProgramModel) TableName() string {
	return "programs"
}

// PublikasiModel merepresentasikan tabel publikasi (laporan/artikel program).
// Attachments disimpan sebagai JSON (daftar url + judul).
type PublikasiModel struct {
	PublikasiID          uuid.UUID      `gorm:"column:publikasi_id;type:uuid;default:gen_random_uuid();primaryKey" json:"publikasi_id"`
	PublikasiTitle       string         `gorm:"column:publikasi_title;size:200;not null" json:"publikasi_title"`
	PublikasiContent     string         `gorm:"column:publikasi_content" json:"publikasi_content"`
	PublikasiProgramID   *uuid.UUID     `gorm:"column:publikasi_program_id;type:uuid" json:"publikasi_program_id,omitempty"`
	PublikasiMasjidID    uuid.UUID      `gorm:"column:publikasi_masjid_id;type:uuid;not null" json:"publikasi_masjid_id"`
	PublikasiAttachments datatypes.JSON `gorm:"column:publikasi_attachments" json:"publikasi_attachments,omitempty"`

	PublikasiCreatedAt time.Time `gorm:"column:publikasi_created_at;autoCreateTime" json:"publikasi_created_at"`
	PublikasiUpdatedAt time.Time `gorm:"column:publikasi_updated_at;autoUpdateTime" json:"publikasi_updated_at"`
}

func (PublikasiModel) TableName() string {
	return "publikasi"
}
