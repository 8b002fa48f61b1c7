// file: internals/features/trainings/model/pendaftar_pelatihan_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// PendaftarPelatihanModel merepresentasikan tabel pendaftar_pelatihan.
// Satu user maksimal satu baris per pelatihan (unique index).
// masjid_id didenormalisasi dari pelatihan supaya gate akses tidak perlu join.
type PendaftarPelatihanModel struct {
	PendaftarID          uuid.UUID `gorm:"column:pendaftar_id;type:uuid;default:gen_random_uuid();primaryKey" json:"pendaftar_id"`
	PendaftarPelatihanID uuid.UUID `gorm:"column:pendaftar_pelatihan_id;type:uuid;not null;uniqueIndex:uq_pendaftar_pelatihan_user" json:"pendaftar_pelatihan_id"`
	PendaftarUserID      uuid.UUID `gorm:"column:pendaftar_user_id;type:uuid;not null;uniqueIndex:uq_pendaftar_pelatihan_user" json:"pendaftar_user_id"`
	PendaftarStatus      string    `gorm:"column:pendaftar_status;type:varchar(20);not null;default:'pending'" json:"pendaftar_status"`
	PendaftarMasjidID    uuid.UUID `gorm:"column:pendaftar_masjid_id;type:uuid;not null" json:"pendaftar_masjid_id"`
	PendaftarNote        *string   `gorm:"column:pendaftar_note" json:"pendaftar_note,omitempty"`

	PendaftarCreatedAt time.Time `gorm:"column:pendaftar_created_at;autoCreateTime" json:"pendaftar_created_at"`
}

func (PendaftarPelatihanModel) TableName() string {
	return "pendaftar_pelatihan"
}

// HoldsSeat: hanya pending & approved yang menempati kursi kuota.
func (p *PendaftarPelatihanModel) HoldsSeat() bool {
	return p.PendaftarStatus == "pending" || p.PendaftarStatus == "approved"
}
