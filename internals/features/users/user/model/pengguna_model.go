// file: internals/features/users/user/model/pengguna_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// PenggunaModel merepresentasikan tabel pengguna di database.
// Password nullable: akun hasil login Google tidak punya password lokal.
type PenggunaModel struct {
	PenggunaID       uuid.UUID  `gorm:"column:pengguna_id;type:uuid;default:gen_random_uuid();primaryKey" json:"pengguna_id"`
	PenggunaName     string     `gorm:"column:pengguna_name;size:100;not null" json:"pengguna_name"`
	PenggunaEmail    string     `gorm:"column:pengguna_email;size:255;unique;not null" json:"pengguna_email"`
	PenggunaPassword *string    `gorm:"column:pengguna_password" json:"-"`
	PenggunaRole     string     `gorm:"column:pengguna_role;type:varchar(20);not null;default:'viewer'" json:"pengguna_role"`
	PenggunaStatus   string     `gorm:"column:pengguna_status;type:varchar(20);not null;default:'pending'" json:"pengguna_status"`
	PenggunaMasjidID *uuid.UUID `gorm:"column:pengguna_masjid_id;type:uuid" json:"pengguna_masjid_id,omitempty"`

	// Identitas eksternal (OAuth)
	PenggunaProvider   *string `gorm:"column:pengguna_provider;size:30" json:"pengguna_provider,omitempty"`
	PenggunaProviderID *string `gorm:"column:pengguna_provider_id;size:255" json:"-"`

	PenggunaCreatedAt time.Time `gorm:"column:pengguna_created_at;autoCreateTime" json:"pengguna_created_at"`
	PenggunaUpdatedAt time.Time `gorm:"column:pengguna_updated_at;autoUpdateTime" json:"pengguna_updated_at"`
}

func (PenggunaModel) TableName() string {
	return "pengguna"
}

// IsApprovedEditorOf: editor approved yang home masjid-nya = masjidID.
func (u *PenggunaModel) IsApprovedEditorOf(masjidID uuid.UUID) bool {
	return u.PenggunaRole == "editor" &&
		u.PenggunaStatus == "approved" &&
		u.PenggunaMasjidID != nil &&
		*u.PenggunaMasjidID == masjidID
}
