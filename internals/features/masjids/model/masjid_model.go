// file: internals/features/masjids/model/masjid_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// MasjidModel merepresentasikan tabel masjids di database.
// Entitas daun: semua entitas lain menunjuk ke sini lewat masjid_id.
type MasjidModel struct {
	MasjidID      uuid.UUID `gorm:"column:masjid_id;type:uuid;default:gen_random_uuid();primaryKey" json:"masjid_id"`
	MasjidName    string    `gorm:"column:masjid_name;size:100;not null" json:"masjid_name"`
	MasjidAddress string    `gorm:"column:masjid_address;size:255;not null" json:"masjid_address"`

	MasjidCreatedAt time.Time `gorm:"column:masjid_created_at;autoCreateTime" json:"masjid_created_at"`
	MasjidUpdatedAt time.Time `gorm:"column:masjid_updated_at;autoUpdateTime" json:"masjid_updated_at"`
}

func (MasjidModel) TableName() string {
	return "masjids"
}
