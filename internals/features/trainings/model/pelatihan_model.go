// file: internals/features/trainings/model/pelatihan_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// PelatihanModel merepresentasikan tabel pelatihan.
type PelatihanModel struct {
	PelatihanID        uuid.UUID `gorm:"column:pelatihan_id;type:uuid;default:gen_random_uuid();primaryKey" json:"pelatihan_id"`
	PelatihanName      string    `gorm:"column:pelatihan_name;size:150;not null" json:"pelatihan_name"`
	PelatihanStartTime time.Time `gorm:"column:pelatihan_start_time;not null" json:"pelatihan_start_time"`
	PelatihanEndTime   time.Time `gorm:"column:pelatihan_end_time;not null" json:"pelatihan_end_time"`
	PelatihanLocation  string    `gorm:"column:pelatihan_location;size:255" json:"pelatihan_location"`
	PelatihanQuota     int       `gorm:"column:pelatihan_quota;not null" json:"pelatihan_quota"`
	PelatihanStatus    string    `gorm:"column:pelatihan_status;type:varchar(20);not null;default:'upcoming'" json:"pelatihan_status"`
	PelatihanMasjidID  uuid.UUID `gorm:"column:pelatihan_masjid_id;type:uuid;not null" json:"pelatihan_masjid_id"`
	PelatihanCreatedBy uuid.UUID `gorm:"column:pelatihan_created_by;type:uuid;not null" json:"pelatihan_created_by"`

	PelatihanCreatedAt time.Time `gorm:"column:pelatihan_created_at;autoCreateTime" json:"pelatihan_created_at"`
	PelatihanUpdatedAt time.Time `gorm:"column:pelatihan_updated_at;autoUpdateTime" json:"pelatihan_updated_at"`
}

func (PelatihanModel) TableName() string {
	return "pelatihan"
}
