// file: internals/features/access/model/viewer_access_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// ViewerAccessModel merepresentasikan tabel viewer_access.
// Maksimal satu baris per pasangan (viewer, masjid); request ulang setelah
// ditolak menimpa baris lama, bukan membuat baris baru.
type ViewerAccessModel struct {
	ViewerAccessID        uuid.UUID  `gorm:"column:viewer_access_id;type:uuid;default:gen_random_uuid();primaryKey" json:"viewer_access_id"`
	ViewerAccessViewerID  uuid.UUID  `gorm:"column:viewer_access_viewer_id;type:uuid;not null;uniqueIndex:uq_viewer_access_viewer_masjid" json:"viewer_access_viewer_id"`
	ViewerAccessMasjidID  uuid.UUID  `gorm:"column:viewer_access_masjid_id;type:uuid;not null;uniqueIndex:uq_viewer_access_viewer_masjid" json:"viewer_access_masjid_id"`
	ViewerAccessGrantedBy *uuid.UUID `gorm:"column:viewer_access_granted_by;type:uuid" json:"viewer_access_granted_by,omitempty"`
	ViewerAccessStatus    string     `gorm:"column:viewer_access_status;type:varchar(20);not null;default:'pending'" json:"viewer_access_status"`
	ViewerAccessExpiresAt *time.Time `gorm:"column:viewer_access_expires_at" json:"viewer_access_expires_at,omitempty"`

	ViewerAccessCreatedAt time.Time `gorm:"column:viewer_access_created_at;autoCreateTime" json:"viewer_access_created_at"`
}

func (ViewerAccessModel) TableName() string {
	return "viewer_access"
}

// IsActive: approved dan belum kedaluwarsa pada waktu now.
// Expiry lewat berarti akses mati walau kolom status masih 'approved'.
func (g *ViewerAccessModel) IsActive(now time.Time) bool {
	if g.ViewerAccessStatus != "approved" {
		return false
	}
	if g.ViewerAccessExpiresAt == nil {
		return true
	}
	return g.ViewerAccessExpiresAt.After(now)
}
