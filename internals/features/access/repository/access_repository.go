// file: internals/features/access/repository/access_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"simasjid_backend/internals/constants"
	"simasjid_backend/internals/features/access/model"
	"simasjid_backend/internals/features/access/service"
	masjidModel "simasjid_backend/internals/features/masjids/model"
	userModel "simasjid_backend/internals/features/users/user/model"
)

// AccessRepository implementasi service.Store di atas GORM/Postgres.
type AccessRepository struct {
	DB *gorm.DB
}

func NewAccessRepository(db *gorm.DB) *AccessRepository {
	return &AccessRepository{DB: db}
}

var _ service.Store = (*AccessRepository)(nil)

func (r *AccessRepository) FindUserByID(ctx context.Context, id uuid.UUID) (*userModel.PenggunaModel, error) {
	var u userModel.PenggunaModel
	err := r.DB.WithContext(ctx).First(&u, "pengguna_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *AccessRepository) FindApprovedEditor(ctx context.Context, masjidID uuid.UUID) (*userModel.PenggunaModel, error) {
	var u userModel.PenggunaModel
	err := r.DB.WithContext(ctx).
		Where("pengguna_role = ? AND pengguna_status = ? AND pengguna_masjid_id = ?",
			constants.RoleEditor, constants.StatusApproved, masjidID).
		Order("pengguna_created_at asc").
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *AccessRepository) UpdateEditorStatus(ctx context.Context, editorID uuid.UUID, newStatus string) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&userModel.PenggunaModel{}).
		Where("pengguna_id = ? AND pengguna_role = ? AND pengguna_status = ?",
			editorID, constants.RoleEditor, constants.StatusPending).
		Update("pengguna_status", newStatus)
	return res.RowsAffected, res.Error
}

func (r *AccessRepository) FindMasjidByID(ctx context.Context, id uuid.UUID) (*masjidModel.MasjidModel, error) {
	var m masjidModel.MasjidModel
	err := r.DB.WithContext(ctx).First(&m, "masjid_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *AccessRepository) ListMasjids(ctx context.Context) ([]masjidModel.MasjidModel, error) {
	var list []masjidModel.MasjidModel
	err := r.DB.WithContext(ctx).Order("masjid_name asc").Find(&list).Error
	return list, err
}

func (r *AccessRepository) ListActiveGrantMasjids(ctx context.Context, viewerID uuid.UUID, now time.Time) ([]masjidModel.MasjidModel, error) {
	var list []masjidModel.MasjidModel
	err := r.DB.WithContext(ctx).
		Table("masjids").
		Joins("JOIN viewer_access ON viewer_access.viewer_access_masjid_id = masjids.masjid_id").
		Where("viewer_access.viewer_access_viewer_id = ?", viewerID).
		Where("viewer_access.viewer_access_status = ?", constants.StatusApproved).
		Where("viewer_access.viewer_access_expires_at IS NULL OR viewer_access.viewer_access_expires_at > ?", now).
		Order("masjids.masjid_name asc").
		Find(&list).Error
	return list, err
}

func (r *AccessRepository) FindGrant(ctx context.Context, viewerID, masjidID uuid.UUID) (*model.ViewerAccessModel, error) {
	var g model.ViewerAccessModel
	err := r.DB.WithContext(ctx).
		Where("viewer_access_viewer_id = ? AND viewer_access_masjid_id = ?", viewerID, masjidID).
		First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *AccessRepository) ListGrantsByMasjid(ctx context.Context, masjidID uuid.UUID, status string) ([]model.ViewerAccessModel, error) {
	q := r.DB.WithContext(ctx).
		Where("viewer_access_masjid_id = ?", masjidID).
		Order("viewer_access_created_at desc")
	if status != "" {
		q = q.Where("viewer_access_status = ?", status)
	}
	var list []model.ViewerAccessModel
	err := q.Find(&list).Error
	return list, err
}

func (r *AccessRepository) FindGrantByID(ctx context.Context, id uuid.UUID) (*model.ViewerAccessModel, error) {
	var g model.ViewerAccessModel
	err := r.DB.WithContext(ctx).First(&g, "viewer_access_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *AccessRepository) CreateGrant(ctx context.Context, g *model.ViewerAccessModel) error {
	err := r.DB.WithContext(ctx).Create(g).Error
	if isUniqueViolation(err) {
		// balapan dengan request lain pada pasangan (viewer, masjid) yang sama
		return service.ErrAlreadyPending
	}
	return err
}

func (r *AccessRepository) ResetGrant(ctx context.Context, grantID, grantedBy uuid.UUID) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&model.ViewerAccessModel{}).
		Where("viewer_access_id = ? AND viewer_access_status IN ?",
			grantID, []string{constants.StatusRejected, constants.StatusApproved}).
		Updates(map[string]interface{}{
			"viewer_access_status":     constants.StatusPending,
			"viewer_access_granted_by": grantedBy,
			"viewer_access_expires_at": nil,
		})
	return res.RowsAffected, res.Error
}

func (r *AccessRepository) UpdateGrantStatus(ctx context.Context, grantID uuid.UUID, newStatus string, grantedBy *uuid.UUID, expiresAt *time.Time) (int64, error) {
	updates := map[string]interface{}{
		"viewer_access_status": newStatus,
	}
	if grantedBy != nil {
		updates["viewer_access_granted_by"] = *grantedBy
	}
	if expiresAt != nil {
		updates["viewer_access_expires_at"] = *expiresAt
	}
	res := r.DB.WithContext(ctx).Model(&model.ViewerAccessModel{}).
		Where("viewer_access_id = ? AND viewer_access_status = ?", grantID, constants.StatusPending).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *AccessRepository) DeleteGrant(ctx context.Context, grantID uuid.UUID) (int64, error) {
	res := r.DB.WithContext(ctx).Delete(&model.ViewerAccessModel{}, "viewer_access_id = ?", grantID)
	return res.RowsAffected, res.Error
}

func (r *AccessRepository) WithinTx(ctx context.Context, fn func(service.Store) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AccessRepository{DB: tx})
	})
}

// --- PG error mapping ---

// 23505 = unique_violation. Dicek lewat SQLState() (pgx) maupun pq.Error
// supaya tidak terikat satu driver.
type pgSQLErr interface {
	SQLState() string
	Error() string
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) && pgErr.SQLState() == "23505" {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == "23505" {
		return true
	}
	return false
}
