// file: internals/features/trainings/repository/training_repository.go
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"simasjid_backend/internals/constants"
	"simasjid_backend/internals/features/trainings/model"
	"simasjid_backend/internals/features/trainings/service"
)

// TrainingRepository implementasi service.Store di atas GORM/Postgres.
// Register memakai WithinTx + LockTraining (SELECT ... FOR UPDATE) supaya cek
// kuota dan insert pendaftar atomik terhadap register lain di pelatihan sama.
type TrainingRepository struct {
	DB *gorm.DB
}

func NewTrainingRepository(db *gorm.DB) *TrainingRepository {
	return &TrainingRepository{DB: db}
}

var _ service.Store = (*TrainingRepository)(nil)

func (r *TrainingRepository) FindTraining(ctx context.Context, id uuid.UUID) (*model.PelatihanModel, error) {
	var t model.PelatihanModel
	err := r.DB.WithContext(ctx).First(&t, "pelatihan_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TrainingRepository) LockTraining(ctx context.Context, id uuid.UUID) (*model.PelatihanModel, error) {
	var t model.PelatihanModel
	err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&t, "pelatihan_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TrainingRepository) CreateTraining(ctx context.Context, t *model.PelatihanModel) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *TrainingRepository) SaveTraining(ctx context.Context, t *model.PelatihanModel) error {
	return r.DB.WithContext(ctx).Save(t).Error
}

func (r *TrainingRepository) DeleteTraining(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.DB.WithContext(ctx).Delete(&model.PelatihanModel{}, "pelatihan_id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *TrainingRepository) ListTrainingsByMasjid(ctx context.Context, masjidID uuid.UUID) ([]model.PelatihanModel, error) {
	var list []model.PelatihanModel
	err := r.DB.WithContext(ctx).
		Where("pelatihan_masjid_id = ?", masjidID).
		Order("pelatihan_start_time desc").
		Find(&list).Error
	return list, err
}

func (r *TrainingRepository) CountActiveRegistrations(ctx context.Context, trainingID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.PendaftarPelatihanModel{}).
		Where("pendaftar_pelatihan_id = ? AND pendaftar_status IN ?",
			trainingID, []string{constants.PendaftarPending, constants.PendaftarApproved}).
		Count(&count).Error
	return count, err
}

func (r *TrainingRepository) FindRegistration(ctx context.Context, trainingID, userID uuid.UUID) (*model.PendaftarPelatihanModel, error) {
	var p model.PendaftarPelatihanModel
	err := r.DB.WithContext(ctx).
		Where("pendaftar_pelatihan_id = ? AND pendaftar_user_id = ?", trainingID, userID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *TrainingRepository) FindRegistrationByID(ctx context.Context, id uuid.UUID) (*model.PendaftarPelatihanModel, error) {
	var p model.PendaftarPelatihanModel
	err := r.DB.WithContext(ctx).First(&p, "pendaftar_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *TrainingRepository) CreateRegistration(ctx context.Context, p *model.PendaftarPelatihanModel) error {
	err := r.DB.WithContext(ctx).Create(p).Error
	if isUniqueViolation(err) {
		// backstop unique (pelatihan, user) kalau ada register balapan
		return service.ErrAlreadyRegistered
	}
	return err
}

func (r *TrainingRepository) UpdateRegistrationStatus(ctx context.Context, id uuid.UUID, status string, note *string) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&model.PendaftarPelatihanModel{}).
		Where("pendaftar_id = ?", id).
		Updates(map[string]interface{}{
			"pendaftar_status": status,
			"pendaftar_note":   note,
		})
	return res.RowsAffected, res.Error
}

func (r *TrainingRepository) ListParticipants(ctx context.Context, trainingID uuid.UUID, status string, offset, limit int) ([]service.ParticipantRow, int64, error) {
	base := r.DB.WithContext(ctx).Model(&model.PendaftarPelatihanModel{}).
		Where("pendaftar_pelatihan_id = ?", trainingID)
	if status != "" {
		base = base.Where("pendaftar_status = ?", status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []service.ParticipantRow
	err := base.
		Select(`pendaftar_pelatihan.pendaftar_id AS pendaftar_id,
			pengguna.pengguna_id AS user_id,
			pengguna.pengguna_name AS user_name,
			pengguna.pengguna_email AS user_email,
			pendaftar_pelatihan.pendaftar_status AS status,
			pendaftar_pelatihan.pendaftar_note AS note,
			pendaftar_pelatihan.pendaftar_created_at AS registered_at`).
		Joins("JOIN pengguna ON pengguna.pengguna_id = pendaftar_pelatihan.pendaftar_user_id").
		Order("pendaftar_pelatihan.pendaftar_created_at desc").
		Offset(offset).Limit(limit).
		Scan(&rows).Error
	return rows, total, err
}

func (r *TrainingRepository) ListUserRegistrations(ctx context.Context, userID uuid.UUID) ([]service.UserRegistrationRow, error) {
	var rows []service.UserRegistrationRow
	err := r.DB.WithContext(ctx).Model(&model.PendaftarPelatihanModel{}).
		Select(`pendaftar_pelatihan.pendaftar_id AS pendaftar_id,
			pelatihan.pelatihan_id AS pelatihan_id,
			pelatihan.pelatihan_name AS pelatihan_name,
			pelatihan.pelatihan_start_time AS start_time,
			pelatihan.pelatihan_location AS location,
			masjids.masjid_id AS masjid_id,
			masjids.masjid_name AS masjid_name,
			pendaftar_pelatihan.pendaftar_status AS status,
			pendaftar_pelatihan.pendaftar_note AS note,
			pendaftar_pelatihan.pendaftar_created_at AS registered_at`).
		Joins("JOIN pelatihan ON pelatihan.pelatihan_id = pendaftar_pelatihan.pendaftar_pelatihan_id").
		Joins("JOIN masjids ON masjids.masjid_id = pelatihan.pelatihan_masjid_id").
		Where("pendaftar_pelatihan.pendaftar_user_id = ?", userID).
		Order("pendaftar_pelatihan.pendaftar_created_at desc").
		Scan(&rows).Error
	return rows, err
}

func (r *TrainingRepository) WithinTx(ctx context.Context, fn func(service.Store) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&TrainingRepository{DB: tx})
	})
}

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
