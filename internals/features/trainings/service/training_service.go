// file: internals/features/trainings/service/training_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"simasjid_backend/internals/constants"
	"simasjid_backend/internals/features/trainings/model"
)

var (
	ErrNotFound          = errors.New("data tidak ditemukan")
	ErrTrainingEnded     = errors.New("pelatihan sudah dimulai atau selesai")
	ErrTrainingCancelled = errors.New("pelatihan dibatalkan")
	ErrAlreadyRegistered = errors.New("sudah terdaftar di pelatihan ini")
	ErrQuotaExceeded     = errors.New("kuota pelatihan sudah penuh")
	ErrInvalidStatus     = errors.New("status pendaftar tidak valid")
)

// ParticipantRow: baris daftar peserta, sudah join identitas pendaftar.
type ParticipantRow struct {
	PendaftarID  uuid.UUID `json:"pendaftar_id"`
	UserID       uuid.UUID `json:"user_id"`
	UserName     string    `json:"user_name"`
	UserEmail    string    `json:"user_email"`
	Status       string    `json:"status"`
	Note         *string   `json:"note,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
}

// UserRegistrationRow: pendaftaran milik satu user lintas pelatihan,
// join ringkasan pelatihan + masjid untuk tampilan.
type UserRegistrationRow struct {
	PendaftarID   uuid.UUID `json:"pendaftar_id"`
	PelatihanID   uuid.UUID `json:"pelatihan_id"`
	PelatihanName string    `json:"pelatihan_name"`
	StartTime     time.Time `json:"start_time"`
	Location      string    `json:"location"`
	MasjidID      uuid.UUID `json:"masjid_id"`
	MasjidName    string    `json:"masjid_name"`
	Status        string    `json:"status"`
	Note          *string   `json:"note,omitempty"`
	RegisteredAt  time.Time `json:"registered_at"`
}

// Availability: ringkasan kursi satu pelatihan.
// Used = pendaftar pending + approved; rejected tidak menempati kursi.
type Availability struct {
	Quota     int `json:"quota"`
	Used      int `json:"used"`
	Available int `json:"available"`
}

// Store adalah kontrak persistence engine pendaftaran.
// Implementasi produksi di package repository (GORM/Postgres).
type Store interface {
	FindTraining(ctx context.Context, id uuid.UUID) (*model.PelatihanModel, error)
	// LockTraining mengambil baris pelatihan dengan row lock (SELECT ... FOR
	// UPDATE). Hanya bermakna di dalam WithinTx; di luar itu sama dengan
	// FindTraining.
	LockTraining(ctx context.Context, id uuid.UUID) (*model.PelatihanModel, error)
	CreateTraining(ctx context.Context, t *model.PelatihanModel) error
	SaveTraining(ctx context.Context, t *model.PelatihanModel) error
	DeleteTraining(ctx context.Context, id uuid.UUID) (int64, error)
	ListTrainingsByMasjid(ctx context.Context, masjidID uuid.UUID) ([]model.PelatihanModel, error)

	CountActiveRegistrations(ctx context.Context, trainingID uuid.UUID) (int64, error)
	FindRegistration(ctx context.Context, trainingID, userID uuid.UUID) (*model.PendaftarPelatihanModel, error)
	FindRegistrationByID(ctx context.Context, id uuid.UUID) (*model.PendaftarPelatihanModel, error)
	CreateRegistration(ctx context.Context, p *model.PendaftarPelatihanModel) error
	UpdateRegistrationStatus(ctx context.Context, id uuid.UUID, status string, note *string) (int64, error)
	ListParticipants(ctx context.Context, trainingID uuid.UUID, status string, offset, limit int) ([]ParticipantRow, int64, error)
	ListUserRegistrations(ctx context.Context, userID uuid.UUID) ([]UserRegistrationRow, error)

	// WithinTx menjalankan fn dalam satu transaksi store. Register wajib
	// mengecek kuota dan insert dalam satu unit atomik.
	WithinTx(ctx context.Context, fn func(Store) error) error
}

type TrainingService struct {
	store Store
	now   func() time.Time
}

func NewTrainingService(store Store) *TrainingService {
	return &TrainingService{store: store, now: time.Now}
}

/* =========================
   Pelatihan (editor CRUD)
   ========================= */

func (s *TrainingService) GetTraining(ctx context.Context, id uuid.UUID) (*model.PelatihanModel, error) {
	t, err := s.store.FindTraining(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNotFound
	}
	return t, nil
}

func (s *TrainingService) ListTrainings(ctx context.Context, masjidID uuid.UUID) ([]model.PelatihanModel, error) {
	return s.store.ListTrainingsByMasjid(ctx, masjidID)
}

func (s *TrainingService) CreateTraining(ctx context.Context, t *model.PelatihanModel) error {
	if t.PelatihanStatus == "" {
		t.PelatihanStatus = constants.PelatihanUpcoming
	}
	return s.store.CreateTraining(ctx, t)
}

func (s *TrainingService) UpdateTraining(ctx context.Context, t *model.PelatihanModel) error {
	return s.store.SaveTraining(ctx, t)
}

func (s *TrainingService) DeleteTraining(ctx context.Context, id uuid.UUID) error {
	affected, err := s.store.DeleteTraining(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

/* =========================
   Pendaftaran
   ========================= */

// GetAvailability: kuota vs kursi terpakai saat ini. Selalu baca ulang store,
// tidak pernah di-cache.
func (s *TrainingService) GetAvailability(ctx context.Context, trainingID uuid.UUID) (*Availability, error) {
	t, err := s.store.FindTraining(ctx, trainingID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNotFound
	}
	used, err := s.store.CountActiveRegistrations(ctx, trainingID)
	if err != nil {
		return nil, err
	}
	avail := t.PelatihanQuota - int(used)
	if avail < 0 {
		avail = 0
	}
	return &Availability{Quota: t.PelatihanQuota, Used: int(used), Available: avail}, nil
}

// Register mendaftarkan user ke pelatihan. Seluruh precondition dan insert
// berjalan dalam satu transaksi dengan row lock pada baris pelatihan, supaya
// dua pendaftaran serentak di kursi terakhir tidak bisa sama-sama lolos cek
// kuota.
//
// Urutan cek: pelatihan ada -> belum dimulai -> tidak dibatalkan ->
// belum terdaftar -> kuota masih tersisa.
func (s *TrainingService) Register(ctx context.Context, trainingID, userID uuid.UUID, note *string) (*model.PendaftarPelatihanModel, error) {
	var out *model.PendaftarPelatihanModel
	err := s.store.WithinTx(ctx, func(tx Store) error {
		t, err := tx.LockTraining(ctx, trainingID)
		if err != nil {
			return err
		}
		if t == nil {
			return ErrNotFound
		}
		if t.PelatihanStartTime.Before(s.now()) {
			return ErrTrainingEnded
		}
		if t.PelatihanStatus == constants.PelatihanCancelled {
			return ErrTrainingCancelled
		}

		existing, err := tx.FindRegistration(ctx, trainingID, userID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrAlreadyRegistered
		}

		used, err := tx.CountActiveRegistrations(ctx, trainingID)
		if err != nil {
			return err
		}
		if used >= int64(t.PelatihanQuota) {
			return ErrQuotaExceeded
		}

		p := &model.PendaftarPelatihanModel{
			PendaftarPelatihanID: trainingID,
			PendaftarUserID:      userID,
			PendaftarStatus:      constants.PendaftarPending,
			PendaftarMasjidID:    t.PelatihanMasjidID,
			PendaftarNote:        note,
		}
		if err := tx.CreateRegistration(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *TrainingService) GetRegistration(ctx context.Context, id uuid.UUID) (*model.PendaftarPelatihanModel, error) {
	p, err := s.store.FindRegistrationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// UpdateParticipantStatus: editor menggeser status pendaftar ke status apa pun
// yang valid (tidak ada aturan maju-saja; approved boleh turun lagi ke pending
// atau rejected, kursinya lepas untuk pendaftar berikutnya). Note ikut ditimpa.
func (s *TrainingService) UpdateParticipantStatus(ctx context.Context, registrationID uuid.UUID, newStatus string, note *string) error {
	if !constants.ValidPendaftarStatus(newStatus) {
		return ErrInvalidStatus
	}
	affected, err := s.store.UpdateRegistrationStatus(ctx, registrationID, newStatus, note)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListParticipants: daftar peserta satu pelatihan, terbaru dulu,
// opsional filter status.
func (s *TrainingService) ListParticipants(ctx context.Context, trainingID uuid.UUID, status string, page, perPage int) ([]ParticipantRow, int64, error) {
	if status != "" && !constants.ValidPendaftarStatus(status) {
		return nil, 0, ErrInvalidStatus
	}
	t, err := s.store.FindTraining(ctx, trainingID)
	if err != nil {
		return nil, 0, err
	}
	if t == nil {
		return nil, 0, ErrNotFound
	}
	offset := (page - 1) * perPage
	return s.store.ListParticipants(ctx, trainingID, status, offset, perPage)
}

// ListUserRegistrations: semua pendaftaran milik user lintas pelatihan,
// terbaru dulu.
func (s *TrainingService) ListUserRegistrations(ctx context.Context, userID uuid.UUID) ([]UserRegistrationRow, error) {
	return s.store.ListUserRegistrations(ctx, userID)
}
