// file: internals/features/access/service/access_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"simasjid_backend/internals/constants"
	"simasjid_backend/internals/features/access/model"
	masjidModel "simasjid_backend/internals/features/masjids/model"
	userModel "simasjid_backend/internals/features/users/user/model"
)

var (
	ErrNotFound           = errors.New("data tidak ditemukan")
	ErrInvalidRequest     = errors.New("permintaan akses tidak valid")
	ErrAlreadyPending     = errors.New("permintaan akses sudah menunggu persetujuan")
	ErrAlreadyGranted     = errors.New("akses viewer sudah aktif")
	ErrNoGranterAvailable = errors.New("masjid tujuan belum punya editor aktif")
)

// Masa berlaku akses viewer sejak disetujui.
const viewerAccessMonths = 6

// Store adalah kontrak persistence yang dibutuhkan engine akses.
// Implementasi produksi ada di package repository (GORM/Postgres);
// test memakai fake in-memory.
type Store interface {
	FindUserByID(ctx context.Context, id uuid.UUID) (*userModel.PenggunaModel, error)
	FindApprovedEditor(ctx context.Context, masjidID uuid.UUID) (*userModel.PenggunaModel, error)
	// UpdateEditorStatus hanya mengubah baris role=editor, status=pending.
	// Return jumlah baris yang berubah.
	UpdateEditorStatus(ctx context.Context, editorID uuid.UUID, newStatus string) (int64, error)

	FindMasjidByID(ctx context.Context, id uuid.UUID) (*masjidModel.MasjidModel, error)
	ListMasjids(ctx context.Context) ([]masjidModel.MasjidModel, error)
	ListActiveGrantMasjids(ctx context.Context, viewerID uuid.UUID, now time.Time) ([]masjidModel.MasjidModel, error)

	FindGrant(ctx context.Context, viewerID, masjidID uuid.UUID) (*model.ViewerAccessModel, error)
	ListGrantsByMasjid(ctx context.Context, masjidID uuid.UUID, status string) ([]model.ViewerAccessModel, error)
	FindGrantByID(ctx context.Context, id uuid.UUID) (*model.ViewerAccessModel, error)
	CreateGrant(ctx context.Context, g *model.ViewerAccessModel) error
	// ResetGrant menimpa baris rejected/expired kembali ke pending.
	ResetGrant(ctx context.Context, grantID, grantedBy uuid.UUID) (int64, error)
	// UpdateGrantStatus hanya mengubah baris yang masih pending.
	UpdateGrantStatus(ctx context.Context, grantID uuid.UUID, newStatus string, grantedBy *uuid.UUID, expiresAt *time.Time) (int64, error)
	DeleteGrant(ctx context.Context, grantID uuid.UUID) (int64, error)

	// WithinTx menjalankan fn dalam satu transaksi store. Upsert grant pada
	// RequestViewerAccess harus atomik terhadap unique (viewer, masjid).
	WithinTx(ctx context.Context, fn func(Store) error) error
}

type AccessService struct {
	store Store
	now   func() time.Time
}

func NewAccessService(store Store) *AccessService {
	return &AccessService{store: store, now: time.Now}
}

// HasEditorAccess: admin selalu boleh; selain itu hanya editor approved
// dengan home masjid = masjidID. Tidak pernah mengembalikan error untuk
// "akses ditolak", cukup false.
func (s *AccessService) HasEditorAccess(ctx context.Context, userID, masjidID uuid.UUID) (bool, error) {
	u, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if u == nil {
		return false, nil
	}
	if u.PenggunaRole == constants.RoleAdmin {
		return true, nil
	}
	return u.IsApprovedEditorOf(masjidID), nil
}

// HasViewerAccess: editor/admin implisit melihat masjidnya sendiri;
// selain itu butuh grant approved yang belum kedaluwarsa.
func (s *AccessService) HasViewerAccess(ctx context.Context, userID, masjidID uuid.UUID) (bool, error) {
	ok, err := s.HasEditorAccess(ctx, userID, masjidID)
	if err != nil || ok {
		return ok, err
	}
	g, err := s.store.FindGrant(ctx, userID, masjidID)
	if err != nil {
		return false, err
	}
	if g == nil {
		return false, nil
	}
	return g.IsActive(s.now()), nil
}

// RequestViewerAccess: editor approved meminta akses baca ke masjid lain.
// Upsert pada pasangan (viewer, masjid) berjalan dalam satu transaksi.
func (s *AccessService) RequestViewerAccess(ctx context.Context, viewerID, masjidID uuid.UUID) (*model.ViewerAccessModel, error) {
	u, err := s.store.FindUserByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	if u.PenggunaRole != constants.RoleEditor || u.PenggunaStatus != constants.StatusApproved {
		return nil, ErrInvalidRequest
	}
	if u.PenggunaMasjidID != nil && *u.PenggunaMasjidID == masjidID {
		// editor tidak boleh meminta akses viewer ke masjidnya sendiri
		return nil, ErrInvalidRequest
	}

	m, err := s.store.FindMasjidByID(ctx, masjidID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNotFound
	}

	var out *model.ViewerAccessModel
	err = s.store.WithinTx(ctx, func(tx Store) error {
		granter, err := tx.FindApprovedEditor(ctx, masjidID)
		if err != nil {
			return err
		}
		if granter == nil {
			return ErrNoGranterAvailable
		}

		existing, err := tx.FindGrant(ctx, viewerID, masjidID)
		if err != nil {
			return err
		}

		switch {
		case existing == nil:
			granterID := granter.PenggunaID
			g := &model.ViewerAccessModel{
				ViewerAccessViewerID:  viewerID,
				ViewerAccessMasjidID:  masjidID,
				ViewerAccessGrantedBy: &granterID,
				ViewerAccessStatus:    constants.StatusPending,
			}
			if err := tx.CreateGrant(ctx, g); err != nil {
				return err
			}
			out = g
			return nil

		case existing.ViewerAccessStatus == constants.StatusPending:
			return ErrAlreadyPending

		case existing.IsActive(s.now()):
			return ErrAlreadyGranted

		default:
			// rejected, atau approved yang sudah kedaluwarsa: pakai ulang barisnya
			if _, err := tx.ResetGrant(ctx, existing.ViewerAccessID, granter.PenggunaID); err != nil {
				return err
			}
			g, err := tx.FindGrantByID(ctx, existing.ViewerAccessID)
			if err != nil {
				return err
			}
			out = g
			return nil
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetViewerRequest mengambil satu grant (dipakai controller untuk gate §editor).
func (s *AccessService) GetViewerRequest(ctx context.Context, requestID uuid.UUID) (*model.ViewerAccessModel, error) {
	g, err := s.store.FindGrantByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrNotFound
	}
	return g, nil
}

// ListViewerRequests: daftar grant yang menunjuk ke satu masjid,
// opsional difilter status. Dipakai editor masjid tujuan.
func (s *AccessService) ListViewerRequests(ctx context.Context, masjidID uuid.UUID, status string) ([]model.ViewerAccessModel, error) {
	return s.store.ListGrantsByMasjid(ctx, masjidID, status)
}

// ApproveViewerRequest: pending -> approved, granter = editorID,
// kedaluwarsa 6 bulan dari sekarang. Kalau baris sudah bukan pending
// (termasuk approval kedua yang balapan), hasilnya ErrNotFound.
func (s *AccessService) ApproveViewerRequest(ctx context.Context, requestID, editorID uuid.UUID) error {
	expiry := s.now().AddDate(0, viewerAccessMonths, 0)
	affected, err := s.store.UpdateGrantStatus(ctx, requestID, constants.StatusApproved, &editorID, &expiry)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// RejectViewerRequest: pending -> rejected.
func (s *AccessService) RejectViewerRequest(ctx context.Context, requestID, editorID uuid.UUID) error {
	affected, err := s.store.UpdateGrantStatus(ctx, requestID, constants.StatusRejected, &editorID, nil)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveViewerAccess: hapus grant apa pun statusnya (pencabutan eksplisit).
func (s *AccessService) RemoveViewerAccess(ctx context.Context, requestID uuid.UUID) error {
	affected, err := s.store.DeleteGrant(ctx, requestID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ApproveEditor: admin menyetujui akun editor pending.
func (s *AccessService) ApproveEditor(ctx context.Context, editorID uuid.UUID) error {
	return s.setEditorStatus(ctx, editorID, constants.StatusApproved)
}

// RejectEditor: admin menolak akun editor pending.
func (s *AccessService) RejectEditor(ctx context.Context, editorID uuid.UUID) error {
	return s.setEditorStatus(ctx, editorID, constants.StatusRejected)
}

func (s *AccessService) setEditorStatus(ctx context.Context, editorID uuid.UUID, status string) error {
	affected, err := s.store.UpdateEditorStatus(ctx, editorID, status)
	if err != nil {
		return err
	}
	if affected == 0 {
		// bukan editor, tidak ada, atau sudah diproses approval lain
		return ErrNotFound
	}
	return nil
}

// AccessibleMasjid: satu masjid yang bisa dilihat user, dengan level aksesnya.
type AccessibleMasjid struct {
	Masjid masjidModel.MasjidModel `json:"masjid"`
	Access string                  `json:"access"` // editor | viewer
}

// GetAccessibleMasjids: admin melihat semua masjid; user lain melihat home
// masjid (akses editor) digabung masjid-masjid dari grant aktif (akses viewer).
// Home masjid tidak pernah muncul dobel sebagai entri viewer.
func (s *AccessService) GetAccessibleMasjids(ctx context.Context, userID uuid.UUID) ([]AccessibleMasjid, error) {
	u, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}

	if u.PenggunaRole == constants.RoleAdmin {
		all, err := s.store.ListMasjids(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]AccessibleMasjid, 0, len(all))
		for _, m := range all {
			out = append(out, AccessibleMasjid{Masjid: m, Access: constants.RoleEditor})
		}
		return out, nil
	}

	out := make([]AccessibleMasjid, 0, 4)
	var homeID uuid.UUID
	if u.PenggunaMasjidID != nil {
		homeID = *u.PenggunaMasjidID
		home, err := s.store.FindMasjidByID(ctx, homeID)
		if err != nil {
			return nil, err
		}
		if home != nil {
			out = append(out, AccessibleMasjid{Masjid: *home, Access: constants.RoleEditor})
		}
	}

	granted, err := s.store.ListActiveGrantMasjids(ctx, userID, s.now())
	if err != nil {
		return nil, err
	}
	for _, m := range granted {
		if m.MasjidID == homeID {
			continue
		}
		out = append(out, AccessibleMasjid{Masjid: m, Access: constants.RoleViewer})
	}
	return out, nil
}
