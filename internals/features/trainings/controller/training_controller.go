// file: internals/features/trainings/controller/training_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	accessRepo "simasjid_backend/internals/features/access/repository"
	accessSvc "simasjid_backend/internals/features/access/service"
	"simasjid_backend/internals/features/trainings/dto"
	"simasjid_backend/internals/features/trainings/repository"
	"simasjid_backend/internals/features/trainings/service"
	helper "simasjid_backend/internals/helpers"
)

// TrainingController menggabungkan engine pendaftaran dengan gate akses:
// semua mutasi level editor lewat HasEditorAccess, semua baca pelatihan
// masjid lain lewat HasViewerAccess. Engine pendaftaran sendiri tidak tahu
// apa-apa soal otorisasi.
type TrainingController struct {
	Service  *service.TrainingService
	Access   *accessSvc.AccessService
	Validate *validator.Validate
}

func NewTrainingController(db *gorm.DB, v *validator.Validate) *TrainingController {
	return &TrainingController{
		Service:  service.NewTrainingService(repository.NewTrainingRepository(db)),
		Access:   accessSvc.NewAccessService(accessRepo.NewAccessRepository(db)),
		Validate: v,
	}
}

func (ctrl *TrainingController) requireEditor(c *fiber.Ctx, userID, masjidID uuid.UUID) error {
	ok, err := ctrl.Access.HasEditorAccess(c.UserContext(), userID, masjidID)
	if err != nil {
		log.Printf("[ERROR] cek akses editor: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa akses")
	}
	if !ok {
		return helper.Error(c, fiber.StatusForbidden, "Akses ditolak")
	}
	return nil
}

func (ctrl *TrainingController) requireViewer(c *fiber.Ctx, userID, masjidID uuid.UUID) error {
	ok, err := ctrl.Access.HasViewerAccess(c.UserContext(), userID, masjidID)
	if err != nil {
		log.Printf("[ERROR] cek akses viewer: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa akses")
	}
	if !ok {
		return helper.Error(c, fiber.StatusForbidden, "Akses ditolak")
	}
	return nil
}

/* =========================
   Pelatihan (editor)
   ========================= */

// ➕ Buat pelatihan di masjid milik editor
func (ctrl *TrainingController) CreateTraining(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	masjidID := helper.GetMasjidIDFromToken(c)
	if masjidID == uuid.Nil {
		return helper.Error(c, fiber.StatusForbidden, "Akses ditolak")
	}
	if err := ctrl.requireEditor(c, userID, masjidID); err != nil {
		return err
	}

	var req dto.PelatihanRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format input tidak valid")
	}
	req.Normalize()
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	t := req.ToModel(masjidID, userID)
	if err := ctrl.Service.CreateTraining(c.UserContext(), t); err != nil {
		log.Printf("[ERROR] Gagal membuat pelatihan: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat pelatihan")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Pelatihan berhasil dibuat", dto.FromModel(t))
}

// ✏️ Update pelatihan
func (ctrl *TrainingController) UpdateTraining(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	trainingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Pelatihan ID tidak valid")
	}

	t, err := ctrl.Service.GetTraining(c.UserContext(), trainingID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Pelatihan tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil pelatihan")
	}
	if err := ctrl.requireEditor(c, userID, t.PelatihanMasjidID); err != nil {
		return err
	}

	var req dto.PelatihanRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format input tidak valid")
	}
	req.Normalize()
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	req.ApplyToModel(t)
	if err := ctrl.Service.UpdateTraining(c.UserContext(), t); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memperbarui pelatihan")
	}

	return helper.Success(c, "Pelatihan berhasil diperbarui", dto.FromModel(t))
}

// ❌ Hapus pelatihan
func (ctrl *TrainingController) DeleteTraining(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	trainingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Pelatihan ID tidak valid")
	}

	t, err := ctrl.Service.GetTraining(c.UserContext(), trainingID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Pelatihan tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil pelatihan")
	}
	if err := ctrl.requireEditor(c, userID, t.PelatihanMasjidID); err != nil {
		return err
	}

	if err := ctrl.Service.DeleteTraining(c.UserContext(), trainingID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Pelatihan tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghapus pelatihan")
	}

	return helper.Success(c, "Pelatihan berhasil dihapus", nil)
}

/* =========================
   Pelatihan (baca, viewer-gate)
   ========================= */

// 📄 Daftar pelatihan satu masjid (?masjid_id=), gate viewer
func (ctrl *TrainingController) ListTrainings(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	masjidID, err := uuid.Parse(c.Query("masjid_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Parameter masjid_id wajib diisi")
	}
	if err := ctrl.requireViewer(c, userID, masjidID); err != nil {
		return err
	}

	list, err := ctrl.Service.ListTrainings(c.UserContext(), masjidID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar pelatihan")
	}

	return helper.Success(c, "Daftar pelatihan", dto.FromModels(list))
}

// 📄 Detail pelatihan + ketersediaan kursi, gate viewer
func (ctrl *TrainingController) GetTraining(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	trainingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Pelatihan ID tidak valid")
	}

	t, err := ctrl.Service.GetTraining(c.UserContext(), trainingID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Pelatihan tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil pelatihan")
	}
	if err := ctrl.requireViewer(c, userID, t.PelatihanMasjidID); err != nil {
		return err
	}

	avail, err := ctrl.Service.GetAvailability(c.UserContext(), trainingID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung kuota")
	}

	resp := dto.FromModel(t)
	resp.Availability = avail
	return helper.Success(c, "Detail pelatihan", resp)
}

/* =========================
   Pendaftaran
   ========================= */

// ➕ User mendaftar pelatihan
func (ctrl *TrainingController) Register(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format input tidak valid")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	// visibilitas pelatihan mengikuti gate viewer
	t, err := ctrl.Service.GetTraining(c.UserContext(), req.PelatihanID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Pelatihan tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil pelatihan")
	}
	if err := ctrl.requireViewer(c, userID, t.PelatihanMasjidID); err != nil {
		return err
	}

	p, err := ctrl.Service.Register(c.UserContext(), req.PelatihanID, userID, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return helper.Error(c, fiber.StatusNotFound, "Pelatihan tidak ditemukan")
		case errors.Is(err, service.ErrTrainingEnded):
			return helper.Error(c, fiber.StatusBadRequest, "Pelatihan sudah dimulai")
		case errors.Is(err, service.ErrTrainingCancelled):
			return helper.Error(c, fiber.StatusBadRequest, "Pelatihan dibatalkan")
		case errors.Is(err, service.ErrAlreadyRegistered):
			return helper.Error(c, fiber.StatusBadRequest, "Anda sudah terdaftar di pelatihan ini")
		case errors.Is(err, service.ErrQuotaExceeded):
			return helper.Error(c, fiber.StatusBadRequest, "Kuota pelatihan sudah penuh")
		default:
			log.Printf("[ERROR] Register pelatihan: %v", err)
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal mendaftar pelatihan")
		}
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Berhasil mendaftar pelatihan", dto.PendaftarFromModel(p))
}

// 📄 Pendaftaran milik user login, lintas pelatihan
func (ctrl *TrainingController) MyRegistrations(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	rows, err := ctrl.Service.ListUserRegistrations(c.UserContext(), userID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil pendaftaran")
	}

	return helper.Success(c, "Daftar pendaftaran pelatihan", rows)
}

// 📄 Daftar peserta satu pelatihan (editor), ?status= & pagination
func (ctrl *TrainingController) ListParticipants(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	trainingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Pelatihan ID tidak valid")
	}

	t, err := ctrl.Service.GetTraining(c.UserContext(), trainingID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Pelatihan tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil pelatihan")
	}
	if err := ctrl.requireEditor(c, userID, t.PelatihanMasjidID); err != nil {
		return err
	}

	p := helper.ParsePagination(c)
	rows, total, err := ctrl.Service.ListParticipants(c.UserContext(), trainingID, c.Query("status"), p.Page, p.PerPage)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			return helper.Error(c, fiber.StatusBadRequest, "Status filter tidak valid")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar peserta")
	}

	return helper.Success(c, "Daftar peserta pelatihan", fiber.Map{
		"items":      rows,
		"pagination": helper.BuildMeta(p, total),
	})
}

// ✏️ Ubah status pendaftar (editor masjid pemilik pelatihan)
func (ctrl *TrainingController) UpdateParticipantStatus(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	registrationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Pendaftar ID tidak valid")
	}

	reg, err := ctrl.Service.GetRegistration(c.UserContext(), registrationID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Pendaftar tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil pendaftar")
	}
	if err := ctrl.requireEditor(c, userID, reg.PendaftarMasjidID); err != nil {
		return err
	}

	var req dto.UpdatePendaftarRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format input tidak valid")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctrl.Service.UpdateParticipantStatus(c.UserContext(), registrationID, req.Status, req.Note); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			return helper.Error(c, fiber.StatusBadRequest, "Status pendaftar tidak valid")
		case errors.Is(err, service.ErrNotFound):
			return helper.Error(c, fiber.StatusNotFound, "Pendaftar tidak ditemukan")
		default:
			log.Printf("[ERROR] UpdateParticipantStatus: %v", err)
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengubah status pendaftar")
		}
	}

	return helper.Success(c, "Status pendaftar diperbarui", nil)
}
