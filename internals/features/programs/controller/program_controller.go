// file: internals/features/programs/controller/program_controller.go
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
	"simasjid_backend/internals/features/programs/dto"
	"simasjid_backend/internals/features/programs/model"
	helper "simasjid_backend/internals/helpers"
)

// ProgramController: CRUD pass-through program & publikasi. Tidak punya logika
// otorisasi sendiri; semua lewat gate akses sebelum menyentuh data masjid.
type ProgramController struct {
	DB       *gorm.DB
	Access   *accessSvc.AccessService
	Validate *validator.Validate
}

func NewProgramController(db *gorm.DB, v *validator.Validate) *ProgramController {
	return &ProgramController{
		DB:       db,
		Access:   accessSvc.NewAccessService(accessRepo.NewAccessRepository(db)),
		Validate: v,
	}
}

func (ctrl *ProgramController) requireEditor(c *fiber.Ctx, masjidID uuid.UUID) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	ok, err := ctrl.Access.HasEditorAccess(c.UserContext(), userID, masjidID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa akses")
	}
	if !ok {
		return helper.Error(c, fiber.StatusForbidden, "Akses ditolak")
	}
	return nil
}

func (ctrl *ProgramController) requireViewer(c *fiber.Ctx, masjidID uuid.UUID) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	ok, err := ctrl.Access.HasViewerAccess(c.UserContext(), userID, masjidID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa akses")
	}
	if !ok {
		return helper.Error(c, fiber.StatusForbidden, "Akses ditolak")
	}
	return nil
}

/* =========================
   Program
   ========================= */

// ➕ Buat program (editor masjid dari token)
func (ctrl *ProgramController) CreateProgram(c *fiber.Ctx) error {
	masjidID := helper.GetMasjidIDFromToken(c)
	if masjidID == uuid.Nil {
		return helper.Error(c, fiber.StatusForbidden, "Akses ditolak")
	}
	if err := ctrl.requireEditor(c, masjidID); err != nil {
		return err
	}
	userID, _ := helper.GetUserIDFromToken(c)

	var req dto.ProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format input tidak valid")
	}
	req.Normalize()
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel(masjidID, userID)
	if err := ctrl.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		log.Printf("[ERROR] Gagal membuat program: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat program")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Program berhasil dibuat", m)
}

// 📄 Daftar program satu masjid (?masjid_id=), gate viewer
func (ctrl *ProgramController) ListPrograms(c *fiber.Ctx) error {
	masjidID, err := uuid.Parse(c.Query("masjid_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Parameter masjid_id wajib diisi")
	}
	if err := ctrl.requireViewer(c, masjidID); err != nil {
		return err
	}

	var list []model.ProgramModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("program_masjid_id = ?", masjidID).
		Order("program_created_at desc").
		Find(&list).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar program")
	}

	return helper.Success(c, "Daftar program", list)
}

// ✏️ Update program
func (ctrl *ProgramController) UpdateProgram(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Program ID tidak valid")
	}

	var m model.ProgramModel
	if err := ctrl.DB.WithContext(c.UserContext()).First(&m, "program_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Program tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil program")
	}
	if err := ctrl.requireEditor(c, m.ProgramMasjidID); err != nil {
		return err
	}

	var req dto.ProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format input tidak valid")
	}
	req.Normalize()
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m.ProgramName = req.ProgramName
	m.ProgramDescription = req.ProgramDescription
	if err := ctrl.DB.WithContext(c.UserContext()).Save(&m).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memperbarui program")
	}

	return helper.Success(c, "Program berhasil diperbarui", m)
}

// ❌ Hapus program
func (ctrl *ProgramController) DeleteProgram(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Program ID tidak valid")
	}

	var m model.ProgramModel
	if err := ctrl.DB.WithContext(c.UserContext()).First(&m, "program_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Program tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil program")
	}
	if err := ctrl.requireEditor(c, m.ProgramMasjidID); err != nil {
		return err
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Delete(&m).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghapus program")
	}

	return helper.Success(c, "Program berhasil dihapus", nil)
}

/* =========================
   Publikasi
   ========================= */

// ➕ Buat publikasi (editor)
func (ctrl *ProgramController) CreatePublikasi(c *fiber.Ctx) error {
	masjidID := helper.GetMasjidIDFromToken(c)
	if masjidID == uuid.Nil {
		return helper.Error(c, fiber.StatusForbidden, "Akses ditolak")
	}
	if err := ctrl.requireEditor(c, masjidID); err != nil {
		return err
	}

	var req dto.PublikasiRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format input tidak valid")
	}
	req.Normalize()
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel(masjidID)
	if err := ctrl.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		log.Printf("[ERROR] Gagal membuat publikasi: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat publikasi")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Publikasi berhasil dibuat", m)
}

// 📄 Daftar publikasi satu masjid (?masjid_id=), gate viewer
func (ctrl *ProgramController) ListPublikasi(c *fiber.Ctx) error {
	masjidID, err := uuid.Parse(c.Query("masjid_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Parameter masjid_id wajib diisi")
	}
	if err := ctrl.requireViewer(c, masjidID); err != nil {
		return err
	}

	var list []model.PublikasiModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("publikasi_masjid_id = ?", masjidID).
		Order("publikasi_created_at desc").
		Find(&list).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar publikasi")
	}

	return helper.Success(c, "Daftar publikasi", list)
}

// ❌ Hapus publikasi
func (ctrl *ProgramController) DeletePublikasi(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Publikasi ID tidak valid")
	}

	var m model.PublikasiModel
	if err := ctrl.DB.WithContext(c.UserContext()).First(&m, "publikasi_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Publikasi tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil publikasi")
	}
	if err := ctrl.requireEditor(c, m.PublikasiMasjidID); err != nil {
		return err
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Delete(&m).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghapus publikasi")
	}

	return helper.Success(c, "Publikasi berhasil dihapus", nil)
}
