// file: internals/features/masjids/controller/masjid_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"simasjid_backend/internals/features/masjids/dto"
	"simasjid_backend/internals/features/masjids/model"
	helper "simasjid_backend/internals/helpers"
)

type MasjidController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewMasjidController(db *gorm.DB, v *validator.Validate) *MasjidController {
	return &MasjidController{DB: db, Validate: v}
}

// ✅ Buat masjid baru (admin)
func (ctrl *MasjidController) CreateMasjid(c *fiber.Ctx) error {
	var req dto.MasjidRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format input tidak valid")
	}
	req.Normalize()
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()
	if err := ctrl.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		log.Printf("[ERROR] Gagal membuat masjid: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat masjid")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Masjid berhasil dibuat", dto.FromModel(m))
}

// ✅ Update masjid (admin)
func (ctrl *MasjidController) UpdateMasjid(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Masjid ID tidak valid")
	}

	var req dto.MasjidRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format input tidak valid")
	}
	req.Normalize()
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var m model.MasjidModel
	if err := ctrl.DB.WithContext(c.UserContext()).First(&m, "masjid_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Masjid tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil masjid")
	}

	m.MasjidName = req.MasjidName
	m.MasjidAddress = req.MasjidAddress
	if err := ctrl.DB.WithContext(c.UserContext()).Save(&m).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memperbarui masjid")
	}

	return helper.Success(c, "Masjid berhasil diperbarui", dto.FromModel(&m))
}

// ✅ Hapus masjid (admin). FK di skema: resource milik masjid ikut terhapus,
// referensi home masjid pada pengguna & viewer_access di-NULL-kan.
func (ctrl *MasjidController) DeleteMasjid(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Masjid ID tidak valid")
	}

	res := ctrl.DB.WithContext(c.UserContext()).Delete(&model.MasjidModel{}, "masjid_id = ?", id)
	if res.Error != nil {
		log.Printf("[ERROR] Gagal menghapus masjid: %v", res.Error)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghapus masjid")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Masjid tidak ditemukan")
	}

	return helper.Success(c, "Masjid berhasil dihapus", nil)
}

// 📄 Daftar semua masjid (public)
func (ctrl *MasjidController) GetAllMasjids(c *fiber.Ctx) error {
	var list []model.MasjidModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Order("masjid_name asc").
		Find(&list).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar masjid")
	}
	return helper.Success(c, "Daftar masjid", dto.FromModels(list))
}

// 📄 Detail masjid (public)
func (ctrl *MasjidController) GetMasjidByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Masjid ID tidak valid")
	}

	var m model.MasjidModel
	if err := ctrl.DB.WithContext(c.UserContext()).First(&m, "masjid_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Masjid tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil masjid")
	}

	return helper.Success(c, "Detail masjid", dto.FromModel(&m))
}
