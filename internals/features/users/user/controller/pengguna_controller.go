// file: internals/features/users/user/controller/pengguna_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"simasjid_backend/internals/features/users/user/dto"
	"simasjid_backend/internals/features/users/user/model"
	helper "simasjid_backend/internals/helpers"
)

type PenggunaController struct {
	DB *gorm.DB
}

func NewPenggunaController(db *gorm.DB) *PenggunaController {
	return &PenggunaController{DB: db}
}

// 📄 Daftar pengguna (admin), bisa difilter ?status= & ?role=
func (ctrl *PenggunaController) GetAllPengguna(c *fiber.Ctx) error {
	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.PenggunaModel{})

	if status := c.Query("status"); status != "" {
		q = q.Where("pengguna_status = ?", status)
	}
	if role := c.Query("role"); role != "" {
		q = q.Where("pengguna_role = ?", role)
	}

	p := helper.ParsePagination(c)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung pengguna")
	}

	var list []model.PenggunaModel
	if err := q.Order("pengguna_created_at desc").
		Offset(p.Offset()).Limit(p.PerPage).
		Find(&list).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar pengguna")
	}

	return helper.Success(c, "Daftar pengguna", fiber.Map{
		"items":      dto.FromModels(list),
		"pagination": helper.BuildMeta(p, total),
	})
}

// 📄 Detail pengguna (admin)
func (ctrl *PenggunaController) GetPenggunaByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Pengguna ID tidak valid")
	}

	var u model.PenggunaModel
	if err := ctrl.DB.WithContext(c.UserContext()).First(&u, "pengguna_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Pengguna tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil pengguna")
	}

	return helper.Success(c, "Detail pengguna", dto.FromModel(&u))
}

// ❌ Hapus pengguna (admin). FK di skema ikut menghapus resource miliknya.
func (ctrl *PenggunaController) DeletePengguna(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Pengguna ID tidak valid")
	}

	res := ctrl.DB.WithContext(c.UserContext()).Delete(&model.PenggunaModel{}, "pengguna_id = ?", id)
	if res.Error != nil {
		log.Printf("[ERROR] Gagal menghapus pengguna: %v", res.Error)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghapus pengguna")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Pengguna tidak ditemukan")
	}

	return helper.Success(c, "Pengguna berhasil dihapus", nil)
}
