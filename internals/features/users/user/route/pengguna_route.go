package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"simasjid_backend/internals/features/users/user/controller"
)

// PenggunaAdminRoutes: manajemen akun, khusus admin.
func PenggunaAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPenggunaController(db)

	users := admin.Group("/pengguna")
	users.Get("/", ctrl.GetAllPengguna)
	users.Get("/:id", ctrl.GetPenggunaByID)
	users.Delete("/:id", ctrl.DeletePengguna)
}
