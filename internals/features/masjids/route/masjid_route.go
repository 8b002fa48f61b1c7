package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"simasjid_backend/internals/features/masjids/controller"
)

// MasjidPublicRoutes: read-only, tanpa login.
func MasjidPublicRoutes(public fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctrl := controller.NewMasjidController(db, v)

	masjid := public.Group("/masjids")
	masjid.Get("/", ctrl.GetAllMasjids)
	masjid.Get("/:id", ctrl.GetMasjidByID)
}

// MasjidAdminRoutes: CRUD penuh, khusus admin.
func MasjidAdminRoutes(admin fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctrl := controller.NewMasjidController(db, v)

	masjid := admin.Group("/masjids")
	masjid.Post("/", ctrl.CreateMasjid)
	masjid.Put("/:id", ctrl.UpdateMasjid)
	masjid.Delete("/:id", ctrl.DeleteMasjid)
}
