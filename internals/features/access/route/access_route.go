package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"simasjid_backend/internals/features/access/controller"
)

// AccessUserRoutes: user login: lihat masjid yang bisa diakses, minta akses viewer.
func AccessUserRoutes(user fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctrl := controller.NewAccessController(db, v)

	access := user.Group("/access")
	access.Get("/masjids", ctrl.GetAccessibleMasjids)
	access.Post("/viewer-requests", ctrl.RequestViewerAccess)
}

// AccessEditorRoutes: editor masjid tujuan: kelola permintaan viewer.
func AccessEditorRoutes(editor fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctrl := controller.NewAccessController(db, v)

	access := editor.Group("/access")
	access.Get("/viewer-requests", ctrl.ListViewerRequests)
	access.Put("/viewer-requests/:id/approve", ctrl.ApproveViewerRequest)
	access.Put("/viewer-requests/:id/reject", ctrl.RejectViewerRequest)
	access.Delete("/viewer-requests/:id", ctrl.RemoveViewerAccess)
}

// AccessAdminRoutes: admin: approval akun editor.
func AccessAdminRoutes(admin fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctrl := controller.NewAccessController(db, v)

	editors := admin.Group("/editors")
	editors.Put("/:id/approve", ctrl.ApproveEditor)
	editors.Put("/:id/reject", ctrl.RejectEditor)
}
