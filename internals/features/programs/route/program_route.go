package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"simasjid_backend/internals/features/programs/controller"
)

// ProgramUserRoutes: baca program & publikasi (gate viewer di controller).
func ProgramUserRoutes(user fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctrl := controller.NewProgramController(db, v)

	user.Get("/programs", ctrl.ListPrograms)    // ?masjid_id=
	user.Get("/publikasi", ctrl.ListPublikasi)  // ?masjid_id=
}

// ProgramEditorRoutes: kelola program & publikasi masjid sendiri.
func ProgramEditorRoutes(editor fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctrl := controller.NewProgramController(db, v)

	programs := editor.Group("/programs")
	programs.Post("/", ctrl.CreateProgram)
	programs.Put("/:id", ctrl.UpdateProgram)
	programs.Delete("/:id", ctrl.DeleteProgram)

	publikasi := editor.Group("/publikasi")
	publikasi.Post("/", ctrl.CreatePublikasi)
	publikasi.Delete("/:id", ctrl.DeletePublikasi)
}
