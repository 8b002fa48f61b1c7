package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"simasjid_backend/internals/features/trainings/controller"
)

// TrainingUserRoutes: user login: lihat & daftar pelatihan.
func TrainingUserRoutes(user fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctrl := controller.NewTrainingController(db, v)

	pelatihan := user.Group("/pelatihan")
	pelatihan.Get("/", ctrl.ListTrainings)     // ?masjid_id=
	pelatihan.Get("/:id", ctrl.GetTraining)    // detail + kuota
	pelatihan.Post("/register", ctrl.Register) // daftar jadi peserta
	user.Get("/my-registrations", ctrl.MyRegistrations)
}

// TrainingEditorRoutes: editor masjid: kelola pelatihan & peserta.
func TrainingEditorRoutes(editor fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctrl := controller.NewTrainingController(db, v)

	pelatihan := editor.Group("/pelatihan")
	pelatihan.Post("/", ctrl.CreateTraining)
	pelatihan.Put("/:id", ctrl.UpdateTraining)
	pelatihan.Delete("/:id", ctrl.DeleteTraining)
	pelatihan.Get("/:id/participants", ctrl.ListParticipants)

	editor.Put("/pendaftar/:id/status", ctrl.UpdateParticipantStatus)
}
