// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	accessRoute "simasjid_backend/internals/features/access/route"
	masjidRoute "simasjid_backend/internals/features/masjids/route"
	programRoute "simasjid_backend/internals/features/programs/route"
	trainingRoute "simasjid_backend/internals/features/trainings/route"
	authRoute "simasjid_backend/internals/features/users/auth/route"
	userRoute "simasjid_backend/internals/features/users/user/route"
	authMiddleware "simasjid_backend/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	validate := validator.New()

	// ===================== AUTH (public) =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db, validate)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")
	masjidRoute.MasjidPublicRoutes(public, db, validate)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u", authMiddleware.AuthMiddleware())
	accessRoute.AccessUserRoutes(user, db, validate)
	trainingRoute.TrainingUserRoutes(user, db, validate)
	programRoute.ProgramUserRoutes(user, db, validate)

	// ===================== EDITOR (per masjid) =====================
	// Gate per-masjid tetap di controller (HasEditorAccess); grup ini hanya
	// menyaring yang jelas-jelas bukan editor/admin.
	log.Println("[INFO] Setting up EDITOR group...")
	editor := app.Group("/api/a", authMiddleware.AuthMiddleware())
	accessRoute.AccessEditorRoutes(editor, db, validate)
	trainingRoute.TrainingEditorRoutes(editor, db, validate)
	programRoute.ProgramEditorRoutes(editor, db, validate)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/admin",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyAdmin("administrasi platform"),
	)
	accessRoute.AccessAdminRoutes(admin, db, validate)
	masjidRoute.MasjidAdminRoutes(admin, db, validate)
	userRoute.PenggunaAdminRoutes(admin, db)
}
