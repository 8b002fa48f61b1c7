package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"simasjid_backend/internals/features/users/auth/controller"
)

func AuthRoutes(app fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctrl := controller.NewAuthController(db, v)

	auth := app.Group("/api/auth")
	auth.Post("/register", ctrl.Register)
	auth.Post("/login", ctrl.Login)
	auth.Post("/login/google", ctrl.LoginGoogle)
}
