// file: internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authdto "simasjid_backend/internals/features/users/auth/dto"
	"simasjid_backend/internals/features/users/auth/service"
	userdto "simasjid_backend/internals/features/users/user/dto"
	helper "simasjid_backend/internals/helpers"
)

type AuthController struct {
	Service  *service.AuthService
	Validate *validator.Validate
}

func NewAuthController(db *gorm.DB, v *validator.Validate) *AuthController {
	return &AuthController{Service: service.NewAuthService(db), Validate: v}
}

// ➕ Register akun (editor: pending, viewer: langsung aktif)
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var req authdto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format input tidak valid")
	}
	req.Normalize()
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	u, err := ctrl.Service.Register(c.UserContext(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrMasjidRequired):
			return helper.Error(c, fiber.StatusBadRequest, err.Error())
		default:
			log.Printf("[ERROR] Register gagal: %v", err)
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat akun")
		}
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Akun berhasil dibuat", userdto.FromModel(u))
}

// 🔑 Login email + password
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req authdto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format input tidak valid")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	u, err := ctrl.Service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return helper.Error(c, fiber.StatusUnauthorized, "Email atau password salah")
		}
		log.Printf("[ERROR] Login gagal: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal login")
	}

	access, refresh, err := ctrl.Service.IssueTokens(u)
	if err != nil {
		log.Printf("[ERROR] Gagal membuat token: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	return helper.Success(c, "Login berhasil", authdto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         userdto.FromModel(u),
	})
}

// 🔑 Login via Google ID token
func (ctrl *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var req authdto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format input tidak valid")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	u, err := ctrl.Service.LoginGoogle(c.UserContext(), req.IDToken)
	if err != nil {
		if errors.Is(err, service.ErrGoogleToken) {
			return helper.Error(c, fiber.StatusUnauthorized, "Google ID token tidak valid")
		}
		log.Printf("[ERROR] Login Google gagal: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal login")
	}

	access, refresh, err := ctrl.Service.IssueTokens(u)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	return helper.Success(c, "Login berhasil", authdto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         userdto.FromModel(u),
	})
}
