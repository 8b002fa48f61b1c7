// file: internals/features/access/controller/access_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"simasjid_backend/internals/features/access/dto"
	"simasjid_backend/internals/features/access/repository"
	"simasjid_backend/internals/features/access/service"
	helper "simasjid_backend/internals/helpers"
)

type AccessController struct {
	Service  *service.AccessService
	Validate *validator.Validate
}

func NewAccessController(db *gorm.DB, v *validator.Validate) *AccessController {
	return &AccessController{
		Service:  service.NewAccessService(repository.NewAccessRepository(db)),
		Validate: v,
	}
}

// 📄 Masjid yang bisa diakses user login (editor home + grant viewer aktif)
func (ctrl *AccessController) GetAccessibleMasjids(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	list, err := ctrl.Service.GetAccessibleMasjids(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Pengguna tidak ditemukan")
		}
		log.Printf("[ERROR] GetAccessibleMasjids: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar masjid")
	}

	return helper.Success(c, "Daftar masjid yang bisa diakses", list)
}

// ➕ Editor meminta akses viewer ke masjid lain
func (ctrl *AccessController) RequestViewerAccess(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.ViewerAccessRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format input tidak valid")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	g, err := ctrl.Service.RequestViewerAccess(c.UserContext(), userID, req.MasjidID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return helper.Error(c, fiber.StatusNotFound, "Masjid tidak ditemukan")
		case errors.Is(err, service.ErrInvalidRequest):
			return helper.Error(c, fiber.StatusBadRequest, "Permintaan akses tidak valid")
		case errors.Is(err, service.ErrAlreadyPending):
			return helper.Error(c, fiber.StatusBadRequest, "Permintaan akses sudah menunggu persetujuan")
		case errors.Is(err, service.ErrAlreadyGranted):
			return helper.Error(c, fiber.StatusBadRequest, "Akses viewer sudah aktif")
		case errors.Is(err, service.ErrNoGranterAvailable):
			return helper.Error(c, fiber.StatusBadRequest, "Masjid tujuan belum punya editor aktif")
		default:
			log.Printf("[ERROR] RequestViewerAccess: %v", err)
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat permintaan akses")
		}
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Permintaan akses viewer dikirim", dto.FromModel(g))
}

// 📄 Daftar permintaan viewer utk masjid editor login (?status=pending)
func (ctrl *AccessController) ListViewerRequests(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	masjidID := helper.GetMasjidIDFromToken(c)
	if masjidID == uuid.Nil {
		return helper.Error(c, fiber.StatusForbidden, "Akses ditolak")
	}

	ok, err := ctrl.Service.HasEditorAccess(c.UserContext(), userID, masjidID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa akses")
	}
	if !ok {
		return helper.Error(c, fiber.StatusForbidden, "Akses ditolak")
	}

	list, err := ctrl.Service.ListViewerRequests(c.UserContext(), masjidID, c.Query("status"))
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar permintaan")
	}

	return helper.Success(c, "Daftar permintaan akses viewer", dto.FromModels(list))
}

// ✅ Approve permintaan viewer (editor masjid tujuan)
func (ctrl *AccessController) ApproveViewerRequest(c *fiber.Ctx) error {
	return ctrl.decideViewerRequest(c, true)
}

// ❌ Reject permintaan viewer
func (ctrl *AccessController) RejectViewerRequest(c *fiber.Ctx) error {
	return ctrl.decideViewerRequest(c, false)
}

func (ctrl *AccessController) decideViewerRequest(c *fiber.Ctx, approve bool) error {
	editorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Request ID tidak valid")
	}

	g, err := ctrl.Service.GetViewerRequest(c.UserContext(), requestID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Permintaan tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil permintaan")
	}

	// gate: hanya editor masjid tujuan (atau admin)
	ok, err := ctrl.Service.HasEditorAccess(c.UserContext(), editorID, g.ViewerAccessMasjidID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa akses")
	}
	if !ok {
		return helper.Error(c, fiber.StatusForbidden, "Akses ditolak")
	}

	if approve {
		err = ctrl.Service.ApproveViewerRequest(c.UserContext(), requestID, editorID)
	} else {
		err = ctrl.Service.RejectViewerRequest(c.UserContext(), requestID, editorID)
	}
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			// sudah bukan pending (mis. diproses editor lain duluan)
			return helper.Error(c, fiber.StatusNotFound, "Permintaan tidak ditemukan atau sudah diproses")
		}
		log.Printf("[ERROR] decideViewerRequest: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memproses permintaan")
	}

	msg := "Permintaan akses viewer disetujui"
	if !approve {
		msg = "Permintaan akses viewer ditolak"
	}
	return helper.Success(c, msg, nil)
}

// ❌ Cabut akses viewer (hapus baris grant)
func (ctrl *AccessController) RemoveViewerAccess(c *fiber.Ctx) error {
	editorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Request ID tidak valid")
	}

	g, err := ctrl.Service.GetViewerRequest(c.UserContext(), requestID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Akses viewer tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil data akses")
	}

	ok, err := ctrl.Service.HasEditorAccess(c.UserContext(), editorID, g.ViewerAccessMasjidID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa akses")
	}
	if !ok {
		return helper.Error(c, fiber.StatusForbidden, "Akses ditolak")
	}

	if err := ctrl.Service.RemoveViewerAccess(c.UserContext(), requestID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Akses viewer tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mencabut akses")
	}

	return helper.Success(c, "Akses viewer dicabut", nil)
}

// ✅ Approve akun editor (admin)
func (ctrl *AccessController) ApproveEditor(c *fiber.Ctx) error {
	return ctrl.decideEditor(c, true)
}

// ❌ Reject akun editor (admin)
func (ctrl *AccessController) RejectEditor(c *fiber.Ctx) error {
	return ctrl.decideEditor(c, false)
}

func (ctrl *AccessController) decideEditor(c *fiber.Ctx, approve bool) error {
	editorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Editor ID tidak valid")
	}

	if approve {
		err = ctrl.Service.ApproveEditor(c.UserContext(), editorID)
	} else {
		err = ctrl.Service.RejectEditor(c.UserContext(), editorID)
	}
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Editor pending tidak ditemukan")
		}
		log.Printf("[ERROR] decideEditor: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memproses akun editor")
	}

	msg := "Akun editor disetujui"
	if !approve {
		msg = "Akun editor ditolak"
	}
	return helper.Success(c, msg, nil)
}
