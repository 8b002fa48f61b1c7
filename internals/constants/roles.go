package constants

import "fmt"

// ==========================
// ✅ Role pengguna
// ==========================
const (
	RoleEditor = "editor"
	RoleViewer = "viewer"
	RoleAdmin  = "admin"
)

// ==========================
// ✅ Status approval (pengguna & viewer_access)
// ==========================
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ==========================
// ✅ Status pelatihan
// ==========================
const (
	PelatihanUpcoming  = "upcoming"
	PelatihanOngoing   = "ongoing"
	PelatihanCompleted = "completed"
	PelatihanCancelled = "cancelled"
)

// ==========================
// ✅ Status pendaftar pelatihan
// ==========================
const (
	PendaftarPending  = "pending"
	PendaftarApproved = "approved"
	PendaftarRejected = "rejected"
	PendaftarAttended = "attended"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess  = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyEditorsCanAccess = "❌ Hanya editor masjid yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorEditor(feature string) string {
	return fmt.Sprintf(ErrOnlyEditorsCanAccess, feature)
}

// ==========================
// ✅ Grouped slices (untuk validasi & middleware)
// ==========================
var (
	AllRoles = []string{
		RoleEditor,
		RoleViewer,
		RoleAdmin,
	}

	ApprovalStatuses = []string{
		StatusPending,
		StatusApproved,
		StatusRejected,
	}

	PelatihanStatuses = []string{
		PelatihanUpcoming,
		PelatihanOngoing,
		PelatihanCompleted,
		PelatihanCancelled,
	}

	PendaftarStatuses = []string{
		PendaftarPending,
		PendaftarApproved,
		PendaftarRejected,
		PendaftarAttended,
	}
)

func ValidRole(r string) bool { return contains(AllRoles, r) }

func ValidPelatihanStatus(s string) bool { return contains(PelatihanStatuses, s) }

func ValidPendaftarStatus(s string) bool { return contains(PendaftarStatuses, s) }

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
