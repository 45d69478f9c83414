package constants

import "fmt"

const (
	RoleSiswa = "siswa"
	RoleGuru  = "guru"
	RoleOrtu  = "ortu"
	RoleAdmin = "admin"
)

// Template pesan error role
const (
	ErrOnlyGuruCanAccess    = "❌ Hanya guru yang boleh mengakses fitur %s."
	ErrOnlySiswaCanAccess   = "❌ Hanya siswa yang boleh mengakses fitur %s."
	ErrOnlyAdminsCanAccess  = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyMonitorCanAccess = "❌ Hanya guru atau orang tua yang boleh mengakses fitur %s."
	ErrOnlyOrtuCanAccess    = "❌ Hanya orang tua yang boleh mengakses fitur %s."
	ErrOnlyJoinCanAccess    = "❌ Hanya siswa atau orang tua yang boleh mengakses fitur %s."
)

func RoleErrorGuru(feature string) string {
	return fmt.Sprintf(ErrOnlyGuruCanAccess, feature)
}

func RoleErrorSiswa(feature string) string {
	return fmt.Sprintf(ErrOnlySiswaCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorMonitor(feature string) string {
	return fmt.Sprintf(ErrOnlyMonitorCanAccess, feature)
}

func RoleErrorOrtu(feature string) string {
	return fmt.Sprintf(ErrOnlyOrtuCanAccess, feature)
}

func RoleErrorJoin(feature string) string {
	return fmt.Sprintf(ErrOnlyJoinCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleSiswa,
		RoleGuru,
		RoleOrtu,
		RoleAdmin,
	}

	// role yang boleh dipilih saat register (admin hanya lewat seed)
	RegisterableRoles = []string{
		RoleSiswa,
		RoleGuru,
		RoleOrtu,
	}

	MonitorRoles = []string{
		RoleGuru,
		RoleOrtu,
	}

	JoinRoles = []string{
		RoleSiswa,
		RoleOrtu,
	}

	GuruOnly = []string{
		RoleGuru,
	}

	SiswaOnly = []string{
		RoleSiswa,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

func IsRegisterableRole(role string) bool {
	for _, r := range RegisterableRoles {
		if r == role {
			return true
		}
	}
	return false
}

// ==========================
// Tipe user
// ==========================
const (
	UserTypeNormal   = "normal"
	UserTypeCadel    = "cadel"
	UserTypeSchool   = "school"
	UserTypePersonal = "personal"
)

var UserTypeNames = map[string]string{
	UserTypeNormal:   "Normal",
	UserTypeCadel:    "Cadel",
	UserTypeSchool:   "Sekolah",
	UserTypePersonal: "Personal",
}

func IsValidUserType(t string) bool {
	_, ok := UserTypeNames[t]
	return ok
}
