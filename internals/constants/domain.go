package constants

// ==========================
// Setoran
// ==========================
const (
	StatusPending  = "pending"
	StatusDiterima = "diterima"
	StatusDitolak  = "ditolak"

	JenisHafalan  = "hafalan"
	JenisMurojaah = "murojaah"

	DefaultGradePoints = 10
	MinJuz             = 1
	MaxJuz             = 30
)

func IsValidJenis(j string) bool {
	return j == JenisHafalan || j == JenisMurojaah
}

func IsGradeStatus(s string) bool {
	return s == StatusDiterima || s == StatusDitolak
}

func IsValidSetoranStatus(s string) bool {
	return s == StatusPending || IsGradeStatus(s)
}

// ==========================
// Quiz
// ==========================
const (
	DifficultyMudah  = "mudah"
	DifficultySedang = "sedang"
	DifficultySulit  = "sulit"

	DefaultQuizPoints = 10
	MinQuizOptions    = 2
	MaxQuizOptions    = 6
)

func IsValidDifficulty(d string) bool {
	return d == DifficultyMudah || d == DifficultySedang || d == DifficultySulit
}

// ==========================
// Kehadiran
// ==========================
const (
	AttendanceHadir      = "hadir"
	AttendanceTidakHadir = "tidak_hadir"
	AttendanceIzin       = "izin"
)

func IsValidAttendanceStatus(s string) bool {
	return s == AttendanceHadir || s == AttendanceTidakHadir || s == AttendanceIzin
}

// ==========================
// Notifikasi
// ==========================
const (
	NotifReminder    = "reminder"
	NotifAchievement = "achievement"
	NotifWarning     = "warning"
	NotifInfo        = "info"

	DailyReminderTitle   = "Reminder Setoran Harian"
	DailyReminderMessage = "Jangan lupa untuk mengirim setoran hafalan atau murojaah hari ini!"
)

func IsValidNotificationType(t string) bool {
	switch t {
	case NotifReminder, NotifAchievement, NotifWarning, NotifInfo:
		return true
	}
	return false
}

// ==========================
// Poin
// ==========================
const (
	PointKindHafalan = "hafalan"
	PointKindQuiz    = "quiz"

	PointSourceSetoran = "setoran"
	PointSourceQuiz    = "quiz"
)
