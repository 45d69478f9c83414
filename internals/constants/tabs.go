package constants

type Tab struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

var (
	tabBeranda     = Tab{Key: "beranda", Title: "Beranda", Icon: "home"}
	tabQuran       = Tab{Key: "quran", Title: "Al-Quran", Icon: "book-open"}
	tabLeaderboard = Tab{Key: "leaderboard", Title: "Leaderboard", Icon: "trophy"}
	tabSetoran     = Tab{Key: "setoran", Title: "Setoran", Icon: "mic"}
	tabQuiz        = Tab{Key: "quiz", Title: "Quiz", Icon: "help-circle"}
	tabGabung      = Tab{Key: "gabung-kelas", Title: "Gabung Kelas", Icon: "user-plus"}
	tabProfil      = Tab{Key: "profil", Title: "Profil", Icon: "user"}
	tabMonitoring  = Tab{Key: "monitoring", Title: "Monitoring", Icon: "eye"}
	tabPenilaian   = Tab{Key: "penilaian", Title: "Penilaian", Icon: "check-square"}
	tabOrganize    = Tab{Key: "organize", Title: "Kelas", Icon: "users"}
	tabAdmin       = Tab{Key: "admin", Title: "Admin", Icon: "settings"}
)

var roleTabs = map[string][]Tab{
	RoleSiswa: {tabSetoran, tabQuiz, tabGabung, tabProfil},
	RoleOrtu:  {tabMonitoring, tabGabung, tabProfil},
	RoleGuru:  {tabMonitoring, tabPenilaian, tabQuiz, tabOrganize, tabProfil},
	RoleAdmin: {tabAdmin},
}

// TabsForRole: tab umum (beranda, quran, leaderboard) + tab khusus role.
// Role tidak dikenal hanya dapat tab umum.
func TabsForRole(role string) []Tab {
	out := []Tab{tabBeranda, tabQuran, tabLeaderboard}
	return append(out, roleTabs[role]...)
}
