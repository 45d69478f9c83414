package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tabKeys(tabs []Tab) []string {
	out := make([]string, 0, len(tabs))
	for _, t := range tabs {
		out = append(out, t.Key)
	}
	return out
}

func TestTabsForRole(t *testing.T) {
	common := []string{"beranda", "quran", "leaderboard"}

	tests := []struct {
		role string
		want []string
	}{
		{role: RoleSiswa, want: append(append([]string{}, common...), "setoran", "quiz", "gabung-kelas", "profil")},
		{role: RoleOrtu, want: append(append([]string{}, common...), "monitoring", "gabung-kelas", "profil")},
		{role: RoleGuru, want: append(append([]string{}, common...), "monitoring", "penilaian", "quiz", "organize", "profil")},
		{role: RoleAdmin, want: append(append([]string{}, common...), "admin")},
		{role: "tamu", want: common},
		{role: "", want: common},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			assert.Equal(t, tt.want, tabKeys(TabsForRole(tt.role)))
		})
	}
}

func TestTabsForRoleDoesNotShareBacking(t *testing.T) {
	a := TabsForRole(RoleSiswa)
	a[0].Title = "changed"
	b := TabsForRole(RoleSiswa)
	assert.Equal(t, "Beranda", b[0].Title)
}

func TestRoleHelpers(t *testing.T) {
	assert.True(t, IsRegisterableRole(RoleSiswa))
	assert.True(t, IsRegisterableRole(RoleOrtu))
	assert.False(t, IsRegisterableRole(RoleAdmin))
	assert.True(t, IsValidRole(RoleAdmin))
	assert.False(t, IsValidRole("owner"))
	assert.True(t, IsValidUserType(UserTypeCadel))
	assert.False(t, IsValidUserType("vip"))
	assert.Contains(t, RoleErrorGuru("penilaian"), "penilaian")
}

func TestDetectFileType(t *testing.T) {
	tests := []struct {
		name string
		want FileKind
		ct   string
	}{
		{"setoran.MP3", FileAudio, "audio/mpeg"},
		{"rekaman.m4a", FileAudio, "audio/mp4"},
		{"foto.jpeg", FileImage, "image/jpeg"},
		{"avatar.webp", FileImage, "image/webp"},
		{"dokumen.pdf", FileUnknown, ""},
		{"tanpa-ekstensi", FileUnknown, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFileTypeFromExt(tt.name))
			assert.Equal(t, tt.ct, ContentTypeFromExt(tt.name))
		})
	}
}

func TestDomainValidators(t *testing.T) {
	assert.True(t, IsValidJenis(JenisMurojaah))
	assert.False(t, IsValidJenis("tilawah"))
	assert.True(t, IsGradeStatus(StatusDitolak))
	assert.False(t, IsGradeStatus(StatusPending))
	assert.True(t, IsValidSetoranStatus(StatusPending))
	assert.True(t, IsValidDifficulty(DifficultySulit))
	assert.True(t, IsValidAttendanceStatus(AttendanceIzin))
	assert.False(t, IsValidAttendanceStatus("alpa"))
	assert.True(t, IsValidNotificationType(NotifAchievement))
	assert.False(t, IsValidNotificationType("promo"))
}
