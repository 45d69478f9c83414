package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"iqro_backend/internals/constants"
	"iqro_backend/internals/features/hafalan/setoran/model"
)

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func TestResolveGradePoints(t *testing.T) {
	tests := []struct {
		name   string
		status string
		input  *int
		want   int
	}{
		{"ditolak tanpa input", constants.StatusDitolak, nil, 0},
		{"ditolak dengan input", constants.StatusDitolak, intPtr(50), 0},
		{"diterima tanpa input", constants.StatusDiterima, nil, 10},
		{"diterima input nol", constants.StatusDiterima, intPtr(0), 10},
		{"diterima input negatif", constants.StatusDiterima, intPtr(-5), 10},
		{"diterima input positif", constants.StatusDiterima, intPtr(25), 25},
		{"status lain", constants.StatusPending, intPtr(25), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveGradePoints(tt.status, tt.input))
		})
	}
}

func TestGradeNotification(t *testing.T) {
	t.Run("diterima", func(t *testing.T) {
		title, msg, typ := gradeNotification(model.SetoranModel{
			Status: constants.StatusDiterima,
			Jenis:  constants.JenisHafalan,
			Surah:  strPtr("Al-Mulk"),
			Poin:   20,
		})
		assert.Equal(t, "Setoran Diterima", title)
		assert.Equal(t, "Setoran hafalan Al-Mulk diterima. Kamu mendapat 20 poin.", msg)
		assert.Equal(t, constants.NotifAchievement, typ)
	})

	t.Run("ditolak dengan catatan", func(t *testing.T) {
		_, msg, typ := gradeNotification(model.SetoranModel{
			Status:  constants.StatusDitolak,
			Jenis:   constants.JenisMurojaah,
			Surah:   strPtr("Yasin"),
			Catatan: strPtr("Perbaiki tajwid"),
		})
		assert.Equal(t, "Setoran murojaah Yasin belum diterima. Catatan guru: Perbaiki tajwid", msg)
		assert.Equal(t, constants.NotifInfo, typ)
	})

	t.Run("tanpa surah", func(t *testing.T) {
		_, msg, _ := gradeNotification(model.SetoranModel{Status: constants.StatusDitolak, Jenis: constants.JenisHafalan})
		assert.Equal(t, "Setoran hafalan kamu belum diterima.", msg)
	})
}
