package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	helper "iqro_backend/internals/helpers"
)

func intPtr(n int) *int { return &n }

func TestSubmitSetoranRequest_Normalize(t *testing.T) {
	blank := "   "
	r := SubmitSetoranRequest{Surah: "  An-Naba ", Jenis: " HAFALAN ", Catatan: &blank, FileURL: " https://x.id/a.mp3 "}
	r.Normalize()

	assert.Equal(t, "An-Naba", r.Surah)
	assert.Equal(t, "hafalan", r.Jenis)
	assert.Equal(t, "https://x.id/a.mp3", r.FileURL)
	assert.Nil(t, r.Catatan)
}

func TestSubmitSetoranRequest_Validation(t *testing.T) {
	tests := []struct {
		name  string
		req   SubmitSetoranRequest
		field string
	}{
		{"valid", SubmitSetoranRequest{Surah: "Al-Fatihah", Juz: 1, Jenis: "hafalan"}, ""},
		{"juz terlalu besar", SubmitSetoranRequest{Surah: "X", Juz: 31, Jenis: "hafalan"}, "juz"},
		{"juz kosong", SubmitSetoranRequest{Surah: "X", Jenis: "hafalan"}, "juz"},
		{"jenis salah", SubmitSetoranRequest{Surah: "X", Juz: 2, Jenis: "tilawah"}, "jenis"},
		{"surah kosong", SubmitSetoranRequest{Surah: "  ", Juz: 2, Jenis: "murojaah"}, "surah"},
		{"file_url bukan url", SubmitSetoranRequest{Surah: "X", Juz: 2, Jenis: "murojaah", FileURL: "rekaman"}, "file_url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := helper.ValidateStruct(&tt.req)
			if tt.field == "" {
				assert.Nil(t, errs)
				return
			}
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestAyatRangeValid(t *testing.T) {
	assert.True(t, (&SubmitSetoranRequest{}).AyatRangeValid())
	assert.True(t, (&SubmitSetoranRequest{AyatMulai: intPtr(1)}).AyatRangeValid())
	assert.True(t, (&SubmitSetoranRequest{AyatMulai: intPtr(3), AyatSelesai: intPtr(3)}).AyatRangeValid())
	assert.False(t, (&SubmitSetoranRequest{AyatMulai: intPtr(5), AyatSelesai: intPtr(2)}).AyatRangeValid())
}

func TestGradeSetoranRequest_Validation(t *testing.T) {
	assert.Nil(t, helper.ValidateStruct(&GradeSetoranRequest{Status: "diterima", Poin: intPtr(15)}))
	assert.Contains(t, helper.ValidateStruct(&GradeSetoranRequest{Status: "pending"}), "status")
	assert.Contains(t, helper.ValidateStruct(&GradeSetoranRequest{Status: "ditolak", Poin: intPtr(-1)}), "poin")
}
