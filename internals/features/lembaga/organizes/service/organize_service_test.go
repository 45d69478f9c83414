package service

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iqro_backend/internals/features/lembaga/organizes/model"
)

func TestGenerateCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(codeAlphabet, r), "karakter %q di luar base36", r)
		}
		seen[code] = true
	}
	// 200 kode acak dari 36^6 kemungkinan praktis tidak bentrok
	assert.Greater(t, len(seen), 190)
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "AB12CD", NormalizeCode("  ab12cd "))
	assert.Equal(t, "", NormalizeCode("   "))
}

func TestAverageAccuracy(t *testing.T) {
	tests := []struct {
		name   string
		counts []StudentSetoranCount
		want   int
	}{
		{"kosong", nil, 0},
		{"tanpa setoran diabaikan", []StudentSetoranCount{{Total: 0}}, 0},
		{"satu siswa", []StudentSetoranCount{{Total: 4, Diterima: 3}}, 75},
		{"rata-rata per siswa", []StudentSetoranCount{{Total: 4, Diterima: 4}, {Total: 2, Diterima: 1}}, 75},
		{"pembulatan", []StudentSetoranCount{{Total: 3, Diterima: 1}, {Total: 3, Diterima: 2}, {Total: 0}}, 50},
		{"semua ditolak", []StudentSetoranCount{{Total: 5}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AverageAccuracy(tt.counts))
		})
	}
}

func TestBuildWorkbook(t *testing.T) {
	juz := 30
	surah := "An-Naba"
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	rep := &OrganizeReport{
		Organize: model.OrganizeModel{ID: uuid.New(), Name: "Kelas A", Code: "ABC123"},
		Students: []ReportStudentRow{
			{Name: "Aisyah", Email: "a@x.id", TotalPoin: 40, PoinHafalan: 30, PoinQuiz: 10},
			{Name: "Bilal", Email: "b@x.id"},
		},
		Setoran: []ReportSetoranRow{
			{Tanggal: day, SiswaName: "Aisyah", Jenis: "hafalan", Surah: &surah, Juz: &juz, Status: "diterima", Poin: 30},
		},
		Attendance: []ReportAttendanceRow{{Date: day, SiswaName: "Bilal", Status: "izin"}},
	}

	f, err := BuildWorkbook(rep)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Siswa", "Setoran", "Kehadiran"}, f.GetSheetList())

	v, err := f.GetCellValue("Siswa", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Aisyah", v)
	v, _ = f.GetCellValue("Siswa", "D2")
	assert.Equal(t, "40", v)
	v, _ = f.GetCellValue("Siswa", "B3")
	assert.Equal(t, "Bilal", v)

	v, _ = f.GetCellValue("Setoran", "A2")
	assert.Equal(t, "2024-05-01", v)
	v, _ = f.GetCellValue("Setoran", "E2")
	assert.Equal(t, "30", v)

	v, _ = f.GetCellValue("Kehadiran", "C2")
	assert.Equal(t, "izin", v)

	assert.Equal(t, "laporan-ABC123-20240501.xlsx", ReportFilename(rep.Organize, day))
}
