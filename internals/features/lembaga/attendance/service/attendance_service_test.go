package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iqro_backend/internals/constants"
	"iqro_backend/internals/features/lembaga/attendance/dto"
	"iqro_backend/internals/features/lembaga/attendance/model"
)

func TestSummarizeAttendance(t *testing.T) {
	rec := func(status string) model.AttendanceModel { return model.AttendanceModel{Status: status} }

	tests := []struct {
		name    string
		records []model.AttendanceModel
		want    dto.AttendanceSummary
	}{
		{"kosong", nil, dto.AttendanceSummary{}},
		{
			"campuran",
			[]model.AttendanceModel{
				rec(constants.AttendanceHadir), rec(constants.AttendanceHadir),
				rec(constants.AttendanceIzin), rec(constants.AttendanceTidakHadir),
			},
			dto.AttendanceSummary{Total: 4, Hadir: 2, Izin: 1, TidakHadir: 1, Percentage: 50},
		},
		{
			"pembulatan",
			[]model.AttendanceModel{rec(constants.AttendanceHadir), rec(constants.AttendanceHadir), rec(constants.AttendanceIzin)},
			dto.AttendanceSummary{Total: 3, Hadir: 2, Izin: 1, Percentage: 67},
		},
		{
			"status asing diabaikan",
			[]model.AttendanceModel{rec("libur"), rec(constants.AttendanceHadir)},
			dto.AttendanceSummary{Total: 1, Hadir: 1, Percentage: 100},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SummarizeAttendance(tt.records))
		})
	}
}

func TestResolveRange(t *testing.T) {
	today := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	from, to, err := ResolveRange("", "", today)
	require.NoError(t, err)
	assert.Equal(t, today, to)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), from)

	from, to, err = ResolveRange("2024-05-01", "2024-05-31", today)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", from.Format("2006-01-02"))
	assert.Equal(t, "2024-05-31", to.Format("2006-01-02"))

	_, _, err = ResolveRange("2024-06-10", "2024-06-01", today)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, _, err = ResolveRange("10-06-2024", "", today)
	assert.ErrorIs(t, err, ErrInvalidRange)
}
