package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"iqro_backend/internals/constants"
	setoranModel "iqro_backend/internals/features/hafalan/setoran/model"
	"iqro_backend/internals/features/progress/monitoring/dto"
)

func TestSummarizeSetoran(t *testing.T) {
	now := time.Date(2024, 7, 31, 12, 0, 0, 0, time.UTC)
	daysAgo := func(d int) time.Time { return now.AddDate(0, 0, -d) }
	s := func(status, jenis string, poin int, created time.Time) setoranModel.SetoranModel {
		return setoranModel.SetoranModel{Status: status, Jenis: jenis, Poin: poin, CreatedAt: created}
	}

	list := []setoranModel.SetoranModel{
		s(constants.StatusDiterima, constants.JenisHafalan, 20, daysAgo(1)),
		s(constants.StatusDiterima, constants.JenisHafalan, 10, daysAgo(10)),
		s(constants.StatusDiterima, constants.JenisMurojaah, 10, daysAgo(40)),
		s(constants.StatusPending, constants.JenisHafalan, 0, daysAgo(0)),
		s(constants.StatusDitolak, constants.JenisMurojaah, 0, daysAgo(2)),
	}

	got := SummarizeSetoran(list, now)
	assert.Equal(t, dto.SetoranSummary{
		Total:            5,
		Diterima:         3,
		Pending:          1,
		Ditolak:          1,
		TotalPoin:        40,
		HafalanProgress:  2,
		MurojaahProgress: 1,
		Weekly:           1,
		Monthly:          2,
		Accuracy:         60,
	}, got)
}

func TestSummarizeSetoran_HafalanProgressCountsAccepted(t *testing.T) {
	now := time.Now()
	var list []setoranModel.SetoranModel
	for i := 0; i < 7; i++ {
		list = append(list, setoranModel.SetoranModel{Status: constants.StatusDiterima, Jenis: constants.JenisHafalan, CreatedAt: now})
	}
	list = append(list, setoranModel.SetoranModel{Status: constants.StatusPending, Jenis: constants.JenisHafalan, CreatedAt: now})

	assert.Equal(t, 7, SummarizeSetoran(list, now).HafalanProgress)
}

func TestSummarizeSetoran_Empty(t *testing.T) {
	got := SummarizeSetoran(nil, time.Now())
	assert.Equal(t, dto.SetoranSummary{}, got)
}

func TestSummarizeSetoran_WindowBoundary(t *testing.T) {
	now := time.Date(2024, 7, 31, 12, 0, 0, 0, time.UTC)
	list := []setoranModel.SetoranModel{
		{Status: constants.StatusDiterima, Jenis: constants.JenisHafalan, CreatedAt: now.Add(-7 * 24 * time.Hour)},
		{Status: constants.StatusDiterima, Jenis: constants.JenisHafalan, CreatedAt: now.Add(-30 * 24 * time.Hour)},
	}
	got := SummarizeSetoran(list, now)
	assert.Equal(t, 1, got.Weekly)
	assert.Equal(t, 2, got.Monthly)
}

func TestFirstN(t *testing.T) {
	assert.NotNil(t, firstN(nil, 5))
	assert.Len(t, firstN(nil, 5), 0)
	list := make([]setoranModel.SetoranModel, 8)
	assert.Len(t, firstN(list, 5), 5)
	assert.Len(t, firstN(list[:3], 5), 3)
}
