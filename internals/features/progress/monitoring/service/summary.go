package service

import (
	"time"

	"iqro_backend/internals/constants"
	setoranModel "iqro_backend/internals/features/hafalan/setoran/model"
	"iqro_backend/internals/features/progress/monitoring/dto"
	helper "iqro_backend/internals/helpers"
)

const (
	weekWindow  = 7 * 24 * time.Hour
	monthWindow = 30 * 24 * time.Hour
)

// SummarizeSetoran menghitung ringkasan setoran satu siswa.
// weekly/monthly = setoran diterima yang dibuat dalam 7/30 hari terakhir dari now.
func SummarizeSetoran(list []setoranModel.SetoranModel, now time.Time) dto.SetoranSummary {
	weekAgo := now.Add(-weekWindow)
	monthAgo := now.Add(-monthWindow)

	var s dto.SetoranSummary
	for _, it := range list {
		s.Total++
		s.TotalPoin += int64(it.Poin)

		switch it.Status {
		case constants.StatusPending:
			s.Pending++
			continue
		case constants.StatusDitolak:
			s.Ditolak++
			continue
		case constants.StatusDiterima:
			s.Diterima++
		default:
			continue
		}

		switch it.Jenis {
		case constants.JenisHafalan:
			s.HafalanProgress++
		case constants.JenisMurojaah:
			s.MurojaahProgress++
		}
		if !it.CreatedAt.Before(weekAgo) {
			s.Weekly++
		}
		if !it.CreatedAt.Before(monthAgo) {
			s.Monthly++
		}
	}
	s.Accuracy = helper.Percentage(int64(s.Diterima), int64(s.Total))
	return s
}
