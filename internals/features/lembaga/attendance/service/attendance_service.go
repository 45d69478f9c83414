package service

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"iqro_backend/internals/constants"
	"iqro_backend/internals/features/lembaga/attendance/dto"
	"iqro_backend/internals/features/lembaga/attendance/model"
	helper "iqro_backend/internals/helpers"
	"iqro_backend/internals/helpers/dbtime"
)

// DefaultHistoryDays: rentang riwayat kalau from/to tidak diisi.
const DefaultHistoryDays = 30

var ErrInvalidRange = fiber.NewError(fiber.StatusBadRequest, "Rentang tanggal tidak valid (format YYYY-MM-DD, from <= to)")

// Upsert: satu catatan per (siswa, tanggal); status terakhir yang dipakai.
func Upsert(db *gorm.DB, guruID uuid.UUID, orgID *uuid.UUID, studentID uuid.UUID, status string, date time.Time) (*model.AttendanceModel, error) {
	rec := &model.AttendanceModel{
		StudentID:  studentID,
		Date:       date,
		Status:     status,
		OrganizeID: orgID,
		RecordedBy: &guruID,
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "organize_id", "recorded_by", "updated_at"}),
	}).Create(rec).Error
	if err != nil {
		return nil, errors.Wrap(err, "upsert attendance")
	}

	var saved model.AttendanceModel
	if err := db.Where("student_id = ? AND date = ?", studentID, date.Format(dbtime.DateLayout)).
		First(&saved).Error; err != nil {
		return nil, errors.Wrap(err, "reload attendance")
	}
	return &saved, nil
}

// Today: nil kalau belum ada catatan hari ini.
func Today(db *gorm.DB, studentID uuid.UUID) (*model.AttendanceModel, error) {
	var rec model.AttendanceModel
	err := db.Where("student_id = ? AND date = ?", studentID, dbtime.Today().Format(dbtime.DateLayout)).
		Limit(1).Find(&rec).Error
	if err != nil {
		return nil, errors.Wrap(err, "attendance today")
	}
	if rec.ID == uuid.Nil {
		return nil, nil
	}
	return &rec, nil
}

func History(db *gorm.DB, studentID uuid.UUID, from, to time.Time) ([]model.AttendanceModel, error) {
	list := make([]model.AttendanceModel, 0)
	err := db.Where("student_id = ? AND date BETWEEN ? AND ?",
		studentID, from.Format(dbtime.DateLayout), to.Format(dbtime.DateLayout)).
		Order("date DESC").
		Find(&list).Error
	return list, errors.Wrap(err, "attendance history")
}

// ResolveRange membaca from/to (YYYY-MM-DD). Default: 30 hari terakhir sampai hari ini.
func ResolveRange(fromStr, toStr string, today time.Time) (time.Time, time.Time, error) {
	to := today
	if toStr != "" {
		t, err := dbtime.ParseDate(toStr)
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidRange
		}
		to = t
	}
	from := to.AddDate(0, 0, -(DefaultHistoryDays - 1))
	if fromStr != "" {
		f, err := dbtime.ParseDate(fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidRange
		}
		from = f
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	return from, to, nil
}

// SummarizeAttendance menghitung jumlah per status; persentase = hadir / total.
func SummarizeAttendance(records []model.AttendanceModel) dto.AttendanceSummary {
	var s dto.AttendanceSummary
	for _, r := range records {
		switch r.Status {
		case constants.AttendanceHadir:
			s.Hadir++
		case constants.AttendanceIzin:
			s.Izin++
		case constants.AttendanceTidakHadir:
			s.TidakHadir++
		default:
			continue
		}
		s.Total++
	}
	s.Percentage = helper.Percentage(int64(s.Hadir), int64(s.Total))
	return s
}
