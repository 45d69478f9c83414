package dto

import (
	"strings"

	"github.com/google/uuid"

	"iqro_backend/internals/features/lembaga/attendance/model"
)

type UpsertAttendanceRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Status    string    `json:"status" validate:"required,oneof=hadir tidak_hadir izin"`
	Date      string    `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

func (r *UpsertAttendanceRequest) Normalize() {
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	r.Date = strings.TrimSpace(r.Date)
}

type AttendanceSummary struct {
	Total      int `json:"total"`
	Hadir      int `json:"hadir"`
	Izin       int `json:"izin"`
	TidakHadir int `json:"tidak_hadir"`
	Percentage int `json:"percentage"`
}

type AttendanceHistoryResponse struct {
	From    string                  `json:"from"`
	To      string                  `json:"to"`
	Summary AttendanceSummary       `json:"summary"`
	Records []model.AttendanceModel `json:"records"`
}
