package dto

import (
	"github.com/google/uuid"

	labelModel "iqro_backend/internals/features/hafalan/labels/model"
	setoranModel "iqro_backend/internals/features/hafalan/setoran/model"
	attendanceDTO "iqro_backend/internals/features/lembaga/attendance/dto"
	attendanceModel "iqro_backend/internals/features/lembaga/attendance/model"
	pointModel "iqro_backend/internals/features/progress/points/model"
)

type SetoranSummary struct {
	Total            int   `json:"total"`
	Diterima         int   `json:"diterima"`
	Pending          int   `json:"pending"`
	Ditolak          int   `json:"ditolak"`
	TotalPoin        int64 `json:"total_poin"`
	HafalanProgress  int   `json:"hafalan_progress"`
	MurojaahProgress int   `json:"murojaah_progress"`
	Weekly           int   `json:"weekly"`
	Monthly          int   `json:"monthly"`
	Accuracy         int   `json:"accuracy"`
}

type StudentCard struct {
	ID         uuid.UUID                   `json:"id"`
	Name       string                      `json:"name"`
	Email      string                      `json:"email"`
	AvatarURL  *string                     `json:"avatar_url,omitempty"`
	TotalPoin  int                         `json:"total_poin"`
	LabelCount int64                       `json:"label_count"`
	Summary    SetoranSummary              `json:"summary"`
	Recent     []setoranModel.SetoranModel `json:"recent"`
}

type StudentDetail struct {
	ID                uuid.UUID                         `json:"id"`
	Name              string                            `json:"name"`
	Email             string                            `json:"email"`
	AvatarURL         *string                           `json:"avatar_url,omitempty"`
	Summary           SetoranSummary                    `json:"summary"`
	Points            pointModel.SiswaPoinModel         `json:"points"`
	Labels            []labelModel.LabelModel           `json:"labels"`
	Recent            []setoranModel.SetoranModel       `json:"recent"`
	Attendance        []attendanceModel.AttendanceModel `json:"attendance"`
	AttendanceSummary attendanceDTO.AttendanceSummary   `json:"attendance_summary"`
}
