package dto

import (
	"github.com/google/uuid"

	setoranDTO "iqro_backend/internals/features/hafalan/setoran/dto"
	setoranModel "iqro_backend/internals/features/hafalan/setoran/model"
	organizeModel "iqro_backend/internals/features/lembaga/organizes/model"
	monitoringDTO "iqro_backend/internals/features/progress/monitoring/dto"
	pointModel "iqro_backend/internals/features/progress/points/model"
)

type HomeResponse struct {
	Greeting    string     `json:"greeting"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	UnreadCount int64      `json:"unread_count"`
	Siswa       *SiswaHome `json:"siswa,omitempty"`
	Guru        *GuruHome  `json:"guru,omitempty"`
	Ortu        *OrtuHome  `json:"ortu,omitempty"`
	Admin       *AdminHome `json:"admin,omitempty"`
}

type SiswaHome struct {
	Summary monitoringDTO.SetoranSummary `json:"summary"`
	Recent  []setoranModel.SetoranModel  `json:"recent"`
	Points  pointModel.SiswaPoinModel    `json:"points"`
}

type GuruHome struct {
	Organize      *organizeModel.OrganizeModel    `json:"organize"`
	PendingCount  int64                           `json:"pending_count"`
	StudentCount  int64                           `json:"student_count"`
	RecentPending []setoranDTO.PendingSetoranItem `json:"recent_pending"`
}

type ChildSummary struct {
	ID      uuid.UUID                    `json:"id"`
	Name    string                       `json:"name"`
	Summary monitoringDTO.SetoranSummary `json:"summary"`
}

type OrtuHome struct {
	Child *ChildSummary `json:"child"`
}

type AdminHome struct {
	TotalUsers     int64 `json:"total_users"`
	TotalOrganizes int64 `json:"total_organizes"`
}
