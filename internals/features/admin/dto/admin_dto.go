package dto

import (
	"time"

	"github.com/google/uuid"
)

type SystemStats struct {
	TotalUsers     int64            `json:"total_users"`
	TotalOrganizes int64            `json:"total_organizes"`
	TotalSetoran   int64            `json:"total_setoran"`
	PendingSetoran int64            `json:"pending_setoran"`
	UsersByRole    map[string]int64 `json:"users_by_role"`
}

type UserFilter struct {
	Role string
	Q    string
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type OrganizeItem struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	IsActive     bool      `json:"is_active"`
	GuruID       uuid.UUID `json:"guru_id"`
	GuruName     string    `json:"guru_name"`
	StudentCount int64     `json:"student_count"`
	CreatedAt    time.Time `json:"created_at"`
}
