package dto

import "github.com/google/uuid"

// Dipakai admin untuk kirim notifikasi manual ke satu user.
type CreateNotificationRequest struct {
	UserID  uuid.UUID      `json:"user_id" validate:"required"`
	Title   string         `json:"title" validate:"required,notblank,max=255"`
	Message string         `json:"message" validate:"required,notblank"`
	Type    string         `json:"type" validate:"omitempty,oneof=reminder achievement warning info"`
	Data    map[string]any `json:"data"`
}

type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}

type ReminderResult struct {
	Created int `json:"created"`
	Emailed int `json:"emailed"`
	Skipped int `json:"skipped"`
}
