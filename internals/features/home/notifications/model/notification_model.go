package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type NotificationModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_notifications_user_created,priority:1" json:"user_id"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	Type      string         `gorm:"type:varchar(20);not null;default:'info'" json:"type"`
	IsRead    bool           `gorm:"not null;default:false" json:"is_read"`
	Data      datatypes.JSON `gorm:"type:jsonb" json:"data,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index:idx_notifications_user_created,priority:2,sort:desc" json:"created_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}
