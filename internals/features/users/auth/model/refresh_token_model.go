package model

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken menyimpan HMAC-SHA256 dari refresh token, bukan plaintext.
type RefreshToken struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	TokenHash []byte    `gorm:"column:token_hash;type:bytea;not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time `gorm:"column:expires_at;type:timestamptz;not null" json:"expires_at"`
	UserAgent *string   `gorm:"column:user_agent" json:"user_agent,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"created_at"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}
