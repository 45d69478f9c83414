package model

import (
	"time"

	"github.com/google/uuid"
)

// OrganizeModel: kelas yang dipimpin satu guru, siswa/ortu bergabung lewat Code.
type OrganizeModel struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"size:150;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	GuruID      uuid.UUID `gorm:"type:uuid;not null;index" json:"guru_id"`
	Code        string    `gorm:"size:6;not null;uniqueIndex" json:"code"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (OrganizeModel) TableName() string {
	return "organizes"
}
