package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel merepresentasikan tabel users di database
type UserModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name       string     `gorm:"size:100;not null" json:"name"`
	Email      string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password   string     `gorm:"not null" json:"-"`
	GoogleID   *string    `gorm:"size:255;uniqueIndex" json:"-"`
	Role       string     `gorm:"type:varchar(10);not null;default:'siswa';index" json:"role"`
	Type       string     `gorm:"type:varchar(10);not null;default:'normal'" json:"type"`
	OrganizeID *uuid.UUID `gorm:"type:uuid;index" json:"organize_id,omitempty"`
	AvatarURL  *string    `gorm:"type:text" json:"avatar_url,omitempty"`
	AvatarRef  *string    `gorm:"type:text" json:"-"`
	IsActive   bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) HasOrganize() bool {
	return u.OrganizeID != nil && *u.OrganizeID != uuid.Nil
}
