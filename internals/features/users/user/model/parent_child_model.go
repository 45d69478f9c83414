package model

import (
	"time"

	"github.com/google/uuid"
)

// ParentChildModel: relasi ortu -> siswa (satu ortu bisa punya banyak anak)
type ParentChildModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ParentID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_parent_child" json:"parent_id"`
	ChildID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_parent_child;index" json:"child_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ParentChildModel) TableName() string {
	return "parent_children"
}
