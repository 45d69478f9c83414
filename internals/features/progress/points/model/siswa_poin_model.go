package model

import (
	"time"

	"github.com/google/uuid"
)

// SiswaPoinModel: total berjalan per siswa (hafalan + quiz)
type SiswaPoinModel struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SiswaID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"siswa_id"`
	TotalPoin   int       `gorm:"not null;default:0" json:"total_poin"`
	PoinHafalan int       `gorm:"not null;default:0" json:"poin_hafalan"`
	PoinQuiz    int       `gorm:"not null;default:0" json:"poin_quiz"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SiswaPoinModel) TableName() string {
	return "siswa_poin"
}

type PointLogModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SiswaID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"siswa_id"`
	Kind       string     `gorm:"type:varchar(10);not null" json:"kind"`
	Points     int        `gorm:"not null" json:"points"`
	SourceType string     `gorm:"type:varchar(20);not null" json:"source_type"`
	SourceID   *uuid.UUID `gorm:"type:uuid" json:"source_id,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (PointLogModel) TableName() string {
	return "point_logs"
}
