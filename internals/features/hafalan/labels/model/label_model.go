package model

import (
	"time"

	"github.com/google/uuid"
)

// LabelModel: penanda capaian per juz, satu per (siswa, juz).
type LabelModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SiswaID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_labels_siswa_juz" json:"siswa_id"`
	Juz           int        `gorm:"not null;uniqueIndex:uq_labels_siswa_juz" json:"juz"`
	Tanggal       time.Time  `gorm:"type:date;not null" json:"tanggal"`
	DiberikanOleh *uuid.UUID `gorm:"type:uuid" json:"diberikan_oleh,omitempty"`
	Keterangan    *string    `gorm:"type:text" json:"keterangan,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (LabelModel) TableName() string {
	return "labels"
}
