package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SetoranModel: rekaman bacaan siswa yang menunggu / sudah dinilai guru.
// Poin hanya > 0 kalau Status = diterima.
type SetoranModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SiswaID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_setoran_siswa_tanggal,priority:1" json:"siswa_id"`
	GuruID      *uuid.UUID     `gorm:"type:uuid" json:"guru_id,omitempty"`
	OrganizeID  *uuid.UUID     `gorm:"type:uuid;index:idx_setoran_org_status,priority:1" json:"organize_id,omitempty"`
	FileURL     string         `gorm:"type:text;not null" json:"file_url"`
	FileRef     *string        `gorm:"type:text" json:"-"`
	Jenis       string         `gorm:"type:varchar(10);not null" json:"jenis"`
	Tanggal     time.Time      `gorm:"type:date;not null;index:idx_setoran_siswa_tanggal,priority:2" json:"tanggal"`
	Status      string         `gorm:"type:varchar(10);not null;default:'pending';index:idx_setoran_org_status,priority:2" json:"status"`
	Catatan     *string        `gorm:"type:text" json:"catatan,omitempty"`
	Surah       *string        `gorm:"size:100" json:"surah,omitempty"`
	Juz         *int           `json:"juz,omitempty"`
	AyatMulai   *int           `json:"ayat_mulai,omitempty"`
	AyatSelesai *int           `json:"ayat_selesai,omitempty"`
	Poin        int            `gorm:"not null;default:0" json:"poin"`
	Metadata    datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	GradedAt    *time.Time     `json:"graded_at,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (SetoranModel) TableName() string {
	return "setoran"
}
