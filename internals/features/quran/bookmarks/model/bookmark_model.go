package model

import (
	"time"

	"github.com/google/uuid"
)

type QuranBookmarkModel struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_quran_bookmark_user_ayah,priority:1" json:"user_id"`
	SurahNumber int       `gorm:"not null;uniqueIndex:uq_quran_bookmark_user_ayah,priority:2;check:surah_number BETWEEN 1 AND 114" json:"surah_number"`
	AyahNumber  int       `gorm:"not null;uniqueIndex:uq_quran_bookmark_user_ayah,priority:3;check:ayah_number >= 1" json:"ayah_number"`
	Note        *string   `gorm:"type:text" json:"note,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (QuranBookmarkModel) TableName() string {
	return "quran_bookmarks"
}
