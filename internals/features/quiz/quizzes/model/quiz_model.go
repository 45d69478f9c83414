package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type QuizModel struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Question      string         `gorm:"type:text;not null" json:"question"`
	Options       pq.StringArray `gorm:"type:text[];not null" json:"options"`
	CorrectOption int            `gorm:"not null" json:"correct_option"`
	Poin          int            `gorm:"not null;default:10" json:"poin"`
	OrganizeID    *uuid.UUID     `gorm:"type:uuid;index:idx_quizzes_org_active,priority:1" json:"organize_id,omitempty"`
	Difficulty    string         `gorm:"type:varchar(10);not null;default:'sedang'" json:"difficulty"`
	Category      *string        `gorm:"size:100" json:"category,omitempty"`
	IsActive      bool           `gorm:"not null;default:true;index:idx_quizzes_org_active,priority:2" json:"is_active"`
	CreatedBy     *uuid.UUID     `gorm:"type:uuid" json:"created_by,omitempty"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (QuizModel) TableName() string {
	return "quizzes"
}

// QuizAnswerModel: satu jawaban per (quiz, siswa).
type QuizAnswerModel struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	QuizID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_quiz_answers_quiz_siswa" json:"quiz_id"`
	SiswaID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_quiz_answers_quiz_siswa;index" json:"siswa_id"`
	SelectedOption int       `gorm:"not null" json:"selected_option"`
	IsCorrect      bool      `gorm:"not null" json:"is_correct"`
	Poin           int       `gorm:"not null;default:0" json:"poin"`
	AnsweredAt     time.Time `gorm:"autoCreateTime" json:"answered_at"`
}

func (QuizAnswerModel) TableName() string {
	return "quiz_answers"
}
