package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"iqro_backend/internals/constants"
	"iqro_backend/internals/features/quiz/quizzes/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type CreateQuizRequest struct {
	Question      string   `json:"question" validate:"required,notblank"`
	Options       []string `json:"options" validate:"required,min=2,max=6,dive,notblank"`
	CorrectOption *int     `json:"correct_option" validate:"required,min=0"`
	Poin          *int     `json:"poin" validate:"omitempty,min=1,max=1000"`
	Difficulty    string   `json:"difficulty" validate:"omitempty,oneof=mudah sedang sulit"`
	Category      *string  `json:"category" validate:"omitempty,max=100"`
}

func (r *CreateQuizRequest) Normalize() {
	r.Question = strings.TrimSpace(r.Question)
	for i := range r.Options {
		r.Options[i] = strings.TrimSpace(r.Options[i])
	}
	r.Difficulty = strings.ToLower(strings.TrimSpace(r.Difficulty))
	r.Category = trimPtr(r.Category)
}

// CorrectInRange: correct_option harus menunjuk salah satu opsi.
func (r *CreateQuizRequest) CorrectInRange() bool {
	return r.CorrectOption != nil && *r.CorrectOption >= 0 && *r.CorrectOption < len(r.Options)
}

func (r *CreateQuizRequest) ToModel(orgID *uuid.UUID, createdBy uuid.UUID) *model.QuizModel {
	poin := constants.DefaultQuizPoints
	if r.Poin != nil && *r.Poin > 0 {
		poin = *r.Poin
	}
	difficulty := r.Difficulty
	if difficulty == "" {
		difficulty = constants.DifficultySedang
	}
	return &model.QuizModel{
		Question:      r.Question,
		Options:       pq.StringArray(r.Options),
		CorrectOption: *r.CorrectOption,
		Poin:          poin,
		OrganizeID:    orgID,
		Difficulty:    difficulty,
		Category:      r.Category,
		IsActive:      true,
		CreatedBy:     &createdBy,
	}
}

type UpdateQuizRequest struct {
	Question      *string  `json:"question" validate:"omitempty,notblank"`
	Options       []string `json:"options" validate:"omitempty,min=2,max=6,dive,notblank"`
	CorrectOption *int     `json:"correct_option" validate:"omitempty,min=0"`
	Poin          *int     `json:"poin" validate:"omitempty,min=1,max=1000"`
	Difficulty    *string  `json:"difficulty" validate:"omitempty,oneof=mudah sedang sulit"`
	Category      *string  `json:"category" validate:"omitempty,max=100"`
	IsActive      *bool    `json:"is_active"`
}

func (r *UpdateQuizRequest) Normalize() {
	r.Question = trimPtr(r.Question)
	for i := range r.Options {
		r.Options[i] = strings.TrimSpace(r.Options[i])
	}
	if r.Difficulty != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Difficulty))
		r.Difficulty = &v
	}
	r.Category = trimPtr(r.Category)
}

// ApplyTo mengubah model di memori; validasi correct_option dilakukan setelahnya.
func (r *UpdateQuizRequest) ApplyTo(q *model.QuizModel) {
	if r.Question != nil {
		q.Question = *r.Question
	}
	if r.Options != nil {
		q.Options = pq.StringArray(r.Options)
	}
	if r.CorrectOption != nil {
		q.CorrectOption = *r.CorrectOption
	}
	if r.Poin != nil {
		q.Poin = *r.Poin
	}
	if r.Difficulty != nil {
		q.Difficulty = *r.Difficulty
	}
	if r.Category != nil {
		if *r.Category == "" {
			q.Category = nil
		} else {
			q.Category = r.Category
		}
	}
	if r.IsActive != nil {
		q.IsActive = *r.IsActive
	}
}

type AnswerQuizRequest struct {
	SelectedOption *int `json:"selected_option" validate:"required,min=0"`
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

// QuizForSiswa: kunci jawaban tidak dikirim.
type QuizForSiswa struct {
	ID         uuid.UUID `json:"id"`
	Question   string    `json:"question"`
	Options    []string  `json:"options"`
	Poin       int       `json:"poin"`
	Difficulty string    `json:"difficulty"`
	Category   *string   `json:"category,omitempty"`
	Answered   bool      `json:"answered"`
	IsCorrect  *bool     `json:"is_correct,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewQuizForSiswa(q model.QuizModel, ans *model.QuizAnswerModel) QuizForSiswa {
	out := QuizForSiswa{
		ID:         q.ID,
		Question:   q.Question,
		Options:    []string(q.Options),
		Poin:       q.Poin,
		Difficulty: q.Difficulty,
		Category:   q.Category,
		CreatedAt:  q.CreatedAt,
	}
	if ans != nil {
		correct := ans.IsCorrect
		out.Answered = true
		out.IsCorrect = &correct
	}
	return out
}

type AnswerResult struct {
	IsCorrect     bool   `json:"is_correct"`
	Poin          int    `json:"poin"`
	CorrectOption int    `json:"correct_option"`
	CorrectAnswer string `json:"correct_answer"`
}

type QuizStats struct {
	TotalAnswered int64 `json:"total_answered"`
	Correct       int64 `json:"correct"`
	Accuracy      int   `json:"accuracy"`
	TotalPoin     int64 `json:"total_poin"`
}

type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportResult struct {
	Imported int              `json:"imported"`
	Errors   []ImportRowError `json:"errors"`
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
