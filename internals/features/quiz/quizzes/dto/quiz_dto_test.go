package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iqro_backend/internals/constants"
	"iqro_backend/internals/features/quiz/quizzes/model"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestCreateQuizRequest_CorrectInRange(t *testing.T) {
	tests := []struct {
		name    string
		correct *int
		want    bool
	}{
		{"nil", nil, false},
		{"negatif", intPtr(-1), false},
		{"pertama", intPtr(0), true},
		{"terakhir", intPtr(2), true},
		{"lewat", intPtr(3), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := CreateQuizRequest{Options: []string{"a", "b", "c"}, CorrectOption: tt.correct}
			assert.Equal(t, tt.want, r.CorrectInRange())
		})
	}
}

func TestCreateQuizRequest_ToModelDefaults(t *testing.T) {
	r := CreateQuizRequest{
		Question:      "  Berapa ayat Al-Fatihah? ",
		Options:       []string{" 5 ", "7"},
		CorrectOption: intPtr(1),
		Difficulty:    " ",
		Category:      strPtr("  "),
	}
	r.Normalize()

	org := uuid.New()
	guru := uuid.New()
	m := r.ToModel(&org, guru)

	assert.Equal(t, "Berapa ayat Al-Fatihah?", m.Question)
	assert.Equal(t, pq.StringArray{"5", "7"}, m.Options)
	assert.Equal(t, constants.DefaultQuizPoints, m.Poin)
	assert.Equal(t, constants.DifficultySedang, m.Difficulty)
	assert.True(t, m.IsActive)
	require.NotNil(t, m.CreatedBy)
	assert.Equal(t, guru, *m.CreatedBy)
	assert.Equal(t, org, *m.OrganizeID)
}

func TestUpdateQuizRequest_ApplyTo(t *testing.T) {
	cat := "Tajwid"
	q := &model.QuizModel{
		Question:      "lama",
		Options:       pq.StringArray{"a", "b"},
		CorrectOption: 0,
		Poin:          10,
		Difficulty:    constants.DifficultySedang,
		Category:      &cat,
		IsActive:      true,
	}

	r := UpdateQuizRequest{
		Question:   strPtr(" baru "),
		Difficulty: strPtr(" SULIT "),
		Category:   strPtr(""),
		IsActive:   boolPtr(false),
	}
	r.Normalize()
	r.ApplyTo(q)

	assert.Equal(t, "baru", q.Question)
	assert.Equal(t, constants.DifficultySulit, q.Difficulty)
	assert.Nil(t, q.Category)
	assert.False(t, q.IsActive)
	// field yang tidak dikirim tetap
	assert.Equal(t, pq.StringArray{"a", "b"}, q.Options)
	assert.Equal(t, 10, q.Poin)
}

func TestNewQuizForSiswa_HidesAnswer(t *testing.T) {
	q := model.QuizModel{ID: uuid.New(), Question: "Q", Options: pq.StringArray{"a", "b"}, CorrectOption: 1, Poin: 10}

	out := NewQuizForSiswa(q, nil)
	assert.False(t, out.Answered)
	assert.Nil(t, out.IsCorrect)

	out = NewQuizForSiswa(q, &model.QuizAnswerModel{IsCorrect: true})
	assert.True(t, out.Answered)
	require.NotNil(t, out.IsCorrect)
	assert.True(t, *out.IsCorrect)
}
