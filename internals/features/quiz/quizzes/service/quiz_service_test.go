package service

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"iqro_backend/internals/features/quiz/quizzes/model"
)

func TestEvaluateAnswer(t *testing.T) {
	q := model.QuizModel{
		Options:       pq.StringArray{"Al-Fatihah", "Al-Baqarah", "An-Nas"},
		CorrectOption: 1,
		Poin:          15,
	}

	tests := []struct {
		name     string
		selected int
		correct  bool
		poin     int
	}{
		{"benar", 1, true, 15},
		{"salah", 0, false, 0},
		{"salah opsi terakhir", 2, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, poin := EvaluateAnswer(q, tt.selected)
			assert.Equal(t, tt.correct, ok)
			assert.Equal(t, tt.poin, poin)
		})
	}
}
