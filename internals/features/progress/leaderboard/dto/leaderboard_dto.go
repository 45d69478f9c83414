package dto

import "github.com/google/uuid"

const (
	FilterAll     = "all"
	FilterHafalan = "hafalan"
	FilterQuiz    = "quiz"
)

func IsValidFilter(f string) bool {
	return f == FilterAll || f == FilterHafalan || f == FilterQuiz
}

type Entry struct {
	SiswaID     uuid.UUID `json:"siswa_id"`
	Name        string    `json:"name"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	TotalPoin   int       `json:"total_poin"`
	PoinHafalan int       `json:"poin_hafalan"`
	PoinQuiz    int       `json:"poin_quiz"`
	Score       int       `json:"score"`
	Rank        int       `json:"rank"`
}

type LeaderboardResponse struct {
	Filter     string  `json:"filter"`
	Entries    []Entry `json:"entries"`
	MyRank     *int    `json:"my_rank"`
	TopHafalan *Entry  `json:"top_hafalan"`
	TopQuiz    *Entry  `json:"top_quiz"`
}
