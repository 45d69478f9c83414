package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iqro_backend/internals/features/progress/leaderboard/dto"
)

func entry(name string, total, hafalan, quiz int) dto.Entry {
	return dto.Entry{SiswaID: uuid.New(), Name: name, TotalPoin: total, PoinHafalan: hafalan, PoinQuiz: quiz}
}

func TestRank_CompetitionRanking(t *testing.T) {
	entries := []dto.Entry{
		entry("Ahmad", 50, 0, 0),
		entry("Budi", 80, 0, 0),
		entry("Citra", 80, 0, 0),
		entry("Dewi", 30, 0, 0),
	}

	ranked := Rank(entries, ScoreFor(dto.FilterAll))
	require.Len(t, ranked, 4)

	byName := map[string]int{}
	for _, e := range ranked {
		byName[e.Name] = e.Rank
	}
	assert.Equal(t, 3, byName["Ahmad"])
	assert.Equal(t, 1, byName["Budi"])
	assert.Equal(t, 1, byName["Citra"])
	assert.Equal(t, 4, byName["Dewi"])

	// seri dipecah nama
	assert.Equal(t, "Budi", ranked[0].Name)
	assert.Equal(t, "Citra", ranked[1].Name)
	// input tidak diubah
	assert.Equal(t, 0, entries[0].Rank)
}

func TestRank_TieBreakIgnoresCaseAndAccents(t *testing.T) {
	ranked := Rank([]dto.Entry{
		entry("zainab", 10, 0, 0),
		entry("Ázizah", 10, 0, 0),
		entry("BILAL", 10, 0, 0),
	}, ScoreFor(dto.FilterAll))

	names := []string{ranked[0].Name, ranked[1].Name, ranked[2].Name}
	assert.Equal(t, []string{"Ázizah", "BILAL", "zainab"}, names)
	for _, e := range ranked {
		assert.Equal(t, 1, e.Rank)
	}
}

func TestRank_Filters(t *testing.T) {
	entries := []dto.Entry{
		entry("A", 100, 90, 10),
		entry("B", 60, 10, 50),
	}

	tests := []struct {
		filter string
		first  string
		score  int
	}{
		{dto.FilterAll, "A", 100},
		{dto.FilterHafalan, "A", 90},
		{dto.FilterQuiz, "B", 50},
		{"unknown", "A", 100},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			ranked := Rank(entries, ScoreFor(tt.filter))
			assert.Equal(t, tt.first, ranked[0].Name)
			assert.Equal(t, tt.score, ranked[0].Score)
		})
	}
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank(nil, ScoreFor(dto.FilterAll)))
	assert.Nil(t, Top(nil, ScoreFor(dto.FilterQuiz)))
}

func TestFilterByName_KeepsRank(t *testing.T) {
	ranked := Rank([]dto.Entry{
		entry("Muhammad Ali", 90, 0, 0),
		entry("Siti", 70, 0, 0),
		entry("Alya", 50, 0, 0),
	}, ScoreFor(dto.FilterAll))

	got := FilterByName(ranked, "  ALI ")
	require.Len(t, got, 1)
	assert.Equal(t, "Muhammad Ali", got[0].Name)
	assert.Equal(t, 1, got[0].Rank)

	got = FilterByName(ranked, "aly")
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Rank)

	assert.Len(t, FilterByName(ranked, ""), 3)
}

func TestRankOf(t *testing.T) {
	me := entry("Saya", 40, 0, 0)
	ranked := Rank([]dto.Entry{entry("Lain", 90, 0, 0), me}, ScoreFor(dto.FilterAll))

	r := RankOf(ranked, func(e dto.Entry) bool { return e.SiswaID == me.SiswaID })
	require.NotNil(t, r)
	assert.Equal(t, 2, *r)

	assert.Nil(t, RankOf(ranked, func(e dto.Entry) bool { return e.SiswaID == uuid.Nil }))
}

func TestTop(t *testing.T) {
	entries := []dto.Entry{entry("A", 100, 90, 10), entry("B", 60, 10, 50)}
	assert.Equal(t, "A", Top(entries, ScoreFor(dto.FilterHafalan)).Name)
	assert.Equal(t, "B", Top(entries, ScoreFor(dto.FilterQuiz)).Name)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "aisyah", NormalizeName("  ÄISYAH "))
	assert.Equal(t, "fatimah", NormalizeName("Fāṭimah"))
}
