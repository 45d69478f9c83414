package service

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"iqro_backend/internals/features/progress/leaderboard/dto"
)

// ScoreFunc mengambil nilai yang diurutkan dari satu entry.
type ScoreFunc func(dto.Entry) int

func ScoreFor(filter string) ScoreFunc {
	switch filter {
	case dto.FilterHafalan:
		return func(e dto.Entry) int { return e.PoinHafalan }
	case dto.FilterQuiz:
		return func(e dto.Entry) int { return e.PoinQuiz }
	}
	return func(e dto.Entry) int { return e.TotalPoin }
}

// Rank mengurutkan menurun berdasarkan score, seri dipecah nama (tanpa beda huruf besar) lalu id.
// Peringkat memakai competition ranking: nilai sama berbagi peringkat terbaik,
// peringkat berikutnya melompat (80,80,50 -> 1,1,3).
func Rank(entries []dto.Entry, score ScoreFunc) []dto.Entry {
	out := make([]dto.Entry, len(entries))
	copy(out, entries)

	keys := make([]string, len(out))
	for i := range out {
		out[i].Score = score(out[i])
		keys[i] = NormalizeName(out[i].Name)
	}

	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ea, eb := out[idx[a]], out[idx[b]]
		if ea.Score != eb.Score {
			return ea.Score > eb.Score
		}
		if ka, kb := keys[idx[a]], keys[idx[b]]; ka != kb {
			return ka < kb
		}
		return ea.SiswaID.String() < eb.SiswaID.String()
	})

	ranked := make([]dto.Entry, len(out))
	for pos, i := range idx {
		ranked[pos] = out[i]
		if pos > 0 && ranked[pos].Score == ranked[pos-1].Score {
			ranked[pos].Rank = ranked[pos-1].Rank
		} else {
			ranked[pos].Rank = pos + 1
		}
	}
	return ranked
}

// NormalizeName: case-fold + buang tanda diakritik, untuk sort dan pencarian.
func NormalizeName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		stripped = strings.TrimSpace(s)
	}
	return cases.Fold().String(stripped)
}

// FilterByName tetap mempertahankan nomor peringkat hasil Rank.
func FilterByName(ranked []dto.Entry, q string) []dto.Entry {
	needle := NormalizeName(q)
	if needle == "" {
		return ranked
	}
	out := make([]dto.Entry, 0, len(ranked))
	for _, e := range ranked {
		if strings.Contains(NormalizeName(e.Name), needle) {
			out = append(out, e)
		}
	}
	return out
}

// Top: entry peringkat 1 untuk score tertentu, nil kalau kosong.
func Top(entries []dto.Entry, score ScoreFunc) *dto.Entry {
	if len(entries) == 0 {
		return nil
	}
	top := Rank(entries, score)[0]
	return &top
}

func RankOf(ranked []dto.Entry, match func(dto.Entry) bool) *int {
	for _, e := range ranked {
		if match(e) {
			r := e.Rank
			return &r
		}
	}
	return nil
}
