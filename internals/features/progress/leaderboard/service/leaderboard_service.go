package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"iqro_backend/internals/constants"
	database "iqro_backend/internals/databases"
	"iqro_backend/internals/features/progress/leaderboard/dto"
	"iqro_backend/internals/helpers/cache"
)

const cacheTTL = 60 * time.Second

func lbCache() *cache.JSONCache {
	return cache.New(database.Redis, "leaderboard")
}

func cacheKey(orgID uuid.UUID, filter string) string {
	return "org:" + orgID.String() + ":" + filter
}

// LoadEntries: semua siswa di kelas beserta poinnya. Siswa tanpa baris siswa_poin = 0.
func LoadEntries(db *gorm.DB, orgID uuid.UUID) ([]dto.Entry, error) {
	out := make([]dto.Entry, 0)
	err := db.Table("users u").
		Select(`u.id AS siswa_id, u.name, u.avatar_url,
			COALESCE(sp.total_poin, 0) AS total_poin,
			COALESCE(sp.poin_hafalan, 0) AS poin_hafalan,
			COALESCE(sp.poin_quiz, 0) AS poin_quiz`).
		Joins("LEFT JOIN siswa_poin sp ON sp.siswa_id = u.id").
		Where("u.organize_id = ? AND u.role = ? AND u.is_active = ?", orgID, constants.RoleSiswa, true).
		Scan(&out).Error
	return out, errors.Wrap(err, "load leaderboard entries")
}

// Ranked: hasil Rank per (kelas, filter), di-cache di redis kalau tersedia.
func Ranked(ctx context.Context, db *gorm.DB, orgID uuid.UUID, filter string) ([]dto.Entry, error) {
	c := lbCache()
	key := cacheKey(orgID, filter)

	var cached []dto.Entry
	if c.Get(ctx, key, &cached) {
		return cached, nil
	}

	entries, err := LoadEntries(db.WithContext(ctx), orgID)
	if err != nil {
		return nil, err
	}
	ranked := Rank(entries, ScoreFor(filter))
	c.Set(ctx, key, ranked, cacheTTL)
	return ranked, nil
}

// Build menyusun respons lengkap. q hanya menyaring tampilan, peringkat tetap.
func Build(ctx context.Context, db *gorm.DB, orgID, viewerID uuid.UUID, filter, q string) (*dto.LeaderboardResponse, error) {
	if !dto.IsValidFilter(filter) {
		filter = dto.FilterAll
	}
	ranked, err := Ranked(ctx, db, orgID, filter)
	if err != nil {
		return nil, err
	}

	return &dto.LeaderboardResponse{
		Filter:     filter,
		Entries:    FilterByName(ranked, q),
		MyRank:     RankOf(ranked, func(e dto.Entry) bool { return e.SiswaID == viewerID }),
		TopHafalan: Top(ranked, ScoreFor(dto.FilterHafalan)),
		TopQuiz:    Top(ranked, ScoreFor(dto.FilterQuiz)),
	}, nil
}

// InvalidateOrganize dipanggil setelah poin atau anggota kelas berubah.
func InvalidateOrganize(ctx context.Context, orgID uuid.UUID) {
	lbCache().Del(ctx,
		cacheKey(orgID, dto.FilterAll),
		cacheKey(orgID, dto.FilterHafalan),
		cacheKey(orgID, dto.FilterQuiz),
	)
}
