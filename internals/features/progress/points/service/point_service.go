package service

import (
	"log"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"iqro_backend/internals/constants"
	"iqro_backend/internals/features/progress/points/model"
)

// EnsurePoints membuat baris siswa_poin (0,0,0) kalau belum ada. Idempotent.
func EnsurePoints(tx *gorm.DB, siswaID uuid.UUID) error {
	row := model.SiswaPoinModel{SiswaID: siswaID}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "siswa_id"}},
		DoNothing: true,
	}).Create(&row).Error
	return errors.Wrap(err, "ensure siswa_poin")
}

// AddPoints menambah total_poin + komponen (hafalan/quiz) lalu mencatat point_logs.
// Dipanggil di dalam transaksi pemanggil (grading / jawab quiz).
func AddPoints(tx *gorm.DB, siswaID uuid.UUID, kind string, amount int, sourceType string, sourceID *uuid.UUID) error {
	if amount <= 0 {
		return nil
	}
	column, err := kindColumn(kind)
	if err != nil {
		return err
	}
	if err := EnsurePoints(tx, siswaID); err != nil {
		return err
	}

	if err := tx.Model(&model.SiswaPoinModel{}).
		Where("siswa_id = ?", siswaID).
		Updates(map[string]interface{}{
			"total_poin": gorm.Expr("total_poin + ?", amount),
			column:       gorm.Expr(column+" + ?", amount),
		}).Error; err != nil {
		return errors.Wrap(err, "update siswa_poin")
	}

	entry := model.PointLogModel{
		SiswaID:    siswaID,
		Kind:       kind,
		Points:     amount,
		SourceType: sourceType,
		SourceID:   sourceID,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return errors.Wrap(err, "insert point_logs")
	}

	log.Printf("[POINTS] +%d %s untuk siswa %s (%s)", amount, kind, siswaID, sourceType)
	return nil
}

func kindColumn(kind string) (string, error) {
	switch kind {
	case constants.PointKindHafalan:
		return "poin_hafalan", nil
	case constants.PointKindQuiz:
		return "poin_quiz", nil
	}
	return "", errors.Errorf("jenis poin tidak dikenal: %q", kind)
}

// GetPoints: siswa tanpa baris siswa_poin dianggap 0 semua.
func GetPoints(db *gorm.DB, siswaID uuid.UUID) (model.SiswaPoinModel, error) {
	var row model.SiswaPoinModel
	err := db.Where("siswa_id = ?", siswaID).Limit(1).Find(&row).Error
	if err != nil {
		return row, errors.Wrap(err, "get siswa_poin")
	}
	if row.ID == uuid.Nil {
		row.SiswaID = siswaID
	}
	return row, nil
}

// PointsBySiswa memuat banyak baris sekaligus, key = siswa_id.
func PointsBySiswa(db *gorm.DB, siswaIDs []uuid.UUID) (map[uuid.UUID]model.SiswaPoinModel, error) {
	out := make(map[uuid.UUID]model.SiswaPoinModel, len(siswaIDs))
	if len(siswaIDs) == 0 {
		return out, nil
	}
	var rows []model.SiswaPoinModel
	if err := db.Where("siswa_id IN ?", siswaIDs).Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list siswa_poin")
	}
	for _, r := range rows {
		out[r.SiswaID] = r
	}
	return out, nil
}
