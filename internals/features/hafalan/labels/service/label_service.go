package service

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"iqro_backend/internals/features/hafalan/labels/dto"
	"iqro_backend/internals/features/hafalan/labels/model"
	"iqro_backend/internals/helpers/dbtime"
)

var ErrLabelExists = fiber.NewError(fiber.StatusConflict, "Label juz ini sudah diberikan")

// JuzDoneText: keterangan label otomatis saat setoran diterima.
func JuzDoneText(juz int) string {
	return fmt.Sprintf("Juz %d selesai - Hafalan diterima", juz)
}

// EnsureJuzLabel membuat label (siswa, juz) kalau belum ada. true kalau baris baru dibuat.
func EnsureJuzLabel(tx *gorm.DB, siswaID uuid.UUID, juz int, givenBy *uuid.UUID, keterangan string) (bool, error) {
	label := model.LabelModel{
		SiswaID:       siswaID,
		Juz:           juz,
		Tanggal:       dbtime.Today(),
		DiberikanOleh: givenBy,
	}
	if keterangan != "" {
		label.Keterangan = &keterangan
	}
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "siswa_id"}, {Name: "juz"}},
		DoNothing: true,
	}).Create(&label)
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "insert label")
	}
	return res.RowsAffected > 0, nil
}

// Create dipakai guru untuk memberi label manual; duplikat -> 409.
func Create(db *gorm.DB, guruID uuid.UUID, req dto.CreateLabelRequest) (*model.LabelModel, error) {
	label := &model.LabelModel{
		SiswaID:       req.SiswaID,
		Juz:           req.Juz,
		Tanggal:       dbtime.Today(),
		DiberikanOleh: &guruID,
		Keterangan:    req.Keterangan,
	}
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "siswa_id"}, {Name: "juz"}},
		DoNothing: true,
	}).Create(label)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "insert label")
	}
	if res.RowsAffected == 0 {
		return nil, ErrLabelExists
	}
	return label, nil
}

func ListBySiswa(db *gorm.DB, siswaID uuid.UUID) ([]model.LabelModel, error) {
	list := make([]model.LabelModel, 0)
	err := db.Where("siswa_id = ?", siswaID).Order("juz ASC").Find(&list).Error
	return list, errors.Wrap(err, "list labels")
}

// CountBySiswa: jumlah label per siswa, key = siswa_id.
func CountBySiswa(db *gorm.DB, siswaIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	out := make(map[uuid.UUID]int64, len(siswaIDs))
	if len(siswaIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		SiswaID uuid.UUID
		N       int64
	}
	if err := db.Model(&model.LabelModel{}).
		Select("siswa_id, COUNT(*) AS n").
		Where("siswa_id IN ?", siswaIDs).
		Group("siswa_id").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "count labels")
	}
	for _, r := range rows {
		out[r.SiswaID] = r.N
	}
	return out, nil
}
