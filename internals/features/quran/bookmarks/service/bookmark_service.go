package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"iqro_backend/internals/features/quran/bookmarks/dto"
	"iqro_backend/internals/features/quran/bookmarks/model"
	helper "iqro_backend/internals/helpers"
)

var (
	ErrBookmarkNotFound = fiber.NewError(fiber.StatusNotFound, "Bookmark tidak ditemukan")
	ErrBookmarkExists   = fiber.NewError(fiber.StatusConflict, "Ayat ini sudah ada di bookmark")
)

func List(db *gorm.DB, userID uuid.UUID) ([]model.QuranBookmarkModel, error) {
	var list []model.QuranBookmarkModel
	err := db.Where("user_id = ?", userID).
		Order("surah_number ASC, ayah_number ASC").
		Find(&list).Error
	return list, err
}

func Create(db *gorm.DB, userID uuid.UUID, req dto.CreateBookmarkRequest) (*model.QuranBookmarkModel, error) {
	b := &model.QuranBookmarkModel{
		UserID:      userID,
		SurahNumber: req.SurahNumber,
		AyahNumber:  req.AyahNumber,
		Note:        req.Note,
	}
	if err := db.Create(b).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, ErrBookmarkExists
		}
		return nil, err
	}
	return b, nil
}

func findOwned(db *gorm.DB, userID, id uuid.UUID) (*model.QuranBookmarkModel, error) {
	var b model.QuranBookmarkModel
	err := db.Where("id = ? AND user_id = ?", id, userID).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookmarkNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ApplyUpdate: note "" menghapus catatan.
func ApplyUpdate(b *model.QuranBookmarkModel, req dto.UpdateBookmarkRequest) {
	if req.SurahNumber != nil {
		b.SurahNumber = *req.SurahNumber
	}
	if req.AyahNumber != nil {
		b.AyahNumber = *req.AyahNumber
	}
	if req.Note != nil {
		if *req.Note == "" {
			b.Note = nil
		} else {
			note := *req.Note
			b.Note = &note
		}
	}
}

func Update(db *gorm.DB, userID, id uuid.UUID, req dto.UpdateBookmarkRequest) (*model.QuranBookmarkModel, error) {
	b, err := findOwned(db, userID, id)
	if err != nil {
		return nil, err
	}
	ApplyUpdate(b, req)
	if err := db.Save(b).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, ErrBookmarkExists
		}
		return nil, err
	}
	return b, nil
}

func Delete(db *gorm.DB, userID, id uuid.UUID) error {
	res := db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.QuranBookmarkModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrBookmarkNotFound
	}
	return nil
}
