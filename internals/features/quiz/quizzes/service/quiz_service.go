package service

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"iqro_backend/internals/constants"
	pointService "iqro_backend/internals/features/progress/points/service"
	"iqro_backend/internals/features/quiz/quizzes/dto"
	"iqro_backend/internals/features/quiz/quizzes/model"
	userModel "iqro_backend/internals/features/users/user/model"
	helper "iqro_backend/internals/helpers"
)

var (
	ErrQuizNotFound      = fiber.NewError(fiber.StatusNotFound, "Quiz tidak ditemukan")
	ErrAlreadyAnswered   = fiber.NewError(fiber.StatusConflict, "Quiz ini sudah Anda jawab")
	ErrOptionOutOfRange  = fiber.NewError(fiber.StatusBadRequest, "Pilihan jawaban tidak valid")
	ErrCorrectOutOfRange = fiber.NewError(fiber.StatusBadRequest, "correct_option harus menunjuk salah satu opsi")
)

/* =========================
   Kelola quiz (guru)
========================= */

func Create(db *gorm.DB, guruID, orgID uuid.UUID, req dto.CreateQuizRequest) (*model.QuizModel, error) {
	if !req.CorrectInRange() {
		return nil, ErrCorrectOutOfRange
	}
	q := req.ToModel(&orgID, guruID)
	if err := db.Create(q).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "insert quiz")
	}
	return q, nil
}

func findInOrganize(db *gorm.DB, orgID, id uuid.UUID) (*model.QuizModel, error) {
	var q model.QuizModel
	err := db.Where("id = ? AND organize_id = ?", id, orgID).First(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func Update(db *gorm.DB, orgID, id uuid.UUID, req dto.UpdateQuizRequest) (*model.QuizModel, error) {
	q, err := findInOrganize(db, orgID, id)
	if err != nil {
		return nil, err
	}
	req.ApplyTo(q)
	if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
		return nil, ErrCorrectOutOfRange
	}
	if err := db.Save(q).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "update quiz")
	}
	return q, nil
}

// Delete ikut menghapus jawaban; poin yang sudah diberikan tetap.
func Delete(db *gorm.DB, orgID, id uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := findInOrganize(tx, orgID, id); err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&model.QuizAnswerModel{}).Error; err != nil {
			return pkgerrors.Wrap(err, "delete quiz answers")
		}
		return tx.Delete(&model.QuizModel{}, "id = ?", id).Error
	})
}

func ListForOrganize(db *gorm.DB, orgID uuid.UUID) ([]model.QuizModel, error) {
	list := make([]model.QuizModel, 0)
	err := db.Where("organize_id = ?", orgID).Order("created_at DESC").Find(&list).Error
	return list, pkgerrors.Wrap(err, "list quizzes")
}

func CreateMany(db *gorm.DB, guruID, orgID uuid.UUID, reqs []dto.CreateQuizRequest) (int, error) {
	if len(reqs) == 0 {
		return 0, nil
	}
	rows := make([]model.QuizModel, 0, len(reqs))
	for i := range reqs {
		rows = append(rows, *reqs[i].ToModel(&orgID, guruID))
	}
	if err := db.CreateInBatches(&rows, 100).Error; err != nil {
		return 0, pkgerrors.Wrap(err, "import quizzes")
	}
	return len(rows), nil
}

/* =========================
   Siswa
========================= */

// visibleTo: quiz aktif dari kelas siswa, plus quiz umum (tanpa kelas).
func visibleTo(db *gorm.DB, orgID *uuid.UUID) *gorm.DB {
	q := db.Model(&model.QuizModel{}).Where("is_active = ?", true)
	if orgID != nil {
		return q.Where("organize_id = ? OR organize_id IS NULL", *orgID)
	}
	return q.Where("organize_id IS NULL")
}

func siswaOrganize(db *gorm.DB, siswaID uuid.UUID) (*uuid.UUID, error) {
	var u userModel.UserModel
	if err := db.Select("id, organize_id").First(&u, "id = ?", siswaID).Error; err != nil {
		return nil, err
	}
	if !u.HasOrganize() {
		return nil, nil
	}
	return u.OrganizeID, nil
}

func ListForSiswa(db *gorm.DB, siswaID uuid.UUID) ([]dto.QuizForSiswa, error) {
	orgID, err := siswaOrganize(db, siswaID)
	if err != nil {
		return nil, err
	}
	var quizzes []model.QuizModel
	if err := visibleTo(db, orgID).Order("created_at DESC").Find(&quizzes).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "list quizzes siswa")
	}

	var answers []model.QuizAnswerModel
	if err := db.Where("siswa_id = ?", siswaID).Find(&answers).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "list answers")
	}
	byQuiz := make(map[uuid.UUID]*model.QuizAnswerModel, len(answers))
	for i := range answers {
		byQuiz[answers[i].QuizID] = &answers[i]
	}

	out := make([]dto.QuizForSiswa, 0, len(quizzes))
	for _, q := range quizzes {
		out = append(out, dto.NewQuizForSiswa(q, byQuiz[q.ID]))
	}
	return out, nil
}

// EvaluateAnswer: benar kalau pilihan sama dengan kunci; poin quiz hanya untuk jawaban benar.
func EvaluateAnswer(q model.QuizModel, selected int) (bool, int) {
	if selected == q.CorrectOption {
		return true, q.Poin
	}
	return false, 0
}

// Answer menyimpan jawaban dan poin dalam satu transaksi. orgID kelas siswa dikembalikan
// untuk invalidasi leaderboard.
func Answer(db *gorm.DB, siswaID, quizID uuid.UUID, selected int) (*dto.AnswerResult, *uuid.UUID, error) {
	orgID, err := siswaOrganize(db, siswaID)
	if err != nil {
		return nil, nil, err
	}

	var result dto.AnswerResult
	err = db.Transaction(func(tx *gorm.DB) error {
		var q model.QuizModel
		if err := visibleTo(tx, orgID).Where("id = ?", quizID).First(&q).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrQuizNotFound
			}
			return err
		}
		if selected < 0 || selected >= len(q.Options) {
			return ErrOptionOutOfRange
		}

		var n int64
		if err := tx.Model(&model.QuizAnswerModel{}).
			Where("quiz_id = ? AND siswa_id = ?", quizID, siswaID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrAlreadyAnswered
		}

		correct, poin := EvaluateAnswer(q, selected)
		ans := model.QuizAnswerModel{
			QuizID:         quizID,
			SiswaID:        siswaID,
			SelectedOption: selected,
			IsCorrect:      correct,
			Poin:           poin,
		}
		if err := tx.Create(&ans).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return ErrAlreadyAnswered
			}
			return pkgerrors.Wrap(err, "insert quiz answer")
		}
		if err := pointService.AddPoints(tx, siswaID, constants.PointKindQuiz, poin, constants.PointSourceQuiz, &q.ID); err != nil {
			return err
		}

		result = dto.AnswerResult{
			IsCorrect:     correct,
			Poin:          poin,
			CorrectOption: q.CorrectOption,
			CorrectAnswer: q.Options[q.CorrectOption],
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	log.Printf("[INFO] Siswa %s menjawab quiz %s (benar=%v, +%d)", siswaID, quizID, result.IsCorrect, result.Poin)
	return &result, orgID, nil
}

func Stats(db *gorm.DB, siswaID uuid.UUID) (dto.QuizStats, error) {
	var row struct {
		Total   int64
		Correct int64
		Poin    int64
	}
	err := db.Model(&model.QuizAnswerModel{}).
		Select("COUNT(*) AS total, COUNT(*) FILTER (WHERE is_correct) AS correct, COALESCE(SUM(poin), 0) AS poin").
		Where("siswa_id = ?", siswaID).
		Scan(&row).Error
	if err != nil {
		return dto.QuizStats{}, pkgerrors.Wrap(err, "quiz stats")
	}
	return dto.QuizStats{
		TotalAnswered: row.Total,
		Correct:       row.Correct,
		Accuracy:      helper.Percentage(row.Correct, row.Total),
		TotalPoin:     row.Poin,
	}, nil
}
