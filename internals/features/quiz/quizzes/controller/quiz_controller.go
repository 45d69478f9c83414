package controller

import (
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	organizeService "iqro_backend/internals/features/lembaga/organizes/service"
	leaderboardService "iqro_backend/internals/features/progress/leaderboard/service"
	"iqro_backend/internals/features/quiz/quizzes/dto"
	"iqro_backend/internals/features/quiz/quizzes/service"
	helper "iqro_backend/internals/helpers"
	"iqro_backend/internals/helpers/metrics"
)

const maxImportSize = 5 * 1024 * 1024

type QuizController struct {
	DB *gorm.DB
}

func NewQuizController(db *gorm.DB) *QuizController {
	return &QuizController{DB: db}
}

/* =========================
   Guru
========================= */

// POST /api/u/quizzes
func (qc *QuizController) Create(c *fiber.Ctx) error {
	guruID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if errs := helper.ValidateStruct(&req); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	db := qc.DB.WithContext(c.Context())
	org, err := organizeService.FindGuruOrganize(db, guruID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	q, err := service.Create(db, guruID, org.ID, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Quiz berhasil dibuat", q)
}

// PATCH /api/u/quizzes/:id
func (qc *QuizController) Update(c *fiber.Ctx) error {
	guruID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if errs := helper.ValidateStruct(&req); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	db := qc.DB.WithContext(c.Context())
	org, err := organizeService.FindGuruOrganize(db, guruID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	q, err := service.Update(db, org.ID, id, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Quiz berhasil diperbarui", q)
}

// DELETE /api/u/quizzes/:id
func (qc *QuizController) Delete(c *fiber.Ctx) error {
	guruID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	db := qc.DB.WithContext(c.Context())
	org, err := organizeService.FindGuruOrganize(db, guruID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := service.Delete(db, org.ID, id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Quiz dihapus", fiber.Map{"id": id})
}

// GET /api/u/quizzes/manage
func (qc *QuizController) ListManage(c *fiber.Ctx) error {
	guruID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	db := qc.DB.WithContext(c.Context())
	org, err := organizeService.FindGuruOrganize(db, guruID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	list, err := service.ListForOrganize(db, org.ID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Daftar quiz kelas", list)
}

// POST /api/u/quizzes/import (multipart: file .xlsx)
func (qc *QuizController) Import(c *fiber.Ctx) error {
	guruID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File .xlsx wajib diunggah")
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".xlsx") {
		return helper.JsonError(c, fiber.StatusUnsupportedMediaType, "Format file harus .xlsx")
	}
	if fh.Size > maxImportSize {
		return helper.JsonError(c, fiber.StatusRequestEntityTooLarge, "Ukuran file melebihi 5 MB")
	}

	db := qc.DB.WithContext(c.Context())
	org, err := organizeService.FindGuruOrganize(db, guruID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	src, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File tidak bisa dibaca")
	}
	defer src.Close()

	reqs, rowErrs, err := service.ParseQuizSheet(src)
	if err != nil {
		log.Printf("[ERROR] Import quiz: %v", err)
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	n, err := service.CreateMany(db, guruID, org.ID, reqs)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Import quiz selesai", dto.ImportResult{Imported: n, Errors: rowErrs})
}

/* =========================
   Siswa
========================= */

// GET /api/u/quizzes
func (qc *QuizController) ListForSiswa(c *fiber.Ctx) error {
	siswaID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	list, err := service.ListForSiswa(qc.DB.WithContext(c.Context()), siswaID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Daftar quiz", list)
}

// POST /api/u/quizzes/:id/answer
func (qc *QuizController) Answer(c *fiber.Ctx) error {
	siswaID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	quizID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.AnswerQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := helper.ValidateStruct(&req); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	res, orgID, err := service.Answer(qc.DB.WithContext(c.Context()), siswaID, quizID, *req.SelectedOption)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	metrics.QuizAnswered.WithLabelValues(strconv.FormatBool(res.IsCorrect)).Inc()
	if res.Poin > 0 && orgID != nil {
		leaderboardService.InvalidateOrganize(c.Context(), *orgID)
	}

	msg := "Jawaban kurang tepat"
	if res.IsCorrect {
		msg = "Jawaban benar"
	}
	return helper.JsonCreated(c, msg, res)
}

// GET /api/u/quizzes/stats
func (qc *QuizController) Stats(c *fiber.Ctx) error {
	siswaID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	st, err := service.Stats(qc.DB.WithContext(c.Context()), siswaID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Statistik quiz", st)
}
