package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"iqro_backend/internals/features/progress/points/model"
	"iqro_backend/internals/features/progress/points/service"
	helper "iqro_backend/internals/helpers"
)

type PointController struct {
	DB *gorm.DB
}

func NewPointController(db *gorm.DB) *PointController {
	return &PointController{DB: db}
}

// GET /api/u/points/mine
func (ctrl *PointController) GetMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	row, err := service.GetPoints(ctrl.DB.WithContext(c.Context()), userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Poin berhasil diambil", row)
}

// GET /api/u/points/mine/logs?page=&per_page=
func (ctrl *PointController) GetMyLogs(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.Context()).Model(&model.PointLogModel{}).Where("siswa_id = ?", userID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Println("[ERROR] Gagal hitung point_logs:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil riwayat poin")
	}

	var logs []model.PointLogModel
	if err := q.Order("created_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&logs).Error; err != nil {
		log.Println("[ERROR] Gagal mengambil point_logs:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil riwayat poin")
	}
	return helper.JsonList(c, "Riwayat poin", logs, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}
