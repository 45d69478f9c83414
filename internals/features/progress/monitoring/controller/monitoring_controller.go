package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"iqro_backend/internals/features/progress/monitoring/service"
	helper "iqro_backend/internals/helpers"
	"iqro_backend/internals/helpers/dbtime"
)

type MonitoringController struct {
	DB *gorm.DB
}

func NewMonitoringController(db *gorm.DB) *MonitoringController {
	return &MonitoringController{DB: db}
}

// GET /api/u/monitoring/students?q=
func (mc *MonitoringController) ListStudents(c *fiber.Ctx) error {
	viewerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	cards, err := service.ListStudents(mc.DB.WithContext(c.Context()), viewerID, helper.GetRoleFromToken(c), c.Query("q"), dbtime.Now())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Monitoring siswa", cards)
}

// GET /api/u/monitoring/students/:id
func (mc *MonitoringController) GetStudent(c *fiber.Ctx) error {
	viewerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	studentID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	detail, err := service.StudentDetail(mc.DB.WithContext(c.Context()), viewerID, helper.GetRoleFromToken(c), studentID, dbtime.Now())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Detail monitoring siswa", detail)
}
