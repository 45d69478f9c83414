package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"iqro_backend/internals/features/home/dashboard/service"
	helper "iqro_backend/internals/helpers"
	"iqro_backend/internals/helpers/dbtime"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// GET /api/u/home
func (dc *DashboardController) Get(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	role := helper.GetRoleFromToken(c)

	res, err := service.Build(dc.DB.WithContext(c.Context()), userID, role, dbtime.Now())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Beranda", res)
}
