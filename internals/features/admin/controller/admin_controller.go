package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"iqro_backend/internals/features/admin/dto"
	"iqro_backend/internals/features/admin/service"
	helper "iqro_backend/internals/helpers"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GET /api/a/stats
func (ac *AdminController) Stats(c *fiber.Ctx) error {
	st, err := service.Stats(ac.DB.WithContext(c.Context()))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Statistik sistem", st)
}

// GET /api/a/users?role=&q=&page=&per_page=
func (ac *AdminController) ListUsers(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)
	f := dto.UserFilter{
		Role: strings.ToLower(strings.TrimSpace(c.Query("role"))),
		Q:    c.Query("q"),
	}
	users, total, err := service.ListUsers(ac.DB.WithContext(c.Context()), f, p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "Daftar user", users, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// PATCH /api/a/users/:id/active
func (ac *AdminController) SetActive(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.SetActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := helper.ValidateStruct(&req); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	u, err := service.SetActive(ac.DB.WithContext(c.Context()), adminID, id, *req.IsActive)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	msg := "User dinonaktifkan"
	if u.IsActive {
		msg = "User diaktifkan"
	}
	return helper.JsonUpdated(c, msg, u)
}

// GET /api/a/organizes
func (ac *AdminController) ListOrganizes(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)
	items, total, err := service.ListOrganizes(ac.DB.WithContext(c.Context()), p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "Daftar kelas", items, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}
