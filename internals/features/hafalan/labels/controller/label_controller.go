package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"iqro_backend/internals/features/hafalan/labels/dto"
	"iqro_backend/internals/features/hafalan/labels/service"
	organizeService "iqro_backend/internals/features/lembaga/organizes/service"
	helper "iqro_backend/internals/helpers"
)

type LabelController struct {
	DB *gorm.DB
}

func NewLabelController(db *gorm.DB) *LabelController {
	return &LabelController{DB: db}
}

// GET /api/u/labels/mine
func (lc *LabelController) GetMine(c *fiber.Ctx) error {
	siswaID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	list, err := service.ListBySiswa(lc.DB.WithContext(c.Context()), siswaID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Label hafalan", list)
}

// GET /api/u/labels/student/:id
func (lc *LabelController) GetByStudent(c *fiber.Ctx) error {
	viewerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	studentID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	db := lc.DB.WithContext(c.Context())

	if _, err := organizeService.AuthorizeStudentAccess(db, viewerID, helper.GetRoleFromToken(c), studentID); err != nil {
		return helper.FromFiberError(c, err)
	}
	list, err := service.ListBySiswa(db, studentID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Label hafalan siswa", list)
}

// POST /api/u/labels
func (lc *LabelController) Create(c *fiber.Ctx) error {
	guruID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateLabelRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if errs := helper.ValidateStruct(&req); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	db := lc.DB.WithContext(c.Context())

	if _, err := organizeService.AuthorizeStudentAccess(db, guruID, helper.GetRoleFromToken(c), req.SiswaID); err != nil {
		return helper.FromFiberError(c, err)
	}
	label, err := service.Create(db, guruID, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Label berhasil diberikan", label)
}
