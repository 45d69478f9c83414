package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"iqro_backend/internals/features/lembaga/attendance/dto"
	"iqro_backend/internals/features/lembaga/attendance/service"
	organizeService "iqro_backend/internals/features/lembaga/organizes/service"
	helper "iqro_backend/internals/helpers"
	"iqro_backend/internals/helpers/dbtime"
)

type AttendanceController struct {
	DB *gorm.DB
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db}
}

// PUT /api/u/attendance
func (ac *AttendanceController) Upsert(c *fiber.Ctx) error {
	guruID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpsertAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if errs := helper.ValidateStruct(&req); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	date := dbtime.Today()
	if req.Date != "" {
		if date, err = dbtime.ParseDate(req.Date); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Format tanggal harus YYYY-MM-DD")
		}
	}

	db := ac.DB.WithContext(c.Context())
	student, err := organizeService.AuthorizeStudentAccess(db, guruID, helper.GetRoleFromToken(c), req.StudentID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	rec, err := service.Upsert(db, guruID, student.OrganizeID, student.ID, req.Status, date)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Kehadiran tersimpan", rec)
}

// GET /api/u/attendance/today/:student_id
func (ac *AttendanceController) GetToday(c *fiber.Ctx) error {
	viewerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	studentID, err := helper.ParseUUIDParam(c, "student_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	db := ac.DB.WithContext(c.Context())

	if _, err := organizeService.AuthorizeStudentAccess(db, viewerID, helper.GetRoleFromToken(c), studentID); err != nil {
		return helper.FromFiberError(c, err)
	}
	rec, err := service.Today(db, studentID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Kehadiran hari ini", rec)
}

// GET /api/u/attendance/student/:student_id?from=&to=
func (ac *AttendanceController) GetHistory(c *fiber.Ctx) error {
	viewerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	studentID, err := helper.ParseUUIDParam(c, "student_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	from, to, err := service.ResolveRange(c.Query("from"), c.Query("to"), dbtime.Today())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	db := ac.DB.WithContext(c.Context())

	if _, err := organizeService.AuthorizeStudentAccess(db, viewerID, helper.GetRoleFromToken(c), studentID); err != nil {
		return helper.FromFiberError(c, err)
	}
	records, err := service.History(db, studentID, from, to)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Riwayat kehadiran", dto.AttendanceHistoryResponse{
		From:    from.Format(dbtime.DateLayout),
		To:      to.Format(dbtime.DateLayout),
		Summary: service.SummarizeAttendance(records),
		Records: records,
	})
}
