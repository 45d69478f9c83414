package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"iqro_backend/internals/features/lembaga/organizes/dto"
	"iqro_backend/internals/features/lembaga/organizes/service"
	helper "iqro_backend/internals/helpers"
	"iqro_backend/internals/helpers/dbtime"
)

type OrganizeController struct {
	DB *gorm.DB
}

func NewOrganizeController(db *gorm.DB) *OrganizeController {
	return &OrganizeController{DB: db}
}

// POST /api/u/organizes
func (oc *OrganizeController) Create(c *fiber.Ctx) error {
	guruID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateOrganizeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if errs := helper.ValidateStruct(&req); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	org, err := service.CreateOrganize(oc.DB.WithContext(c.Context()), guruID, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Kelas berhasil dibuat", org)
}

// GET /api/u/organizes/mine
func (oc *OrganizeController) GetMine(c *fiber.Ctx) error {
	guruID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	db := oc.DB.WithContext(c.Context())

	org, err := service.FindGuruOrganize(db, guruID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	stats, err := service.ComputeStats(db, org.ID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Detail kelas", dto.OrganizeDetailResponse{Organize: org, Stats: stats})
}

// PATCH /api/u/organizes/mine
func (oc *OrganizeController) UpdateMine(c *fiber.Ctx) error {
	guruID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateOrganizeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if errs := helper.ValidateStruct(&req); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	org, err := service.UpdateOrganize(oc.DB.WithContext(c.Context()), guruID, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Kelas berhasil diperbarui", org)
}

// POST /api/u/organizes/mine/regenerate-code
func (oc *OrganizeController) RegenerateCode(c *fiber.Ctx) error {
	guruID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	org, err := service.RegenerateCode(oc.DB.WithContext(c.Context()), guruID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Kode kelas diperbarui", org)
}

// GET /api/u/organizes/mine/students?q=&page=&per_page=
func (oc *OrganizeController) ListStudents(c *fiber.Ctx) error {
	guruID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	db := oc.DB.WithContext(c.Context())

	org, err := service.FindGuruOrganize(db, guruID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p := helper.ResolvePaging(c, 20, 100)
	items, total, err := service.ListStudents(db, org.ID, c.Query("q"), p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "Daftar siswa", items, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// DELETE /api/u/organizes/mine/students/:id
func (oc *OrganizeController) RemoveStudent(c *fiber.Ctx) error {
	guruID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	studentID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	db := oc.DB.WithContext(c.Context())

	org, err := service.FindGuruOrganize(db, guruID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := service.RemoveStudent(db, org.ID, studentID); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Siswa dikeluarkan dari kelas", fiber.Map{"student_id": studentID})
}

// POST /api/u/organizes/join {code}
func (oc *OrganizeController) Join(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.JoinOrganizeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Code = service.NormalizeCode(req.Code)
	if errs := helper.ValidateStruct(&req); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	org, err := service.Join(oc.DB.WithContext(c.Context()), userID, req.Code)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Berhasil bergabung dengan kelas "+org.Name, org)
}

// POST /api/u/organizes/leave
func (oc *OrganizeController) Leave(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := service.Leave(oc.DB.WithContext(c.Context()), userID); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Anda telah keluar dari kelas", nil)
}

// GET /api/u/organizes/mine/report.xlsx
func (oc *OrganizeController) ExportReport(c *fiber.Ctx) error {
	guruID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	db := oc.DB.WithContext(c.Context())

	org, err := service.FindGuruOrganize(db, guruID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rep, err := service.LoadOrganizeReport(db, *org)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	f, err := service.BuildWorkbook(rep)
	if err != nil {
		log.Println("[ERROR] Gagal membuat workbook:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat laporan")
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Println("[ERROR] Gagal menulis workbook:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat laporan")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+service.ReportFilename(*org, dbtime.Now())+`"`)
	return c.Send(buf.Bytes())
}
