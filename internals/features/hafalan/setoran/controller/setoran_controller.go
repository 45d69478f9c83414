package controller

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"iqro_backend/internals/features/hafalan/setoran/dto"
	"iqro_backend/internals/features/hafalan/setoran/service"
	organizeService "iqro_backend/internals/features/lembaga/organizes/service"
	leaderboardService "iqro_backend/internals/features/progress/leaderboard/service"
	helper "iqro_backend/internals/helpers"
	"iqro_backend/internals/helpers/metrics"
	"iqro_backend/internals/helpers/storage"
)

type SetoranController struct {
	DB      *gorm.DB
	Storage storage.Uploader
}

func NewSetoranController(db *gorm.DB, up storage.Uploader) *SetoranController {
	return &SetoranController{DB: db, Storage: up}
}

// POST /api/u/setoran  (multipart: file + field, atau JSON dengan file_url)
func (sc *SetoranController) Submit(c *fiber.Ctx) error {
	siswaID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.SubmitSetoranRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if errs := helper.ValidateStruct(&req); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	if !req.AyatRangeValid() {
		return helper.FromFiberError(c, service.ErrAyatRange)
	}

	db := sc.DB.WithContext(c.Context())
	orgID, err := service.RequireOrganize(db, siswaID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var stored *storage.Stored
	driver := ""
	if fh, ferr := c.FormFile("file"); ferr == nil && fh != nil {
		if err := storage.ValidateAudio(fh); err != nil {
			return helper.FromFiberError(c, err)
		}
		stored, err = storage.UploadFormFile(c.Context(), sc.Storage, fh, "setoran/"+siswaID.String())
		if err != nil {
			log.Printf("[ERROR] Upload rekaman setoran gagal: %v", err)
			return helper.FromFiberError(c, err)
		}
		driver = sc.Storage.Driver()
	} else if req.FileURL == "" {
		return helper.FromFiberError(c, service.ErrFileRequired)
	}

	s, err := service.Create(db, siswaID, orgID, req, stored, driver)
	if err != nil {
		if stored != nil {
			sc.deleteMediaAsync(stored.Ref)
		}
		return helper.FromFiberError(c, err)
	}

	metrics.SetoranSubmitted.WithLabelValues(s.Jenis).Inc()
	return helper.JsonCreated(c, "Setoran berhasil dikirim", s)
}

func (sc *SetoranController) deleteMediaAsync(ref string) {
	if sc.Storage == nil || ref == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := sc.Storage.Delete(ctx, ref); err != nil {
			log.Printf("[WARN] Gagal hapus media %s: %v", ref, err)
		}
	}()
}

// GET /api/u/setoran/mine?status=&jenis=&page=&per_page=
func (sc *SetoranController) GetMine(c *fiber.Ctx) error {
	siswaID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	db := sc.DB.WithContext(c.Context())

	p := helper.ResolvePaging(c, 20, 100)
	items, total, err := service.ListMine(db, siswaID, service.ListFilter{
		Status: c.Query("status"),
		Jenis:  c.Query("jenis"),
	}, p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	summary, err := service.SummaryOf(db, siswaID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "Riwayat setoran",
		dto.MySetoranResponse{Summary: summary, Items: items},
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/u/setoran/pending
func (sc *SetoranController) GetPending(c *fiber.Ctx) error {
	guruID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	db := sc.DB.WithContext(c.Context())

	org, err := organizeService.FindGuruOrganize(db, guruID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	items, err := service.ListPending(db, org.ID, 0)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Setoran menunggu penilaian", items)
}

// GET /api/u/setoran/:id
func (sc *SetoranController) GetByID(c *fiber.Ctx) error {
	viewerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	s, err := service.GetForViewer(sc.DB.WithContext(c.Context()), id, viewerID, helper.GetRoleFromToken(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Detail setoran", s)
}

// PATCH /api/u/setoran/:id/grade
func (sc *SetoranController) Grade(c *fiber.Ctx) error {
	guruID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.GradeSetoranRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := helper.ValidateStruct(&req); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	res, err := service.Grade(sc.DB.WithContext(c.Context()), guruID, id, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	metrics.SetoranGraded.WithLabelValues(res.Setoran.Status).Inc()
	if res.PointsAdded > 0 && res.Setoran.OrganizeID != nil {
		leaderboardService.InvalidateOrganize(c.Context(), *res.Setoran.OrganizeID)
	}
	return helper.JsonUpdated(c, "Setoran berhasil dinilai", res)
}

// DELETE /api/u/setoran/:id
func (sc *SetoranController) Delete(c *fiber.Ctx) error {
	siswaID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := service.Delete(sc.DB.WithContext(c.Context()), sc.Storage, siswaID, id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Setoran dihapus", fiber.Map{"id": id})
}
