package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"iqro_backend/internals/constants"
	"iqro_backend/internals/features/users/user/dto"
	"iqro_backend/internals/features/users/user/model"
	helper "iqro_backend/internals/helpers"
)

type ParentChildrenController struct {
	DB *gorm.DB
}

func NewParentChildrenController(db *gorm.DB) *ParentChildrenController {
	return &ParentChildrenController{DB: db}
}

// POST /api/u/children {email}
func (pc *ParentChildrenController) LinkChild(c *fiber.Ctx) error {
	parentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.LinkChildRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if errs := helper.ValidateStruct(&req); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	db := pc.DB.WithContext(c.Context())
	var child model.UserModel
	if err := db.Where("LOWER(email) = ?", req.Email).First(&child).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Siswa dengan email tersebut tidak ditemukan")
		}
		return helper.FromFiberError(c, err)
	}
	if child.Role != constants.RoleSiswa {
		return helper.JsonError(c, fiber.StatusBadRequest, "Akun tersebut bukan siswa")
	}

	link := model.ParentChildModel{ParentID: parentID, ChildID: child.ID}
	if err := db.Create(&link).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Anak sudah ditautkan")
		}
		log.Println("[ERROR] Gagal tautkan anak:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menautkan anak")
	}
	return helper.JsonCreated(c, "Anak berhasil ditautkan", dto.NewChildResponse(link, child))
}

// GET /api/u/children
func (pc *ParentChildrenController) ListChildren(c *fiber.Ctx) error {
	parentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	db := pc.DB.WithContext(c.Context())

	var links []model.ParentChildModel
	if err := db.Where("parent_id = ?", parentID).Order("created_at ASC").Find(&links).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	ids := make([]uuid.UUID, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.ChildID)
	}

	byID := map[uuid.UUID]model.UserModel{}
	if len(ids) > 0 {
		var children []model.UserModel
		if err := db.Where("id IN ?", ids).Find(&children).Error; err != nil {
			return helper.FromFiberError(c, err)
		}
		for _, ch := range children {
			byID[ch.ID] = ch
		}
	}

	out := make([]dto.ChildResponse, 0, len(links))
	for _, l := range links {
		if ch, ok := byID[l.ChildID]; ok {
			out = append(out, dto.NewChildResponse(l, ch))
		}
	}
	return helper.JsonList(c, "Daftar anak", out, nil)
}

// DELETE /api/u/children/:id (id = child id)
func (pc *ParentChildrenController) UnlinkChild(c *fiber.Ctx) error {
	parentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	childID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	res := pc.DB.WithContext(c.Context()).
		Where("parent_id = ? AND child_id = ?", parentID, childID).
		Delete(&model.ParentChildModel{})
	if res.Error != nil {
		return helper.FromFiberError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Tautan anak tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Tautan anak dihapus", fiber.Map{"child_id": childID})
}
