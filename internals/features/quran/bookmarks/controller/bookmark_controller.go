package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"iqro_backend/internals/features/quran/bookmarks/dto"
	"iqro_backend/internals/features/quran/bookmarks/service"
	helper "iqro_backend/internals/helpers"
)

type BookmarkController struct {
	DB *gorm.DB
}

func NewBookmarkController(db *gorm.DB) *BookmarkController {
	return &BookmarkController{DB: db}
}

// GET /api/u/quran/bookmarks
func (bc *BookmarkController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	list, err := service.List(bc.DB.WithContext(c.Context()), userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Daftar bookmark", list)
}

// POST /api/u/quran/bookmarks
func (bc *BookmarkController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CreateBookmarkRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if errs := helper.ValidateStruct(&req); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	b, err := service.Create(bc.DB.WithContext(c.Context()), userID, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Bookmark disimpan", b)
}

// PATCH /api/u/quran/bookmarks/:id
func (bc *BookmarkController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateBookmarkRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if errs := helper.ValidateStruct(&req); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	b, err := service.Update(bc.DB.WithContext(c.Context()), userID, id, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Bookmark diperbarui", b)
}

// DELETE /api/u/quran/bookmarks/:id
func (bc *BookmarkController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := service.Delete(bc.DB.WithContext(c.Context()), userID, id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Bookmark dihapus", fiber.Map{"id": id})
}
