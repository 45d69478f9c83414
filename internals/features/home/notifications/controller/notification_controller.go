package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"iqro_backend/internals/features/home/notifications/dto"
	"iqro_backend/internals/features/home/notifications/service"
	helper "iqro_backend/internals/helpers"
	"iqro_backend/internals/helpers/dbtime"
	"iqro_backend/internals/helpers/mailer"
)

type NotificationController struct {
	DB     *gorm.DB
	Mailer mailer.Mailer
}

func NewNotificationController(db *gorm.DB, mail mailer.Mailer) *NotificationController {
	return &NotificationController{DB: db, Mailer: mail}
}

// 🟢 GET /api/u/notifications
func (ctrl *NotificationController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	list, err := service.List(ctrl.DB.WithContext(c.Context()), userID)
	if err != nil {
		log.Printf("[ERROR] Gagal ambil notifikasi: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil notifikasi")
	}
	return helper.JsonOK(c, "Daftar notifikasi", list)
}

// 🟢 GET /api/u/notifications/unread-count
func (ctrl *NotificationController) UnreadCount(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	n, err := service.UnreadCount(ctrl.DB.WithContext(c.Context()), userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung notifikasi")
	}
	return helper.JsonOK(c, "Jumlah notifikasi belum dibaca", dto.UnreadCountResponse{Unread: n})
}

// 🟢 PATCH /api/u/notifications/:id/read
func (ctrl *NotificationController) MarkRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := service.MarkRead(ctrl.DB.WithContext(c.Context()), userID, id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Notifikasi ditandai sebagai dibaca", fiber.Map{"id": id})
}

// 🟢 PATCH /api/u/notifications/read-all
func (ctrl *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	n, err := service.MarkAllRead(ctrl.DB.WithContext(c.Context()), userID)
	if err != nil {
		log.Printf("[ERROR] Gagal update notifikasi: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update notifikasi")
	}
	return helper.JsonUpdated(c, "Semua notifikasi ditandai sebagai dibaca", fiber.Map{"updated": n})
}

// 🟢 POST /api/a/notifications
func (ctrl *NotificationController) Create(c *fiber.Ctx) error {
	var req dto.CreateNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Permintaan tidak valid")
	}
	if errs := helper.ValidateStruct(&req); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	n, err := service.Create(ctrl.DB.WithContext(c.Context()), req.UserID, req.Title, req.Message, req.Type, req.Data)
	if err != nil {
		log.Printf("[ERROR] Gagal menyimpan notifikasi: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan notifikasi")
	}
	return helper.JsonCreated(c, "Notifikasi berhasil dikirim", n)
}

// 🟢 POST /api/a/notifications/daily-reminder
func (ctrl *NotificationController) TriggerDailyReminder(c *fiber.Ctx) error {
	res, err := service.SendDailyReminders(ctrl.DB.WithContext(c.Context()), ctrl.Mailer, dbtime.Now())
	if err != nil {
		log.Printf("[ERROR] Reminder manual gagal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengirim reminder")
	}
	return helper.JsonOK(c, "Reminder harian dikirim", res)
}
