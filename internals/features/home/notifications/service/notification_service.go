package service

import (
	"fmt"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"iqro_backend/internals/constants"
	"iqro_backend/internals/features/home/notifications/dto"
	"iqro_backend/internals/features/home/notifications/model"
	setoranModel "iqro_backend/internals/features/hafalan/setoran/model"
	userModel "iqro_backend/internals/features/users/user/model"
	userService "iqro_backend/internals/features/users/user/service"
	"iqro_backend/internals/helpers/dbtime"
	"iqro_backend/internals/helpers/mailer"
	"iqro_backend/internals/helpers/metrics"
)

// ListLimit: jumlah notifikasi terbaru yang ditampilkan ke user.
const ListLimit = 20

var ErrNotificationNotFound = fiber.NewError(fiber.StatusNotFound, "Notifikasi tidak ditemukan")

// Create menyimpan satu notifikasi. data boleh nil.
func Create(db *gorm.DB, userID uuid.UUID, title, message, typ string, data map[string]any) (*model.NotificationModel, error) {
	if !constants.IsValidNotificationType(typ) {
		typ = constants.NotifInfo
	}
	n := &model.NotificationModel{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    typ,
	}
	if len(data) > 0 {
		raw, err := sonic.Marshal(data)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "encode data notifikasi")
		}
		n.Data = datatypes.JSON(raw)
	}
	if err := db.Create(n).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "simpan notifikasi")
	}
	return n, nil
}

func List(db *gorm.DB, userID uuid.UUID) ([]model.NotificationModel, error) {
	var list []model.NotificationModel
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(ListLimit).
		Find(&list).Error
	return list, err
}

func UnreadCount(db *gorm.DB, userID uuid.UUID) (int64, error) {
	var n int64
	err := db.Model(&model.NotificationModel{}).
		Where("user_id = ? AND is_read = false", userID).
		Count(&n).Error
	return n, err
}

// MarkRead hanya berlaku untuk notifikasi milik user sendiri.
func MarkRead(db *gorm.DB, userID, id uuid.UUID) error {
	res := db.Model(&model.NotificationModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func MarkAllRead(db *gorm.DB, userID uuid.UUID) (int64, error) {
	res := db.Model(&model.NotificationModel{}).
		Where("user_id = ? AND is_read = false", userID).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

/* =======================================================
   Reminder setoran harian
   ======================================================= */

// studentsNeedingReminder: siswa aktif yang punya kelas, belum setor hari ini,
// dan belum menerima reminder hari ini.
func studentsNeedingReminder(db *gorm.DB, day time.Time) ([]userModel.UserModel, error) {
	start := dbtime.StartOfDay(day)
	end := start.Add(24 * time.Hour)

	setoranToday := db.Model(&setoranModel.SetoranModel{}).
		Select("1").
		Where("setoran.siswa_id = users.id AND setoran.tanggal = ?", start.Format(dbtime.DateLayout))

	remindedToday := db.Model(&model.NotificationModel{}).
		Select("1").
		Where("notifications.user_id = users.id AND notifications.type = ? AND notifications.title = ?",
			constants.NotifReminder, constants.DailyReminderTitle).
		Where("notifications.created_at >= ? AND notifications.created_at < ?", start, end)

	var students []userModel.UserModel
	err := db.Model(&userModel.UserModel{}).
		Where("role = ? AND is_active = true AND organize_id IS NOT NULL", constants.RoleSiswa).
		Where("NOT EXISTS (?)", setoranToday).
		Where("NOT EXISTS (?)", remindedToday).
		Find(&students).Error
	return students, err
}

// SendDailyReminders membuat reminder untuk siswa yang belum setor hari ini.
// Kalau mail tidak nil, orang tua yang terhubung juga dapat salinan email.
func SendDailyReminders(db *gorm.DB, mail mailer.Mailer, now time.Time) (dto.ReminderResult, error) {
	var res dto.ReminderResult

	students, err := studentsNeedingReminder(db, now)
	if err != nil {
		return res, pkgerrors.Wrap(err, "cari siswa untuk reminder")
	}
	if len(students) == 0 {
		return res, nil
	}

	notifs := make([]model.NotificationModel, 0, len(students))
	ids := make([]uuid.UUID, 0, len(students))
	for _, s := range students {
		notifs = append(notifs, model.NotificationModel{
			UserID:  s.ID,
			Title:   constants.DailyReminderTitle,
			Message: constants.DailyReminderMessage,
			Type:    constants.NotifReminder,
		})
		ids = append(ids, s.ID)
	}
	if err := db.CreateInBatches(&notifs, 500).Error; err != nil {
		return res, pkgerrors.Wrap(err, "simpan reminder")
	}
	res.Created = len(notifs)
	metrics.RemindersSent.Add(float64(res.Created))

	if mail == nil {
		return res, nil
	}

	parents, err := userService.ParentsOf(db, ids)
	if err != nil {
		log.Printf("[REMINDER WARN] Gagal ambil orang tua: %v", err)
		return res, nil
	}
	for _, s := range students {
		for _, p := range parents[s.ID] {
			if p.Email == "" {
				res.Skipped++
				continue
			}
			if err := mail.Send(reminderEmail(s, p)); err != nil {
				log.Printf("[REMINDER WARN] Email ke %s gagal: %v", p.Email, err)
				res.Skipped++
				continue
			}
			res.Emailed++
		}
	}
	return res, nil
}

func reminderEmail(child, parent userModel.UserModel) mailer.Message {
	return mailer.Message{
		ToName:  parent.Name,
		ToEmail: parent.Email,
		Subject: constants.DailyReminderTitle,
		Text:    fmt.Sprintf("%s belum mengirim setoran hari ini. %s", child.Name, constants.DailyReminderMessage),
	}
}
