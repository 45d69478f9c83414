package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"iqro_backend/internals/configs"
	"iqro_backend/internals/features/home/notifications/service"
	"iqro_backend/internals/helpers/dbtime"
	"iqro_backend/internals/helpers/mailer"
	"iqro_backend/internals/helpers/reporting"
)

// StartDailyReminderScheduler: default tiap hari 17:00 waktu APP_TIMEZONE.
func StartDailyReminderScheduler(db *gorm.DB, mail mailer.Mailer) *cron.Cron {
	schedule := configs.GetEnv("DAILY_REMINDER_CRON", "0 17 * * *")

	c := cron.New(
		cron.WithLocation(configs.Location()),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		RunDailyReminder(db.WithContext(ctx), mail)
	})
	if err != nil {
		log.Printf("[REMINDER ERROR] Jadwal %q tidak valid: %v", schedule, err)
		return nil
	}
	c.Start()
	log.Printf("✅ Daily reminder scheduler aktif (%s)", schedule)
	return c
}

func RunDailyReminder(db *gorm.DB, mail mailer.Mailer) {
	log.Println("[REMINDER] Mengirim reminder setoran harian...")
	res, err := service.SendDailyReminders(db, mail, dbtime.Now())
	if err != nil {
		log.Printf("[REMINDER ERROR] %v", err)
		reporting.Error("daily reminder gagal", err, nil)
		return
	}
	log.Printf("[REMINDER] %d notifikasi dibuat, %d email terkirim, %d dilewati", res.Created, res.Emailed, res.Skipped)
}
