package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"iqro_backend/internals/configs"
	"iqro_backend/internals/features/hafalan/setoran/service"
	"iqro_backend/internals/helpers/storage"
)

// StartMediaReaperScheduler: hapus file rekaman milik setoran yang sudah dihapus > 24 jam.
// Tidak jalan kalau media storage nonaktif.
func StartMediaReaperScheduler(db *gorm.DB, up storage.Uploader) *cron.Cron {
	if up == nil {
		log.Println("⚠️ Media reaper tidak dijalankan (storage nonaktif)")
		return nil
	}
	schedule := configs.GetEnv("MEDIA_REAPER_CRON", "15 3 * * *")
	grace := configs.GetEnvDuration("MEDIA_REAPER_GRACE", 24*time.Hour)

	c := cron.New(
		cron.WithLocation(configs.Location()),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		n, err := service.ReapDeletedMedia(ctx, db, up, grace)
		if err != nil {
			log.Printf("[REAPER ERROR] %v", err)
			return
		}
		log.Printf("[REAPER] %d media setoran dibersihkan", n)
	})
	if err != nil {
		log.Printf("[REAPER ERROR] Jadwal %q tidak valid: %v", schedule, err)
		return nil
	}
	c.Start()
	log.Printf("✅ Media reaper scheduler aktif (%s)", schedule)
	return c
}
