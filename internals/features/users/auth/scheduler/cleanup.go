package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"iqro_backend/internals/configs"
	authRepo "iqro_backend/internals/features/users/auth/repository"
)

// StartBlacklistCleanupScheduler: tiap hari 02:30 hapus token_blacklist yang sudah lewat
// TOKEN_BLACKLIST_TTL_DAYS dan refresh token yang kadaluarsa.
func StartBlacklistCleanupScheduler(db *gorm.DB) *cron.Cron {
	ttlDays := configs.GetEnvInt("TOKEN_BLACKLIST_TTL_DAYS", 7)
	schedule := configs.GetEnv("TOKEN_CLEANUP_CRON", "30 2 * * *")

	c := cron.New(
		cron.WithLocation(configs.Location()),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		RunTokenCleanup(db.WithContext(ctx), time.Duration(ttlDays)*24*time.Hour)
	})
	if err != nil {
		log.Printf("[CLEANUP ERROR] Jadwal %q tidak valid: %v", schedule, err)
		return nil
	}
	c.Start()
	log.Printf("✅ Token cleanup scheduler aktif (%s, retensi %d hari)", schedule, ttlDays)
	return c
}

func RunTokenCleanup(db *gorm.DB, retention time.Duration) {
	log.Println("[CLEANUP] Menjalankan pembersihan token_blacklist...")

	if n, err := authRepo.CleanupExpiredBlacklist(db, retention); err != nil {
		log.Printf("[CLEANUP ERROR] Gagal hapus token blacklist: %v", err)
	} else {
		log.Printf("[CLEANUP] %d token blacklist kadaluarsa dihapus", n)
	}

	if n, err := authRepo.CleanupExpiredRefreshTokens(db); err != nil {
		log.Printf("[CLEANUP ERROR] Gagal hapus refresh token: %v", err)
	} else if n > 0 {
		log.Printf("[CLEANUP] %d refresh token kadaluarsa dihapus", n)
	}
}
