package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"
	"github.com/robfig/cron/v3"

	"iqro_backend/internals/configs"
	database "iqro_backend/internals/databases"
	setoranScheduler "iqro_backend/internals/features/hafalan/setoran/scheduler"
	notificationScheduler "iqro_backend/internals/features/home/notifications/scheduler"
	authScheduler "iqro_backend/internals/features/users/auth/scheduler"
	helper "iqro_backend/internals/helpers"
	"iqro_backend/internals/helpers/mailer"
	"iqro_backend/internals/helpers/reporting"
	"iqro_backend/internals/helpers/storage"
	middlewares "iqro_backend/internals/middlewares"
	routes "iqro_backend/internals/route"
	"iqro_backend/internals/seeds"
)

var version = "dev"

func main() {
	configs.LoadEnv()
	reporting.Init(version)
	defer reporting.Flush()

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()

	if configs.GetEnvBool("DB_AUTO_MIGRATE", true) {
		if err := database.AutoMigrate(database.DB); err != nil {
			log.Fatalf("❌ %v", err)
		}
	}

	// `go run . seed` → seed lalu keluar; SEED=true → seed lalu lanjut serve
	if len(os.Args) > 1 && os.Args[1] == "seed" {
		seeds.RunAllSeeds(database.DB)
		database.Close()
		return
	}
	if configs.GetEnvBool("SEED", false) {
		seeds.RunAllSeeds(database.DB)
	}

	database.WarmUpQueries()
	database.ConnectRedis()
	uploader := storage.MustFromEnv()
	mail := mailer.NewFromEnv()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            helper.ErrorHandler,
		BodyLimit:               25 * 1024 * 1024, // audio setoran max 20 MB + field form
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	// 🔎 Request-ID + timeout context per request
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		ctx, cancel := context.WithTimeout(c.Context(), configs.GetEnvDuration("HTTP_REQUEST_TIMEOUT", 15*time.Second))
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	})

	middlewares.SetupMiddlewares(app)

	// ⏱ scheduler setelah DB siap
	crons := []*cron.Cron{
		authScheduler.StartBlacklistCleanupScheduler(database.DB),
		notificationScheduler.StartDailyReminderScheduler(database.DB, mail),
		setoranScheduler.StartMediaReaperScheduler(database.DB, uploader),
	}

	// ✅ Routes
	routes.SetupRoutes(app, database.DB, uploader, mail)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 30 * time.Second
	app.Server().WriteTimeout = 60 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown: stop cron → stop http → tutup pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutdown dimulai...")

	for _, c := range crons {
		if c != nil {
			<-c.Stop().Done()
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("[ERROR] Shutdown server: %v", err)
	}

	if database.Redis != nil {
		_ = database.Redis.Close()
	}
	database.Close()
	log.Println("👋 Server berhenti")
}
