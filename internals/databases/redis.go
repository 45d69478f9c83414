package database

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"iqro_backend/internals/configs"
)

// Redis bersifat opsional: nil kalau REDIS_ADDR kosong atau tidak bisa di-ping.
var Redis *redis.Client

func ConnectRedis() *redis.Client {
	addr := configs.GetEnv("REDIS_ADDR")
	if addr == "" {
		log.Println("⚠️ REDIS_ADDR kosong, cache dinonaktifkan")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: configs.GetEnv("REDIS_PASSWORD"),
		DB:       configs.GetEnvInt("REDIS_DB", 0),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("⚠️ Redis tidak bisa dihubungi (%s): %v, cache dinonaktifkan", addr, err)
		_ = rdb.Close()
		return nil
	}

	log.Printf("✅ Redis connected (%s)", addr)
	Redis = rdb
	return rdb
}
