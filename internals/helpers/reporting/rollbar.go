package reporting

import (
	"log"
	"os"

	"github.com/rollbar/rollbar-go"
	rollbarErrors "github.com/rollbar/rollbar-go/errors"

	"iqro_backend/internals/configs"
)

var enabled bool

// Init mengaktifkan Rollbar kalau ROLLBAR_TOKEN diset.
func Init(codeVersion string) {
	token := configs.GetEnv("ROLLBAR_TOKEN")
	if token == "" {
		log.Println("⚠️ ROLLBAR_TOKEN kosong, error reporting hanya ke log")
		rollbar.SetEnabled(false)
		return
	}

	host, _ := os.Hostname()
	rollbar.SetToken(token)
	rollbar.SetEnvironment(configs.GetEnv("APP_ENV", "development"))
	rollbar.SetServerHost(host)
	rollbar.SetCodeVersion(codeVersion)
	rollbar.SetStackTracer(rollbarErrors.StackTracer)
	rollbar.SetEnabled(true)
	enabled = true
	log.Println("✅ Rollbar aktif")
}

func Enabled() bool { return enabled }

// Error mencatat error ke log dan Rollbar (kalau aktif).
func Error(msg string, err error, extras map[string]interface{}) {
	log.Printf("[ERROR] %s: %+v", msg, err)
	if !enabled {
		return
	}
	if extras == nil {
		extras = map[string]interface{}{}
	}
	extras["message"] = msg
	rollbar.Error(err, extras)
}

func Critical(msg string, v interface{}, extras map[string]interface{}) {
	log.Printf("[CRITICAL] %s: %v", msg, v)
	if !enabled {
		return
	}
	if extras == nil {
		extras = map[string]interface{}{}
	}
	extras["message"] = msg
	rollbar.Critical(v, extras)
}

// Flush menunggu antrian Rollbar terkirim (dipanggil saat shutdown).
func Flush() {
	if enabled {
		rollbar.Close()
	}
}
