package service

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	pkgerrors "github.com/pkg/errors"

	"iqro_backend/internals/configs"
	"iqro_backend/internals/features/home/prayer/dto"
)

const defaultAPIBase = "https://api.aladhan.com"

// Client memanggil API jadwal sholat publik (format aladhan).
type Client struct {
	BaseURL string
	Method  int
	Timeout time.Duration
}

func NewClientFromEnv() *Client {
	return &Client{
		BaseURL: strings.TrimRight(configs.GetEnv("PRAYER_API_BASE", defaultAPIBase), "/"),
		Method:  configs.GetEnvInt("PRAYER_METHOD", 2),
		Timeout: configs.GetEnvDuration("PRAYER_API_TIMEOUT", 8*time.Second),
	}
}

type timingsEnvelope struct {
	Code int `json:"code"`
	Data *struct {
		Timings map[string]string `json:"timings"`
		Meta    struct {
			Timezone string `json:"timezone"`
		} `json:"meta"`
	} `json:"data"`
}

// timingsURL: day kosong = "hari ini" versi API (zona lokasi), selain itu /v1/timings/DD-MM-YYYY.
func (c *Client) timingsURL(lat, lng float64, day time.Time) string {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("method", strconv.Itoa(c.Method))
	path := "/v1/timings"
	if !day.IsZero() {
		path += "/" + day.Format("02-01-2006")
	}
	return c.BaseURL + path + "?" + q.Encode()
}

// Fetch mengambil jadwal untuk koordinat pada tanggal day (zero = hari ini di lokasi).
// Timezone kosong kalau API tidak mengirim meta.
func (c *Client) Fetch(lat, lng float64, day time.Time) (dto.Timings, string, error) {
	agent := fiber.Get(c.timingsURL(lat, lng, day)).
		Timeout(c.Timeout).
		JSONDecoder(sonic.Unmarshal)

	var env timingsEnvelope
	code, _, errs := agent.Struct(&env)
	if len(errs) > 0 {
		return dto.Timings{}, "", pkgerrors.Wrap(errs[0], "request prayer api")
	}
	if code != fiber.StatusOK || env.Data == nil {
		return dto.Timings{}, "", fmt.Errorf("prayer api status %d", code)
	}

	t := dto.Timings{
		Subuh:   clock(env.Data.Timings["Fajr"]),
		Dzuhur:  clock(env.Data.Timings["Dhuhr"]),
		Ashar:   clock(env.Data.Timings["Asr"]),
		Maghrib: clock(env.Data.Timings["Maghrib"]),
		Isya:    clock(env.Data.Timings["Isha"]),
	}
	for _, v := range []string{t.Subuh, t.Dzuhur, t.Ashar, t.Maghrib, t.Isya} {
		if v == "" {
			return dto.Timings{}, "", fmt.Errorf("prayer api: jadwal tidak lengkap")
		}
	}
	return t, env.Data.Meta.Timezone, nil
}

// "04:31 (WIB)" -> "04:31"
func clock(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ' '); i > 0 {
		s = s[:i]
	}
	return s
}
