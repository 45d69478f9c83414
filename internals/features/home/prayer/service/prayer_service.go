package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"

	"iqro_backend/internals/configs"
	"iqro_backend/internals/features/home/prayer/dto"
	database "iqro_backend/internals/databases"
	"iqro_backend/internals/helpers/cache"
	"iqro_backend/internals/helpers/dbtime"
)

var (
	ErrInvalidCoordinates = fiber.NewError(fiber.StatusBadRequest, "latitude harus -90..90 dan longitude -180..180")
	ErrUpstream           = fiber.NewError(fiber.StatusBadGateway, "Gagal mengambil jadwal sholat")
)

type slot struct {
	name  string
	value string
}

func slots(t dto.Timings) []slot {
	return []slot{
		{"Subuh", t.Subuh},
		{"Dzuhur", t.Dzuhur},
		{"Ashar", t.Ashar},
		{"Maghrib", t.Maghrib},
		{"Isya", t.Isya},
	}
}

func ValidateCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}

func atClock(day time.Time, hhmm string) (time.Time, error) {
	c, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, c.Hour(), c.Minute(), 0, 0, day.Location()), nil
}

// NextPrayer: waktu pertama yang > now; kalau semua lewat, Subuh besok.
// now harus sudah berada di zona lokasi jadwal.
func NextPrayer(t dto.Timings, now time.Time) (dto.NextPrayer, error) {
	for _, s := range slots(t) {
		at, err := atClock(now, s.value)
		if err != nil {
			return dto.NextPrayer{}, fmt.Errorf("jam %s tidak valid: %q", s.name, s.value)
		}
		if at.After(now) {
			return nextOf(s, at, now, false), nil
		}
	}

	first := slots(t)[0]
	at, err := atClock(now.AddDate(0, 0, 1), first.value)
	if err != nil {
		return dto.NextPrayer{}, fmt.Errorf("jam %s tidak valid: %q", first.name, first.value)
	}
	return nextOf(first, at, now, true), nil
}

func nextOf(s slot, at, now time.Time, tomorrow bool) dto.NextPrayer {
	left := at.Sub(now)
	mins := int(math.Ceil(left.Minutes()))
	return dto.NextPrayer{
		Name:             s.name,
		Time:             s.value,
		At:               at,
		Tomorrow:         tomorrow,
		RemainingMinutes: mins,
		Remaining:        FormatRemaining(mins),
	}
}

// FormatRemaining: "2 jam 5 menit", "40 menit".
func FormatRemaining(mins int) string {
	if mins < 0 {
		mins = 0
	}
	h, m := mins/60, mins%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%d jam %d menit", h, m)
	case h > 0:
		return fmt.Sprintf("%d jam", h)
	default:
		return fmt.Sprintf("%d menit", m)
	}
}

// CacheKey: koordinat dibulatkan 2 desimal (~1 km) + tanggal.
func CacheKey(lat, lng float64, date string) string {
	return fmt.Sprintf("%.2f:%.2f:%s", lat, lng, date)
}

func resolveLocation(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
		log.Printf("[WARN] Timezone %q tidak dikenal, pakai APP_TIMEZONE", tz)
	}
	return configs.Location()
}

func untilEndOfDay(now time.Time) time.Duration {
	return dbtime.StartOfDay(now).AddDate(0, 0, 1).Sub(now)
}

// LocalDay: tanggal kalender di zona lokasi dan sisa waktu sampai tengah malam lokasi.
func LocalDay(now time.Time, loc *time.Location) (time.Time, time.Duration) {
	local := now.In(loc)
	return dbtime.StartOfDay(local), untilEndOfDay(local)
}

// TimezoneKey: zona waktu per koordinat, jarang berubah jadi TTL-nya panjang.
func TimezoneKey(lat, lng float64) string {
	return fmt.Sprintf("tz:%.2f:%.2f", lat, lng)
}

const timezoneTTL = 30 * 24 * time.Hour

// DayCache: bagian cache.JSONCache yang dipakai service.
type DayCache interface {
	Get(ctx context.Context, k string, dst any) bool
	Set(ctx context.Context, k string, v any, ttl time.Duration)
}

type Service struct {
	Client *Client
	Cache  DayCache
	Now    func() time.Time
}

func NewService(client *Client) *Service {
	return &Service{
		Client: client,
		Cache:  cache.New(database.Redis, "prayer"),
		Now:    time.Now,
	}
}

func (s *Service) Lookup(ctx context.Context, lat, lng float64, city string) (*dto.PrayerTimesResponse, error) {
	if err := ValidateCoordinates(lat, lng); err != nil {
		return nil, err
	}

	day, err := s.dayTimings(ctx, lat, lng)
	if err != nil {
		return nil, err
	}

	now := s.Now().In(resolveLocation(day.Timezone))
	next, err := NextPrayer(day.Timings, now)
	if err != nil {
		log.Printf("[ERROR] Jadwal sholat tidak bisa diproses: %v", err)
		return nil, ErrUpstream
	}

	return &dto.PrayerTimesResponse{
		City:      city,
		Latitude:  lat,
		Longitude: lng,
		Date:      day.Date,
		Timezone:  day.Timezone,
		Timings:   day.Timings,
		Next:      next,
	}, nil
}

// dayTimings memakai cache per tanggal lokasi. Zona lokasi diketahui dari lookup sebelumnya;
// kalau belum ada, API diminta "hari ini" lalu kunci dihitung dari meta.timezone.
func (s *Service) dayTimings(ctx context.Context, lat, lng float64) (dto.DayTimings, error) {
	var day dto.DayTimings
	var request time.Time

	var tz string
	if s.Cache.Get(ctx, TimezoneKey(lat, lng), &tz) && tz != "" {
		request, _ = LocalDay(s.Now(), resolveLocation(tz))
		if s.Cache.Get(ctx, CacheKey(lat, lng, request.Format(dbtime.DateLayout)), &day) {
			return day, nil
		}
	}

	timings, tz, err := s.Client.Fetch(lat, lng, request)
	if err != nil {
		log.Printf("[ERROR] Prayer API (%.4f,%.4f): %v", lat, lng, err)
		return day, ErrUpstream
	}
	loc := resolveLocation(tz)
	date, ttl := LocalDay(s.Now(), loc)
	if !request.IsZero() {
		date = request
	}
	day = dto.DayTimings{
		Date:     date.Format(dbtime.DateLayout),
		Timezone: loc.String(),
		Timings:  timings,
	}
	s.Cache.Set(ctx, CacheKey(lat, lng, day.Date), day, ttl)
	s.Cache.Set(ctx, TimezoneKey(lat, lng), loc.String(), timezoneTTL)
	return day, nil
}
