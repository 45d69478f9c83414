package dto

import "time"

// Timings: lima waktu sholat, format "HH:mm" di zona lokasi.
type Timings struct {
	Subuh   string `json:"subuh"`
	Dzuhur  string `json:"dzuhur"`
	Ashar   string `json:"ashar"`
	Maghrib string `json:"maghrib"`
	Isya    string `json:"isya"`
}

type NextPrayer struct {
	Name             string    `json:"name"`
	Time             string    `json:"time"`
	At               time.Time `json:"at"`
	Tomorrow         bool      `json:"tomorrow"`
	RemainingMinutes int       `json:"remaining_minutes"`
	Remaining        string    `json:"remaining"`
}

type PrayerTimesResponse struct {
	City      string     `json:"city,omitempty"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Date      string     `json:"date"`
	Timezone  string     `json:"timezone"`
	Timings   Timings    `json:"timings"`
	Next      NextPrayer `json:"next"`
}

// DayTimings: bagian yang di-cache (tanpa "next", karena bergantung jam sekarang).
type DayTimings struct {
	Date     string  `json:"date"`
	Timezone string  `json:"timezone"`
	Timings  Timings `json:"timings"`
}
