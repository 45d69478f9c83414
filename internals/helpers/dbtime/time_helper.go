// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"time"

	"iqro_backend/internals/configs"
)

const DateLayout = "2006-01-02"

// Now di zona waktu aplikasi (APP_TIMEZONE, default Asia/Jakarta)
func Now() time.Time {
	return time.Now().In(configs.Location())
}

// StartOfDay: 00:00 di zona t
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateOnly: tanggal kalender t sebagai time UTC tengah malam, cocok untuk kolom DATE
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today: tanggal hari ini (zona aplikasi) untuk kolom DATE
func Today() time.Time {
	return DateOnly(Now())
}

// ParseDate "YYYY-MM-DD" -> DateOnly
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(t), nil
}
