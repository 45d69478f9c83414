package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("IQRO_TEST_SET", "value")
	t.Setenv("IQRO_TEST_BLANK", "  ")

	assert.Equal(t, "value", GetEnv("IQRO_TEST_SET", "def"))
	assert.Equal(t, "def", GetEnv("IQRO_TEST_BLANK", "def"))
	assert.Equal(t, "def", GetEnv("IQRO_TEST_MISSING", "def"))
	assert.Equal(t, "", GetEnv("IQRO_TEST_MISSING"))
}

func TestTypedEnv(t *testing.T) {
	t.Setenv("IQRO_INT", "42")
	t.Setenv("IQRO_INT_BAD", "x")
	t.Setenv("IQRO_BOOL", "true")
	t.Setenv("IQRO_DUR", "90s")

	assert.Equal(t, 42, GetEnvInt("IQRO_INT", 1))
	assert.Equal(t, 1, GetEnvInt("IQRO_INT_BAD", 1))
	assert.True(t, GetEnvBool("IQRO_BOOL", false))
	assert.False(t, GetEnvBool("IQRO_BOOL_MISSING", false))
	assert.Equal(t, 90*time.Second, GetEnvDuration("IQRO_DUR", time.Second))
	assert.Equal(t, time.Second, GetEnvDuration("IQRO_DUR_MISSING", time.Second))
}

func TestLocationFallback(t *testing.T) {
	old := AppTimezone
	defer func() { AppTimezone = old }()

	AppTimezone = "Not/AZone"
	loc := Location()
	_, off := time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, 7*3600, off)
}
