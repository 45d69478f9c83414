package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGreeting(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, "Selamat Pagi"},
		{11, "Selamat Pagi"},
		{12, "Selamat Siang"},
		{14, "Selamat Siang"},
		{15, "Selamat Sore"},
		{17, "Selamat Sore"},
		{18, "Selamat Malam"},
		{23, "Selamat Malam"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Greeting(tt.hour), "jam %d", tt.hour)
	}
}
