package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Setoran Al Mulk", "setoran-al-mulk"},
		{"rekaman_01", "rekaman-01"},
		{"???", "file"},
		{"  ", "file"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slugify(tt.in))
	}
}

func TestBuildObjectKey(t *testing.T) {
	key := buildObjectKey("iqro/", "/setoran/", "Surah Al Fatihah.MP3")
	assert.True(t, strings.HasPrefix(key, "iqro/setoran/surah-al-fatihah_"), key)
	assert.True(t, strings.HasSuffix(key, ".mp3"), key)

	noPrefix := buildObjectKey("", "", "a.png")
	assert.False(t, strings.HasPrefix(noPrefix, "/"))
}

func TestValidateAudio(t *testing.T) {
	tests := []struct {
		name string
		fh   *multipart.FileHeader
		code int
	}{
		{"nil", nil, fiber.StatusBadRequest},
		{"empty", &multipart.FileHeader{Filename: "a.mp3", Size: 0}, fiber.StatusBadRequest},
		{"too big", &multipart.FileHeader{Filename: "a.mp3", Size: 21 * 1024 * 1024}, fiber.StatusRequestEntityTooLarge},
		{"wrong type", &multipart.FileHeader{Filename: "a.png", Size: 100}, fiber.StatusUnsupportedMediaType},
		{"ok", &multipart.FileHeader{Filename: "a.m4a", Size: 100}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAudio(tt.fh)
			if tt.code == 0 {
				assert.NoError(t, err)
				return
			}
			var fe *fiber.Error
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.code, fe.Code)
		})
	}
}

func TestValidateImage(t *testing.T) {
	assert.NoError(t, ValidateImage(&multipart.FileHeader{Filename: "a.jpg", Size: 10}))
	assert.Error(t, ValidateImage(&multipart.FileHeader{Filename: "a.mp3", Size: 10}))
	assert.Error(t, ValidateImage(&multipart.FileHeader{Filename: "a.jpg", Size: 6 * 1024 * 1024}))
}

func TestSplitCloudinaryRef(t *testing.T) {
	rt, id := splitCloudinaryRef("video:iqro/setoran/abc_12")
	assert.Equal(t, "video", rt)
	assert.Equal(t, "iqro/setoran/abc_12", id)

	rt, id = splitCloudinaryRef("legacy_id")
	assert.Equal(t, "image", rt)
	assert.Equal(t, "legacy_id", id)

	_, id = splitCloudinaryRef("")
	assert.Empty(t, id)
}

func TestResourceTypeFor(t *testing.T) {
	assert.Equal(t, "video", resourceTypeFor("audio/mpeg"))
	assert.Equal(t, "image", resourceTypeFor("image/webp"))
	assert.Equal(t, "raw", resourceTypeFor("application/pdf"))
}

func TestOSSPublicURL(t *testing.T) {
	assert.Equal(t, "https://bkt.oss-ap-southeast-5.aliyuncs.com/iqro/a.mp3",
		ossPublicURL("", "https://oss-ap-southeast-5.aliyuncs.com", "bkt", "iqro/a.mp3"))
	assert.Equal(t, "https://cdn.iqro.id/iqro/a.mp3",
		ossPublicURL("https://cdn.iqro.id/", "x", "bkt", "iqro/a.mp3"))
	assert.Equal(t, "", ossPublicURL("", "x", "bkt", ""))
}

func TestConvertAvatarToWebP(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 800, 600))
	for x := 0; x < 800; x++ {
		for y := 0; y < 600; y++ {
			src.Set(x, y, color.RGBA{R: uint8(x % 255), G: uint8(y % 255), B: 120, A: 255})
		}
	}
	var in bytes.Buffer
	require.NoError(t, png.Encode(&in, src))

	out, err := ConvertAvatarToWebP(&in)
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, AvatarSize, cfg.Width)
	assert.Equal(t, AvatarSize, cfg.Height)
}

func TestConvertAvatarRejectsGarbage(t *testing.T) {
	_, err := ConvertAvatarToWebP(strings.NewReader("bukan gambar"))
	assert.Error(t, err)
}
