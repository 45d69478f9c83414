// internals/helpers/storage/storage.go
package storage

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"iqro_backend/internals/configs"
	"iqro_backend/internals/constants"
)

// Stored: hasil upload. Ref dipakai untuk Delete (object key OSS / public id Cloudinary).
type Stored struct {
	URL         string `json:"url"`
	Ref         string `json:"ref"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

type Uploader interface {
	Driver() string
	Upload(ctx context.Context, r io.Reader, filename, contentType, folder string) (*Stored, error)
	Delete(ctx context.Context, ref string) error
}

// NewFromEnv memilih driver dari MEDIA_DRIVER (cloudinary | oss).
func NewFromEnv() (Uploader, error) {
	driver := strings.ToLower(configs.GetEnv("MEDIA_DRIVER", "cloudinary"))
	switch driver {
	case "oss":
		return NewOSSServiceFromEnv(configs.GetEnv("ALI_OSS_PREFIX", "iqro"))
	case "cloudinary":
		return NewCloudinaryFromEnv()
	default:
		return nil, fmt.Errorf("MEDIA_DRIVER tidak dikenal: %s", driver)
	}
}

// MustFromEnv: kalau driver gagal diinisialisasi, upload dinonaktifkan (nil) dan dicatat di log.
func MustFromEnv() Uploader {
	up, err := NewFromEnv()
	if err != nil {
		log.Printf("⚠️ Media storage nonaktif: %v", err)
		return nil
	}
	log.Printf("✅ Media storage aktif (driver=%s)", up.Driver())
	return up
}

/* =======================================================================
   Validasi file upload
======================================================================= */

func ValidateAudio(fh *multipart.FileHeader) error {
	return validateFile(fh, constants.FileAudio, constants.MaxAudioSize, "audio (mp3/m4a/aac/wav/ogg/webm)")
}

func ValidateImage(fh *multipart.FileHeader) error {
	return validateFile(fh, constants.FileImage, constants.MaxImageSize, "gambar (jpg/png/webp)")
}

func validateFile(fh *multipart.FileHeader, kind constants.FileKind, max int64, label string) error {
	if fh == nil {
		return fiber.NewError(fiber.StatusBadRequest, "File wajib diunggah")
	}
	if fh.Size <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "File kosong")
	}
	if fh.Size > max {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge,
			fmt.Sprintf("Ukuran file melebihi %d MB", max/(1024*1024)))
	}
	if constants.DetectFileTypeFromExt(fh.Filename) != kind {
		return fiber.NewError(fiber.StatusUnsupportedMediaType, "Format file harus "+label)
	}
	return nil
}

// UploadFormFile: validasi sudah dilakukan pemanggil; di sini hanya open + detect content type + upload.
func UploadFormFile(ctx context.Context, up Uploader, fh *multipart.FileHeader, folder string) (*Stored, error) {
	if up == nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "Penyimpanan media belum dikonfigurasi")
	}
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	ct, reader, err := detectContentType(src, fh.Filename)
	if err != nil {
		return nil, err
	}
	st, err := up.Upload(ctx, reader, fh.Filename, ct, folder)
	if err != nil {
		return nil, err
	}
	if st.Size == 0 {
		st.Size = fh.Size
	}
	return st, nil
}

/* =======================================================================
   Misc utils
======================================================================= */

func buildObjectKey(prefix, folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	ts := time.Now().Format("20060102_150405")

	parts := make([]string, 0, 3)
	for _, p := range []string{prefix, folder} {
		if p = strings.Trim(strings.TrimSpace(p), "/"); p != "" {
			parts = append(parts, p)
		}
	}
	parts = append(parts, fmt.Sprintf("%s_%s_%s%s", slugify(base), ts, randHex(3), ext))
	return strings.Join(parts, "/")
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "-", "_", "-").Replace(s)
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, s)
	s = strings.Trim(s, "-")
	if s == "" {
		return "file"
	}
	return s
}

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// detectContentType: dari ekstensi yang dikenal, fallback sniff 512B.
func detectContentType(src multipart.File, filename string) (string, io.Reader, error) {
	if ct := constants.ContentTypeFromExt(filename); ct != "" {
		return ct, src, nil
	}

	head := make([]byte, 512)
	n, _ := io.ReadFull(io.LimitReader(src, 512), head)
	ct := "application/octet-stream"
	if n > 0 {
		ct = http.DetectContentType(head[:n])
	}
	if _, err := src.Seek(0, io.SeekStart); err == nil {
		return ct, src, nil
	}
	rest, err := io.ReadAll(src)
	if err != nil {
		return "", nil, err
	}
	return ct, io.MultiReader(bytes.NewReader(head[:n]), bytes.NewReader(rest)), nil
}
