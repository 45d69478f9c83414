package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"iqro_backend/internals/configs"
)

const AvatarSize = 512

// ConvertAvatarToWebP: decode jpg/png/webp, crop-fill ke kotak AvatarSize, encode WebP.
func ConvertAvatarToWebP(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("format gambar tidak didukung: %w", err)
	}

	img := imaging.Fill(src, AvatarSize, AvatarSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	quality := float32(configs.GetEnvInt("IMAGE_WEBP_QUALITY", 80))
	if err := webp.Encode(&buf, img, &webp.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}
