package constants

import (
	"path/filepath"
	"strings"
)

type FileKind int

const (
	FileUnknown FileKind = iota
	FileAudio
	FileImage
)

const (
	MaxAudioSize = int64(20 * 1024 * 1024)
	MaxImageSize = int64(5 * 1024 * 1024)
)

var audioContentTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".webm": "audio/webm",
}

var imageContentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

func DetectFileTypeFromExt(filename string) FileKind {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := audioContentTypes[ext]; ok {
		return FileAudio
	}
	if _, ok := imageContentTypes[ext]; ok {
		return FileImage
	}
	return FileUnknown
}

// ContentTypeFromExt mengembalikan MIME dari ekstensi yang dikenal, "" kalau tidak dikenal.
func ContentTypeFromExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ct, ok := audioContentTypes[ext]; ok {
		return ct
	}
	return imageContentTypes[ext]
}
