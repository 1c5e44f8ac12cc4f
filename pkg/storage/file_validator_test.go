package storage_test

import (
	"testing"

	"dayhub-backend/pkg/storage"

	"github.com/stretchr/testify/assert"
)

var (
	jpegHeader = append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 16)...)
	pngHeader  = append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 16)...)
	pdfHeader  = append([]byte("%PDF-1.7"), make([]byte, 16)...)
	mp3Header  = append([]byte{0x49, 0x44, 0x33, 0x04}, make([]byte, 16)...)
)

func TestParseUploadKind(t *testing.T) {
	for _, valid := range []string{"photo", "resume", "voice", "certification"} {
		kind, ok := storage.ParseUploadKind(valid)
		assert.True(t, ok)
		assert.Equal(t, valid, string(kind))
	}

	_, ok := storage.ParseUploadKind("avatar")
	assert.False(t, ok)
}

func TestValidateFile(t *testing.T) {
	t.Run("Should accept a real JPEG photo", func(t *testing.T) {
		result := storage.ValidateFile(storage.KindPhoto, "headshot.jpg", jpegHeader, "image/jpeg")
		assert.True(t, result.Valid)
		assert.Equal(t, ".jpg", result.Extension)
	})

	t.Run("Should reject an extension not allowed for the kind", func(t *testing.T) {
		result := storage.ValidateFile(storage.KindPhoto, "resume.pdf", pdfHeader, "application/pdf")
		assert.False(t, result.Valid)
		assert.Contains(t, result.Error, "not allowed")
	})

	t.Run("Should reject content that does not match the extension", func(t *testing.T) {
		result := storage.ValidateFile(storage.KindPhoto, "spoofed.jpg", pngHeader, "image/jpeg")
		assert.False(t, result.Valid)
		assert.Contains(t, result.Error, "does not match extension")
	})

	t.Run("Should reject octet-stream for types with known MIME", func(t *testing.T) {
		result := storage.ValidateFile(storage.KindPhoto, "headshot.jpg", jpegHeader, "application/octet-stream")
		assert.False(t, result.Valid)
	})

	t.Run("Should accept a PDF resume", func(t *testing.T) {
		result := storage.ValidateFile(storage.KindResume, "resume.pdf", pdfHeader, "application/pdf")
		assert.True(t, result.Valid)
	})

	t.Run("Should accept an MP3 voice clip", func(t *testing.T) {
		result := storage.ValidateFile(storage.KindVoice, "intro.mp3", mp3Header, "audio/mpeg")
		assert.True(t, result.Valid)
	})

	t.Run("Should reject files without an extension", func(t *testing.T) {
		result := storage.ValidateFile(storage.KindPhoto, "headshot", jpegHeader, "image/jpeg")
		assert.False(t, result.Valid)
		assert.Contains(t, result.Error, "no extension")
	})

	t.Run("Should reject files too small to carry magic bytes", func(t *testing.T) {
		result := storage.ValidateFile(storage.KindPhoto, "tiny.jpg", []byte{0xFF}, "image/jpeg")
		assert.False(t, result.Valid)
	})
}

func TestMaxSizeBytes(t *testing.T) {
	assert.Equal(t, int64(5<<20), storage.KindPhoto.MaxSizeBytes())
	assert.Equal(t, int64(8<<20), storage.KindVoice.MaxSizeBytes())
	assert.Equal(t, int64(10<<20), storage.KindResume.MaxSizeBytes())
	assert.Equal(t, int64(10<<20), storage.KindCertification.MaxSizeBytes())
}

func TestIsImageExtension(t *testing.T) {
	assert.True(t, storage.IsImageExtension(".jpg"))
	assert.True(t, storage.IsImageExtension(".PNG"))
	assert.False(t, storage.IsImageExtension(".pdf"))
}
