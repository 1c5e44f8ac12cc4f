package storage

import (
	"bytes"
	"path/filepath"
	"strings"
)

// UploadKind identifies which interpreter asset is being uploaded.
type UploadKind string

const (
	KindPhoto         UploadKind = "photo"
	KindResume        UploadKind = "resume"
	KindVoice         UploadKind = "voice"
	KindCertification UploadKind = "certification"
)

// ParseUploadKind validates a kind string from the URL.
func ParseUploadKind(s string) (UploadKind, bool) {
	switch UploadKind(s) {
	case KindPhoto, KindResume, KindVoice, KindCertification:
		return UploadKind(s), true
	}
	return "", false
}

// MaxSizeBytes returns the per-kind upload size cap.
func (k UploadKind) MaxSizeBytes() int64 {
	switch k {
	case KindPhoto:
		return 5 << 20
	case KindVoice:
		return 8 << 20
	default:
		return 10 << 20
	}
}

// MaxVoiceSeconds caps voice clip duration as reported by the client.
const MaxVoiceSeconds = 45

// FileValidationResult contains the result of file validation
type FileValidationResult struct {
	Valid        bool   // Whether the file passed all validation checks
	Extension    string // Detected file extension
	DetectedMIME string // Detected MIME type
	Error        string // Error message if validation failed
}

// Magic byte signatures for allowed file types.
// Maps lowercase extension to possible magic byte prefixes.
var magicBytes = map[string][][]byte{
	".jpg":  {{0xFF, 0xD8, 0xFF}},
	".jpeg": {{0xFF, 0xD8, 0xFF}},
	".png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	".gif":  {{0x47, 0x49, 0x46, 0x38, 0x37, 0x61}, {0x47, 0x49, 0x46, 0x38, 0x39, 0x61}}, // GIF87a & GIF89a
	".webp": {{0x52, 0x49, 0x46, 0x46}},                                                   // RIFF header
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},                                                   // %PDF
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}},                           // OLE Compound Document
	".docx": {{0x50, 0x4B, 0x03, 0x04}},                                                   // ZIP (PK..)
	".mp3":  {{0x49, 0x44, 0x33}, {0xFF, 0xFB}, {0xFF, 0xF3}, {0xFF, 0xF2}},               // ID3 or MPEG frame sync
	".wav":  {{0x52, 0x49, 0x46, 0x46}},                                                   // RIFF header
	".m4a":  {},                                                                           // ftyp box at offset 4 - rely on MIME detection
	".ogg":  {{0x4F, 0x67, 0x67, 0x53}},                                                   // OggS
	".webm": {{0x1A, 0x45, 0xDF, 0xA3}},                                                   // EBML
}

// Per-kind extension whitelists (strict)
var kindExtensions = map[UploadKind]map[string]bool{
	KindPhoto: {
		".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
	},
	KindResume: {
		".pdf": true, ".doc": true, ".docx": true,
	},
	KindCertification: {
		".pdf": true, ".doc": true, ".docx": true, ".jpg": true, ".jpeg": true, ".png": true,
	},
	KindVoice: {
		".mp3": true, ".wav": true, ".m4a": true, ".ogg": true, ".webm": true,
	},
}

// Strict MIME types per kind - DO NOT include application/octet-stream
var kindMIMETypes = map[UploadKind]map[string]bool{
	KindPhoto: {
		"image/jpeg": true, "image/png": true, "image/gif": true, "image/webp": true,
	},
	KindResume: {
		"application/pdf":    true,
		"application/msword": true,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
		"application/zip": true, // DOCX detection fallback
	},
	KindCertification: {
		"application/pdf":    true,
		"application/msword": true,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
		"application/zip": true,
		"image/jpeg":      true,
		"image/png":       true,
	},
	KindVoice: {
		"audio/mpeg": true, "audio/mp3": true, "audio/wav": true, "audio/x-wav": true,
		"audio/wave": true, "audio/mp4": true, "audio/x-m4a": true, "audio/ogg": true,
		"audio/webm": true, "video/webm": true,
	},
}

// ValidateFile performs 3-layer file validation for an upload kind:
// 1. Extension whitelist check
// 2. Magic byte verification (content matches extension)
// 3. MIME type whitelist (application/octet-stream REJECTED)
func ValidateFile(kind UploadKind, filename string, data []byte, detectedMIME string) FileValidationResult {
	result := FileValidationResult{
		DetectedMIME: detectedMIME,
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		result.Error = "file has no extension"
		return result
	}
	result.Extension = ext

	// Layer 1: Extension whitelist
	allowed, ok := kindExtensions[kind]
	if !ok || !allowed[ext] {
		result.Error = "file extension not allowed for " + string(kind) + ": " + ext
		return result
	}

	// Layer 2: Magic byte validation
	if !validateMagicBytes(ext, data) {
		result.Error = "file content does not match extension (potential file spoofing detected)"
		return result
	}

	// Layer 3: MIME type whitelist
	if detectedMIME == "application/octet-stream" {
		// DOC/DOCX and some audio containers are detected as octet-stream;
		// the magic-byte layer has already vetted those
		switch ext {
		case ".doc", ".docx", ".m4a", ".webm":
		default:
			result.Error = "binary files not allowed; file type could not be determined"
			return result
		}
	} else if !kindMIMETypes[kind][detectedMIME] {
		result.Error = "MIME type not allowed: " + detectedMIME
		return result
	}

	result.Valid = true
	return result
}

// validateMagicBytes checks if file content starts with expected magic bytes
func validateMagicBytes(ext string, data []byte) bool {
	if len(data) < 4 {
		return false // File too small to validate
	}

	signatures, ok := magicBytes[ext]
	if !ok {
		return false // Unknown extension
	}

	// Empty signatures array = no stable prefix for this type
	if len(signatures) == 0 {
		return true
	}

	for _, sig := range signatures {
		if len(data) >= len(sig) && bytes.HasPrefix(data, sig) {
			return true
		}
	}

	return false
}

// IsImageExtension checks if the extension is an image type
func IsImageExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return true
	}
	return false
}
