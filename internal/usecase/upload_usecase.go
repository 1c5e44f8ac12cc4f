package usecase

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/png"

	"dayhub-backend/internal/domain"
	"dayhub-backend/pkg/apperror"
	"dayhub-backend/pkg/logger"
	"dayhub-backend/pkg/storage"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	thumbnailMaxDim  = 512
	thumbnailQuality = 85
)

// kindColumns maps an upload kind to the interpreter record column it fills.
var kindColumns = map[storage.UploadKind]string{
	storage.KindPhoto:         "photo_url",
	storage.KindResume:        "resume_url",
	storage.KindVoice:         "voice_clip_url",
	storage.KindCertification: "certification_url",
}

type uploadUsecase struct {
	interpreterRepo domain.InterpreterRepository
	store           *storage.ObjectStore
}

func NewUploadUsecase(interpreterRepo domain.InterpreterRepository, store *storage.ObjectStore) domain.UploadUsecase {
	return &uploadUsecase{
		interpreterRepo: interpreterRepo,
		store:           store,
	}
}

func (u *uploadUsecase) UploadOwn(ctx context.Context, kindStr string, req *domain.UploadRequest) (*domain.UploadResult, error) {
	interpreterID, ok := ctx.Value(domain.KeyInterpreterID).(int64)
	if !ok {
		return nil, apperror.Unauthorized("Login required")
	}

	kind, ok := storage.ParseUploadKind(kindStr)
	if !ok {
		return nil, apperror.BadRequest("Unknown upload kind: " + kindStr)
	}

	if u.store == nil {
		return nil, apperror.ServiceUnavailable("File storage is not configured")
	}

	if int64(len(req.Data)) > kind.MaxSizeBytes() {
		return nil, apperror.BadRequest(fmt.Sprintf("File exceeds the %dMB limit", kind.MaxSizeBytes()>>20))
	}
	if len(req.Data) == 0 {
		return nil, apperror.BadRequest("File is empty")
	}

	if kind == storage.KindVoice && req.DurationSeconds > storage.MaxVoiceSeconds {
		return nil, apperror.BadRequest(fmt.Sprintf("Voice clips are limited to %d seconds", storage.MaxVoiceSeconds))
	}

	validation := storage.ValidateFile(kind, req.Filename, req.Data, req.ContentType)
	if !validation.Valid {
		return nil, apperror.BadRequest("File rejected: " + validation.Error)
	}

	ext := strings.ToLower(filepath.Ext(req.Filename))
	key := fmt.Sprintf("interpreters/%d/%s/%s%s", interpreterID, kind, uuid.NewString(), ext)

	url, err := u.store.Put(ctx, key, req.ContentType, req.Data)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", kind, err)
	}

	result := &domain.UploadResult{URL: url}

	if kind == storage.KindPhoto && storage.IsImageExtension(ext) {
		thumbURL, err := u.putThumbnail(ctx, interpreterID, req.Data)
		if err != nil {
			// Thumbnail is best-effort; the full-size photo already landed
			if logger.Log != nil {
				logger.Log.Warn("thumbnail generation failed", "interpreter_id", interpreterID, "error", err)
			}
		} else {
			result.ThumbnailURL = thumbURL
		}
	}

	if err := u.interpreterRepo.SetFileURL(ctx, interpreterID, kindColumns[kind], url); err != nil {
		return nil, err
	}

	return result, nil
}

// putThumbnail decodes the uploaded photo, scales the long edge down to
// thumbnailMaxDim and stores it as JPEG alongside the original.
func (u *uploadUsecase) putThumbnail(ctx context.Context, interpreterID int64, data []byte) (string, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > thumbnailMaxDim || h > thumbnailMaxDim {
		if w >= h {
			h = h * thumbnailMaxDim / w
			w = thumbnailMaxDim
		} else {
			w = w * thumbnailMaxDim / h
			h = thumbnailMaxDim
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: thumbnailQuality}); err != nil {
		return "", fmt.Errorf("encode thumbnail: %w", err)
	}

	key := fmt.Sprintf("interpreters/%d/photo/thumbs/%s.jpg", interpreterID, uuid.NewString())
	return u.store.Put(ctx, key, "image/jpeg", buf.Bytes())
}
