package domain

import "context"

// UploadRequest carries one file handed to the object store. The core
// never inspects Data beyond MIME-type, magic-byte and size gating.
type UploadRequest struct {
	Filename        string
	ContentType     string
	Data            []byte
	DurationSeconds int // voice clips only, client-reported
}

// UploadResult is the durable URL written back onto the record.
type UploadResult struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

type UploadUsecase interface {
	// UploadOwn stores a photo/resume/voice/certification asset for the
	// logged-in interpreter and updates the matching record column.
	UploadOwn(ctx context.Context, kind string, req *UploadRequest) (*UploadResult, error)
}
