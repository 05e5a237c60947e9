package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/baseapp/internal/models"
	"gorm.io/gorm"
)

const DefaultShareLinkTTL = 15 * time.Minute

var ErrSharingUnavailable = errors.New("upload sharing is not configured")

// Presigner issues a time-limited download URL for a stored object.
type Presigner interface {
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type UploadFinder interface {
	Find(ctx context.Context, userID string, id uint) (models.Upload, error)
}

type ShareLink struct {
	URL         string    `json:"url"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type UploadShareService struct {
	uploads   UploadFinder
	presigner Presigner
	ttl       time.Duration
	now       func() time.Time
}

// NewUploadShareService accepts a nil presigner; ShareLink then reports
// ErrSharingUnavailable.
func NewUploadShareService(uploads UploadFinder, presigner Presigner, ttl time.Duration) *UploadShareService {
	if ttl <= 0 {
		ttl = DefaultShareLinkTTL
	}
	return &UploadShareService{uploads: uploads, presigner: presigner, ttl: ttl, now: time.Now}
}

// ShareLink resolves the upload identified by owner and id to a presigned URL.
func (service *UploadShareService) ShareLink(ctx context.Context, userID string, uploadID uint) (ShareLink, error) {
	upload, err := service.uploads.Find(ctx, userID, uploadID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ShareLink{}, ErrResourceNotFound
	}
	if err != nil {
		return ShareLink{}, fmt.Errorf("load upload: %w", err)
	}
	if service.presigner == nil {
		return ShareLink{}, ErrSharingUnavailable
	}

	url, err := service.presigner.PresignGet(ctx, upload.StorageKey, service.ttl)
	if err != nil {
		return ShareLink{}, fmt.Errorf("presign upload: %w", err)
	}
	return ShareLink{
		URL:         url,
		FileName:    upload.FileName,
		ContentType: upload.ContentType,
		ExpiresAt:   service.now().Add(service.ttl).UTC(),
	}, nil
}
