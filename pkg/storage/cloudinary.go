package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ImageStorage defines contract for the avatar storage provider
// (Cloudinary implementation).
type ImageStorage interface {
	// UploadAvatar uploads an avatar image from reader and returns the
	// secure URL and the provider public ID used for later deletion.
	UploadAvatar(ctx context.Context, r io.Reader, fileName string) (url string, publicID string, err error)
	// DeleteAvatar deletes a previously uploaded avatar by its public ID.
	DeleteAvatar(ctx context.Context, publicID string) error
}

type cloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// CloudinaryConfig carries the credentials and upload folder for the
// Cloudinary-backed ImageStorage.
type CloudinaryConfig struct {
	CloudName    string
	APIKey       string
	APISecret    string
	UploadFolder string
}

// NewCloudinaryStorage creates a Cloudinary-backed implementation of ImageStorage.
// When CloudName is set the client is built from the explicit credentials;
// otherwise it falls back to the CLOUDINARY_URL environment variable.
func NewCloudinaryStorage(cfg CloudinaryConfig) (ImageStorage, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if cfg.CloudName != "" {
		cld, err = cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	} else {
		cld, err = cloudinary.New()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}

	// Ensure HTTPS URLs by default.
	cld.Config.URL.Secure = true

	folder := cfg.UploadFolder
	if folder == "" {
		folder = "avatars"
	}

	return &cloudinaryStorage{cld: cld, folder: folder}, nil
}

// UploadAvatar uploads an avatar to Cloudinary and returns the secure URL and public ID.
func (s *cloudinaryStorage) UploadAvatar(ctx context.Context, r io.Reader, fileName string) (string, string, error) {
	if s == nil || s.cld == nil {
		return "", "", fmt.Errorf("cloudinary storage is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	publicID := fmt.Sprintf("%d-%s", time.Now().UnixNano(), strings.TrimSuffix(fileName, filepath.Ext(fileName)))

	params := uploader.UploadParams{
		Folder:         s.folder,
		UseFilename:    api.Bool(true),
		UniqueFilename: api.Bool(true),
		PublicID:       publicID,
		Overwrite:      api.Bool(false),
	}

	// Apply WebP conversion and compression only for images
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".bmp", ".tiff", ".gif", ".webp":
		params.Format = "webp"
		params.Transformation = "q_auto"
	}

	resp, err := s.cld.Upload.Upload(ctx, r, params)
	if err != nil {
		return "", "", fmt.Errorf("failed to upload avatar to cloudinary: %w", err)
	}

	if resp.SecureURL == "" {
		return "", "", fmt.Errorf("cloudinary upload succeeded but secure URL is empty")
	}

	return resp.SecureURL, resp.PublicID, nil
}

// DeleteAvatar deletes an avatar from Cloudinary.
func (s *cloudinaryStorage) DeleteAvatar(ctx context.Context, publicID string) error {
	if s == nil || s.cld == nil {
		return fmt.Errorf("cloudinary storage is not initialized")
	}

	if publicID == "" {
		return nil
	}

	// Invalidate: true helps to clear CDN cache
	params := uploader.DestroyParams{
		PublicID:   publicID,
		Invalidate: api.Bool(true),
	}

	resp, err := s.cld.Upload.Destroy(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to delete avatar from cloudinary: %w", err)
	}

	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy api returned result: %s", resp.Result)
	}

	return nil
}
