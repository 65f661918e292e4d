package storage

import (
	"bytes"
	"context"
	"errors"
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"hrmintake/internal/domain/intake"
	"hrmintake/internal/platform/config"
)

type disabledUploader struct{}

func (disabledUploader) Upload(ctx context.Context, data []byte) (string, error) {
	return "", errors.New("storage service credentials are not configured")
}

type cloudinaryUploader struct {
	client *cloudinary.Cloudinary
}

// New builds the Cloudinary uploader. Missing credentials do not stop the
// process; every upload then fails with a clear error, matching how the
// service has always behaved when the environment is incomplete.
func New(cfg config.Config) (intake.Uploader, error) {
	if !cfg.CloudinaryConfigured() {
		slog.Warn("cloudinary credentials missing, attachment uploads will fail",
			"cloudName", cfg.CloudinaryCloudName != "",
			"apiKey", cfg.CloudinaryAPIKey != "",
			"apiSecret", cfg.CloudinaryAPISecret != "")
		return disabledUploader{}, nil
	}

	client, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, err
	}
	slog.Info("cloudinary uploader configured", "cloudName", cfg.CloudinaryCloudName)
	return &cloudinaryUploader{client: client}, nil
}

func (u *cloudinaryUploader) Upload(ctx context.Context, data []byte) (string, error) {
	result, err := u.client.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		ResourceType: "auto",
	})
	if err != nil {
		return "", err
	}
	if result.Error.Message != "" {
		return "", errors.New(result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", errors.New("storage service returned no secure url")
	}
	return result.SecureURL, nil
}
