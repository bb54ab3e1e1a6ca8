package media

import (
	"context"
	"errors"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"
)

const DefaultCloudinaryBase = "https://api.cloudinary.com"

// uploadTimeout bounds one upload when the caller's context has no
// earlier deadline.
const uploadTimeout = 30 * time.Second

// CloudinaryConfig selects the cloud and the unsigned upload preset.
type CloudinaryConfig struct {
	BaseURL      string
	CloudName    string
	UploadPreset string
	Folder       string
}

// Cloudinary uploads through an unsigned preset, so no API key or secret is
// held.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	preset string
	folder string
}

func NewCloudinary(cfg CloudinaryConfig) (*Cloudinary, error) {
	if cfg.CloudName == "" || cfg.UploadPreset == "" {
		return nil, errors.New("cloudinary cloud name and upload preset are required")
	}
	conf, err := config.NewFromParams(cfg.CloudName, "", "")
	if err != nil {
		return nil, err
	}
	conf.API.UploadPrefix = DefaultCloudinaryBase
	if cfg.BaseURL != "" {
		conf.API.UploadPrefix = cfg.BaseURL
	}
	cld, err := cloudinary.NewFromConfiguration(*conf)
	if err != nil {
		return nil, err
	}
	return &Cloudinary{cld: cld, preset: cfg.UploadPreset, folder: cfg.Folder}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, img Image) (string, error) {
	if img.Body == nil {
		return "", &UploadError{Message: "no image data"}
	}
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	resp, err := c.cld.Upload.UnsignedUpload(ctx, img.Body, c.preset, uploader.UploadParams{Folder: c.folder})
	if err != nil {
		return "", &UploadError{Err: err}
	}
	if resp.Error.Message != "" {
		return "", &UploadError{Message: resp.Error.Message}
	}
	if resp.SecureURL == "" {
		return "", &UploadError{Message: "no secure_url in response"}
	}
	return resp.SecureURL, nil
}
