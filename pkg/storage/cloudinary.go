package storage

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Cloudinary uploads images to a Cloudinary account.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	prefix string
}

// NewCloudinary accepts either a CLOUDINARY_URL or the three credentials.
func NewCloudinary(url, cloudName, apiKey, apiSecret string) (*Cloudinary, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if url != "" {
		cld, err = cloudinary.NewFromURL(url)
	} else {
		cld, err = cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	}
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &Cloudinary{cld: cld, prefix: "food-delivery"}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, fh *multipart.FileHeader, folder string) (string, error) {
	if err := CheckImage(fh); err != nil {
		return "", err
	}
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	res, err := c.cld.Upload.Upload(ctx, src, uploader.UploadParams{Folder: c.prefix + "/" + folder})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	return res.SecureURL, nil
}
