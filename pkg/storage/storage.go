package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Uploader stores an uploaded file and returns the URL clients should use.
type Uploader interface {
	Upload(ctx context.Context, fh *multipart.FileHeader, folder string) (string, error)
}

var allowedExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true}

// CheckImage rejects files that are not images.
func CheckImage(fh *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExt[ext] {
		return fmt.Errorf("unsupported image type %q", ext)
	}
	return nil
}

// Local writes files under Dir and serves them from PublicPrefix.
type Local struct {
	Dir          string
	PublicPrefix string
}

func NewLocal(dir string) *Local {
	return &Local{Dir: dir, PublicPrefix: "/uploads"}
}

func (l *Local) Upload(_ context.Context, fh *multipart.FileHeader, folder string) (string, error) {
	if err := CheckImage(fh); err != nil {
		return "", err
	}
	dir := filepath.Join(l.Dir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return l.PublicPrefix + "/" + folder + "/" + name, nil
}
