package storage

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("image", name)
	if err != nil {
		t.Fatal(err)
	}
	part.Write(content)
	w.Close()

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatal(err)
	}
	return req.MultipartForm.File["image"][0]
}

func TestLocalUpload(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir)

	url, err := l.Upload(context.Background(), fileHeader(t, "Burger.PNG", []byte("img")), "items")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/items/") || !strings.HasSuffix(url, ".png") {
		t.Fatalf("unexpected url %q", url)
	}

	got, err := os.ReadFile(filepath.Join(dir, "items", filepath.Base(url)))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(got) != "img" {
		t.Fatalf("stored content = %q", got)
	}
}

func TestLocalUploadRejectsNonImages(t *testing.T) {
	l := NewLocal(t.TempDir())
	if _, err := l.Upload(context.Background(), fileHeader(t, "notes.txt", []byte("x")), "items"); err == nil {
		t.Fatal("expected an error for a .txt upload")
	}
}
