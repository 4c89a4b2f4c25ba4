package commands

import (
	"os"
	"path/filepath"
	"testing"
)

func TestImageMIME(t *testing.T) {
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

	tests := []struct {
		name string
		path string
		data []byte
		want string
	}{
		{"png extension", "photo.png", nil, "image/png"},
		{"jpg extension", "photo.jpg", nil, "image/jpeg"},
		{"jpeg extension", "photo.JPEG", nil, "image/jpeg"},
		{"webp extension", "photo.webp", nil, "image/webp"},
		{"gif extension", "anim.gif", nil, "image/gif"},
		{"sniffed from content", "photo.bin", png, "image/png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := imageMIME(tt.path, tt.data)
			if got != tt.want {
				t.Errorf("imageMIME(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pic.png")
	content := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 1, 2, 3}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	img, err := loadImage(path)
	if err != nil {
		t.Fatalf("loadImage: %v", err)
	}
	if img.MIME != "image/png" {
		t.Errorf("MIME = %q", img.MIME)
	}
	if len(img.Data) != len(content) {
		t.Errorf("Data length = %d, want %d", len(img.Data), len(content))
	}

	if _, err := loadImage(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestRunQueryEmptyPrompt(t *testing.T) {
	if err := runQuery("   "); err == nil {
		t.Error("empty prompt should fail")
	}
}
