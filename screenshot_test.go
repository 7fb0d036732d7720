package raycaster

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-jump", "after-jump"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSaveScreenshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	img, _ := NewImage(3, 2)
	img.Set(0, 0, Red)
	img.Set(2, 1, RGBA(10, 20, 30, 255))

	path, err := SaveScreenshot(dir, "corner test", img)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(path) != dir || !strings.HasSuffix(path, "_corner_test.png") {
		t.Errorf("path = %q", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	back, err := ImageFrom(decoded)
	if err != nil {
		t.Fatal(err)
	}
	if back.Width() != 3 || back.Height() != 2 {
		t.Fatalf("decoded size = %dx%d", back.Width(), back.Height())
	}
	for i := range img.Pix() {
		if back.Pix()[i] != img.Pix()[i] {
			t.Errorf("pixel %d = %#08x, want %#08x", i, uint32(back.Pix()[i]), uint32(img.Pix()[i]))
		}
	}
}

func TestSaveScreenshotBadDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	img, _ := NewImage(1, 1)
	if _, err := SaveScreenshot(filepath.Join(file, "sub"), "x", img); err == nil {
		t.Error("expected error when dir is under a regular file")
	}
}
