package banner

import (
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeImage(t *testing.T, name string, encode func(*os.File, image.Image) error) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 64, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer f.Close()
	if err := encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return path
}

func TestPreparePNGPassesThrough(t *testing.T) {
	path := writeImage(t, "banner.png", func(f *os.File, img image.Image) error {
		return png.Encode(f, img)
	})

	info, err := Prepare(path)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if info.Path != path {
		t.Errorf("Path = %q, want original %q", info.Path, path)
	}
	if info.Width != 64 || info.Height != 32 {
		t.Errorf("dimensions = %dx%d, want 64x32", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format = %q, want png", info.Format)
	}
}

func TestPrepareConvertsGIF(t *testing.T) {
	path := writeImage(t, "banner.gif", func(f *os.File, img image.Image) error {
		return gif.Encode(f, img, nil)
	})

	info, err := Prepare(path)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if info.Path == path {
		t.Error("expected a converted path for gif input")
	}
	if _, err := os.Stat(info.Path); err != nil {
		t.Errorf("converted file missing: %v", err)
	}
	if info.Format != "gif" {
		t.Errorf("Format = %q, want gif", info.Format)
	}
}

func TestPrepareRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banner.jpg")
	if err := os.WriteFile(path, []byte("this is not an image"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Prepare(path); err == nil {
		t.Fatal("Prepare accepted non-image bytes")
	}
}

func TestPrepareRejectsMissingFile(t *testing.T) {
	if _, err := Prepare(filepath.Join(t.TempDir(), "absent.jpg")); err == nil {
		t.Fatal("Prepare accepted a missing file")
	}
}
