package imageproc_test

import (
	"bytes"
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/osishub/osishub/internal/app/system/imageproc"
)

func encoded(t *testing.T, w, h int, f imaging.Format) *bytes.Buffer {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 30, B: 30, A: 255})
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, f); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return &buf
}

func TestCompress_ScalesDownWideJPEG(t *testing.T) {
	res, err := imageproc.Compress(encoded(t, 2400, 1200, imaging.JPEG), imageproc.Options{MaxWidth: 600, Quality: 70})
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if res.Width != 600 || res.Height != 300 {
		t.Errorf("size = %dx%d, want 600x300", res.Width, res.Height)
	}
	if res.ContentType != "image/jpeg" || res.Ext != ".jpg" {
		t.Errorf("type = %s %s", res.ContentType, res.Ext)
	}
	if _, err := imaging.Decode(bytes.NewReader(res.Data)); err != nil {
		t.Errorf("output does not decode: %v", err)
	}
}

func TestCompress_NeverUpscales(t *testing.T) {
	res, err := imageproc.Compress(encoded(t, 300, 200, imaging.JPEG), imageproc.Options{MaxWidth: 1200})
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if res.Width != 300 || res.Height != 200 {
		t.Errorf("size = %dx%d, want 300x200", res.Width, res.Height)
	}
}

func TestCompress_PNGStaysPNG(t *testing.T) {
	res, err := imageproc.Compress(encoded(t, 100, 100, imaging.PNG), imageproc.Options{})
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if res.ContentType != "image/png" || res.Ext != ".png" {
		t.Errorf("type = %s %s, want png", res.ContentType, res.Ext)
	}
}

func TestCompress_RejectsNonImage(t *testing.T) {
	_, err := imageproc.Compress(strings.NewReader("nama,kelas\nBudi,XI"), imageproc.Options{})
	if !errors.Is(err, imageproc.ErrNotImage) {
		t.Errorf("expected ErrNotImage, got %v", err)
	}
}

func TestCompress_RejectsOversize(t *testing.T) {
	big := bytes.Repeat([]byte{0}, imageproc.MaxUploadBytes+10)
	_, err := imageproc.Compress(bytes.NewReader(big), imageproc.Options{})
	if !errors.Is(err, imageproc.ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}
