// Package imageproc shrinks uploaded photos and logos before they are stored.
package imageproc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/disintegration/imaging"
)

// Limits and defaults.
const (
	MaxUploadBytes  = 8 << 20
	DefaultMaxWidth = 1200
	DefaultQuality  = 80
)

// ErrNotImage is returned for uploads that are not JPEG, PNG or GIF.
var ErrNotImage = errors.New("file is not a supported image")

// ErrTooLarge is returned for uploads over MaxUploadBytes.
var ErrTooLarge = errors.New("image is too large")

// Options controls compression. Zero values use the defaults.
type Options struct {
	MaxWidth int
	Quality  int
}

func (o Options) withDefaults() Options {
	if o.MaxWidth <= 0 {
		o.MaxWidth = DefaultMaxWidth
	}
	if o.Quality <= 0 || o.Quality > 100 {
		o.Quality = DefaultQuality
	}
	return o
}

// Result is a compressed image ready for upload.
type Result struct {
	Data        []byte
	ContentType string
	Ext         string
	Width       int
	Height      int
}

// Compress decodes r, fixes EXIF orientation, scales it down to MaxWidth
// (never up) and re-encodes it. PNG input stays PNG so logo transparency
// survives; everything else becomes JPEG at Quality.
func Compress(r io.Reader, opts Options) (Result, error) {
	opts = opts.withDefaults()

	raw, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return Result{}, fmt.Errorf("read image: %w", err)
	}
	if len(raw) > MaxUploadBytes {
		return Result{}, ErrTooLarge
	}

	ct := http.DetectContentType(raw)
	switch ct {
	case "image/jpeg", "image/png", "image/gif":
	default:
		return Result{}, ErrNotImage
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	if img.Bounds().Dx() > opts.MaxWidth {
		img = imaging.Resize(img, opts.MaxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	res := Result{ContentType: "image/jpeg", Ext: ".jpg"}
	if ct == "image/png" {
		res.ContentType, res.Ext = "image/png", ".png"
		err = imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(-3))
	} else {
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(opts.Quality))
	}
	if err != nil {
		return Result{}, fmt.Errorf("encode image: %w", err)
	}

	res.Data = buf.Bytes()
	res.Width = img.Bounds().Dx()
	res.Height = img.Bounds().Dy()
	return res, nil
}
