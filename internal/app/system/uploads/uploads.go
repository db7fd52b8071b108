// Package uploads stores image uploads from multipart forms: read the file
// field, compress it with imageproc and put it in the blob store.
package uploads

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
	"github.com/osishub/osishub/internal/app/system/imageproc"
	"go.uber.org/zap"
)

// MaxRequestBytes caps a multipart request carrying one image plus fields.
const MaxRequestBytes = imageproc.MaxUploadBytes + 1<<20

// ErrNoFile is returned when the form has no file in the field.
var ErrNoFile = errors.New("no file uploaded")

// Images stores compressed images in a blob store.
type Images struct {
	Store   storage.Store
	Options imageproc.Options
	Log     *zap.Logger
}

// Saved is a stored image.
type Saved struct {
	URL  string
	Path string
}

// ParseForm caps the body at MaxRequestBytes and parses a multipart form.
// A plain urlencoded body is accepted too; it simply carries no file.
func ParseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBytes)
	err := r.ParseMultipartForm(MaxRequestBytes)
	if errors.Is(err, http.ErrNotMultipart) {
		return nil
	}
	return err
}

// Save reads field from a parsed multipart form, compresses it and stores it
// under kind ("divisions", "members", "contents"). It returns ErrNoFile when
// the field is empty so callers can treat the upload as optional.
func (im Images) Save(ctx context.Context, r *http.Request, field, kind string) (Saved, error) {
	if r.MultipartForm == nil {
		return Saved{}, ErrNoFile
	}
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || (err == nil && header.Size == 0) {
		if file != nil {
			file.Close()
		}
		return Saved{}, ErrNoFile
	}
	if err != nil {
		return Saved{}, fmt.Errorf("read upload: %w", err)
	}
	defer file.Close()

	res, err := imageproc.Compress(file, im.Options)
	if err != nil {
		return Saved{}, err
	}

	path := NewPath(kind, res.Ext)
	if err := im.Store.Put(ctx, path, bytes.NewReader(res.Data), &storage.PutOptions{ContentType: res.ContentType}); err != nil {
		return Saved{}, fmt.Errorf("store image: %w", err)
	}
	return Saved{URL: im.Store.URL(path), Path: path}, nil
}

// NewPath returns a unique storage path like "members/2026/10/1a2b3c4d.jpg".
func NewPath(kind, ext string) string {
	now := time.Now().UTC()
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return fmt.Sprintf("%s/%04d/%02d/%s%s", kind, now.Year(), now.Month(), uuid.New().String()[:8], strings.ToLower(ext))
}

// Remove deletes a previously stored image. An already missing object is
// fine; other failures are logged, not returned, since a leftover blob is
// harmless once the record points elsewhere.
func (im Images) Remove(ctx context.Context, path string) {
	if path == "" {
		return
	}
	err := im.Store.Delete(ctx, path)
	if err != nil && !errors.Is(err, storage.ErrNotFound) && im.Log != nil {
		im.Log.Warn("failed to delete old image", zap.String("path", path), zap.Error(err))
	}
}

// Message maps a Save error to an Indonesian form message, or "" for
// errors that should be treated as server failures.
func Message(err error) string {
	switch {
	case errors.Is(err, imageproc.ErrNotImage):
		return "Berkas harus berupa gambar JPEG, PNG, atau GIF."
	case errors.Is(err, imageproc.ErrTooLarge):
		return "Ukuran gambar melebihi 8 MB."
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return "Ukuran unggahan terlalu besar."
	}
	return ""
}
