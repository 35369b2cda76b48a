package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-catalog-nosql/internal/domain"
)

const (
	maxUploadBytes = 10 << 20
	maxFormMemory  = 8 << 20
)

// parseForm accepts multipart or urlencoded bodies. Non-multipart bodies
// simply carry no image.
func parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	err := r.ParseMultipartForm(maxFormMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = nil
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid form body")
		return false
	}
	return true
}

// formImage returns the uploaded file under field, or nil when the request has none.
// The returned func releases the file and any temp storage of the form.
func formImage(r *http.Request, field string) (*domain.ImageUpload, func(), error) {
	release := func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}
	if r.MultipartForm == nil {
		return nil, release, nil
	}
	f, hdr, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, release, nil
	}
	if err != nil {
		return nil, release, fmt.Errorf("read %s: %w", field, domain.ErrBadRequest)
	}
	ct, err := contentType(f, hdr)
	if err != nil {
		_ = f.Close()
		return nil, release, fmt.Errorf("read %s: %w", field, domain.ErrBadRequest)
	}
	return &domain.ImageUpload{
			Filename:    hdr.Filename,
			ContentType: ct,
			Size:        hdr.Size,
			Body:        f,
		}, func() {
			_ = f.Close()
			release()
		}, nil
}

// contentType trusts the part header unless it is missing or generic, in
// which case the first bytes are sniffed.
func contentType(f multipart.File, hdr *multipart.FileHeader) (string, error) {
	ct := hdr.Header.Get("Content-Type")
	if ct != "" && ct != "application/octet-stream" {
		return ct, nil
	}
	buf := make([]byte, 512)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(buf[:n]), nil
}

func formString(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// formStringPtr distinguishes an absent field (nil) from a present one.
func formStringPtr(r *http.Request, key string) *string {
	if _, ok := r.Form[key]; !ok {
		return nil
	}
	v := formString(r, key)
	return &v
}

func formFloat(r *http.Request, key string) (*float64, error) {
	return parseFloat(key, formString(r, key))
}

func parseFloat(key, raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number: %w", key, domain.ErrBadRequest)
	}
	return &f, nil
}
