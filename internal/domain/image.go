package domain

import (
	"fmt"
	"io"
	"strings"
)

// ImageUpload is an image received from a client, ready to be streamed to object storage.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

func (u *ImageUpload) Validate() error {
	if u == nil || u.Body == nil || u.Size == 0 {
		return fmt.Errorf("image is required: %w", ErrBadRequest)
	}
	if !strings.HasPrefix(u.ContentType, "image/") {
		return fmt.Errorf("unsupported content type %q: %w", u.ContentType, ErrBadRequest)
	}
	return nil
}

// NearbyQuery filters jobs by great-circle distance from a point.
type NearbyQuery struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}
