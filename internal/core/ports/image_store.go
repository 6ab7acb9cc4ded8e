package ports

import (
	"context"
	"io"
)

// ImageUpload carries an optional profile picture attached to a register or
// update request.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// ImageStore is the external image microservice. Upload returns the
// store-relative path; ResolveURL turns that path into the URL persisted on
// the user record.
type ImageStore interface {
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
	Delete(ctx context.Context, filename string) error
	ResolveURL(path string) string
}
