// Package blobstore stores uploaded files under generated keys. Bytes
// are passed through untouched; there is no content or mime inspection.
package blobstore

import (
	"context"
	"errors"
	"io"
)

// MaxUploadSize caps a single upload at 10 MB.
const MaxUploadSize = 10 << 20

var ErrTooLarge = errors.New("file exceeds upload size limit")

type Store interface {
	// Save stores the reader's contents and returns the storage key.
	// Readers longer than MaxUploadSize fail with ErrTooLarge.
	Save(ctx context.Context, fieldName, filename string, r io.Reader) (string, error)
}
