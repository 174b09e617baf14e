package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

var unsafeFilenameRunes = regexp.MustCompile(`[^a-zA-Z0-9.]`)

// DiskStore writes uploads to a local directory. Keys are
// "<unix-millis>-<sanitized original name>", matching the filenames the
// reference deployment already has on disk.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the directory uploads are written to, for static serving.
func (s *DiskStore) Dir() string {
	return s.dir
}

func (s *DiskStore) Save(ctx context.Context, fieldName, filename string, r io.Reader) (string, error) {
	key := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), unsafeFilenameRunes.ReplaceAllString(filename, ""))

	f, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	defer f.Close()

	// Read one byte past the limit so an exactly-10MB file still passes.
	n, err := io.Copy(f, io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("writing upload: %w", err)
	}
	if n > MaxUploadSize {
		os.Remove(f.Name())
		return "", ErrTooLarge
	}

	return key, nil
}
