// Package blob stores image files under content-derived names: the SHA-256
// hex digest of the bytes, suffixed ".jpg". Identical content always maps to
// the identical filename, so writes are idempotent.
package blob

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DefaultFilename is the sentinel image served in place of missing blobs.
const DefaultFilename = "default.jpg"

var (
	ErrNotFound        = errors.New("blob not found")
	ErrInvalidFilename = errors.New("filename must end with .jpg")
)

type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// Put writes data under its content-derived filename and returns that
// filename. Re-putting identical bytes rewrites the same file, which is
// harmless.
func (s *Store) Put(data []byte) (string, error) {
	filename := fmt.Sprintf("%x.jpg", sha256.Sum256(data))

	// The directory may have been removed since construction.
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	// Write to a temp file and rename so a concurrent Get never observes a
	// partially written blob.
	tmp := filepath.Join(s.dir, filename+".tmp."+uuid.NewString())
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, filename)); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return filename, nil
}

// Get returns the bytes stored under filename. The ".jpg" suffix is
// validated before existence is checked, so a malformed name is always an
// ErrInvalidFilename even when no such blob exists.
func (s *Store) Get(filename string) ([]byte, error) {
	if !strings.HasSuffix(filename, ".jpg") {
		return nil, ErrInvalidFilename
	}
	if filepath.Base(filename) != filename {
		return nil, ErrInvalidFilename
	}
	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}
