package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename reduces an uploaded name to a safe base name made of
// ASCII letters, digits, '_', '-' and '.'. It returns "" when nothing is left.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")
	if name == "" || name == "." {
		return ""
	}
	return name
}

// ImageStore keeps uploaded vegetable images in a single directory.
type ImageStore struct {
	dir string
}

func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &ImageStore{dir: dir}, nil
}

func (s *ImageStore) Dir() string { return s.dir }

// Save writes r under a new name derived from the sanitized original name and
// returns that name.
func (s *ImageStore) Save(original string, r io.Reader) (string, error) {
	clean := SanitizeFilename(original)
	if clean == "" {
		clean = "image"
	}
	name := uuid.NewString()[:8] + "_" + clean

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write image file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close image file: %w", err)
	}
	return name, nil
}

// Remove deletes a stored image. A missing file is not an error.
func (s *ImageStore) Remove(name string) error {
	clean := SanitizeFilename(name)
	if clean == "" || clean != name {
		return fmt.Errorf("invalid image name %q", name)
	}
	err := os.Remove(filepath.Join(s.dir, clean))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove image file: %w", err)
	}
	return nil
}

func (s *ImageStore) Exists(name string) bool {
	clean := SanitizeFilename(name)
	if clean == "" || clean != name {
		return false
	}
	_, err := os.Stat(filepath.Join(s.dir, clean))
	return err == nil
}
