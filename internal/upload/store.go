// Package upload stores vehicle images on disk and derives their public URLs.
package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrBadExtension is returned when an uploaded file's extension is not an
// accepted image type.
var ErrBadExtension = errors.New("file type not allowed")

// allowedExtensions lists the image file extensions the store accepts.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".jfif": true,
}

// Store writes uploaded images under root and serves them below urlPrefix.
// Files land in one folder per brand/model pair; uploads go to a temp file
// first and are renamed into place so readers never see partial writes.
type Store struct {
	root      string
	urlPrefix string
}

// NewStore creates a Store rooted at root whose public URLs start with
// urlPrefix (no trailing slash).
func NewStore(root, urlPrefix string) *Store {
	return &Store{root: root, urlPrefix: strings.TrimRight(urlPrefix, "/")}
}

// Folder returns the directory name for a brand and model: both lower-cased
// with spaces turned into underscores and anything outside [a-z0-9-_]
// dropped, joined by an underscore.
func Folder(brand, model string) string {
	return sanitize(brand) + "_" + sanitize(model)
}

func sanitize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Save stores the image read from src into the folder derived from brand
// and model and returns its public URL. On a filename collision a numeric
// suffix (_1, _2, ...) is appended.
func (s *Store) Save(brand, model, filename string, src io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: %s", ErrBadExtension, ext)
	}

	tmpDir := filepath.Join(s.root, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return "", fmt.Errorf("create tmp dir: %w", err)
	}
	tmpPath := filepath.Join(tmpDir, uuid.NewString()+ext)

	f, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("create tmp file: %w", err)
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("write image: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("close tmp file: %w", err)
	}

	folder := Folder(brand, model)
	destDir := filepath.Join(s.root, folder)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("create image dir: %w", err)
	}

	name := freeName(destDir, filename, ext)
	if err := os.Rename(tmpPath, filepath.Join(destDir, name)); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("move image: %w", err)
	}

	return s.urlPrefix + "/" + folder + "/" + name, nil
}

// freeName picks a filename inside dir that does not collide with an
// existing file, appending _1, _2, ... to the sanitized base name.
func freeName(dir, filename, ext string) string {
	base := sanitize(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	if base == "" {
		base = "image"
	}

	name := base + ext
	for i := 1; ; i++ {
		if _, err := os.Stat(filepath.Join(dir, name)); os.IsNotExist(err) {
			return name
		}
		name = fmt.Sprintf("%s_%d%s", base, i, ext)
	}
}
