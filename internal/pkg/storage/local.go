package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// LocalStorage stores files on the local file system under a base
// directory. File names are generated from a timestamp and a random suffix
// so concurrent uploads cannot collide or overwrite.
type LocalStorage struct {
	baseDir string
	prefix  string
}

// NewLocalStorage creates the base directory if needed. The prefix is
// prepended to every generated name (e.g. "avatar-" for avatar files).
func NewLocalStorage(baseDir, prefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", baseDir, err)
	}
	return &LocalStorage{baseDir: baseDir, prefix: prefix}, nil
}

// Save writes the content to a freshly generated file name and returns the
// name. On write failure the partial file is removed.
func (s *LocalStorage) Save(r io.Reader, originalName string) (string, error) {
	name := s.generateName(originalName)
	path := filepath.Join(s.baseDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		if rmErr := os.Remove(path); rmErr != nil {
			log.Warnf("could not remove partial upload %s: %v", path, rmErr)
		}
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	return name, nil
}

// Delete removes a stored file. A file that is already gone is tolerated.
func (s *LocalStorage) Delete(name string) error {
	if name == "" {
		return nil
	}
	// Reject names trying to escape the base directory.
	if name != filepath.Base(name) {
		return fmt.Errorf("invalid file name %q", name)
	}
	err := os.Remove(filepath.Join(s.baseDir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// generateName builds "<prefix><unix-millis>-<random>.<ext>" from the
// original file's extension.
func (s *LocalStorage) generateName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s%d-%s%s", s.prefix, time.Now().UnixMilli(), uuid.New().String(), ext)
}
