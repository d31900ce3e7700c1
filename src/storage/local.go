package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage stores media objects on the local filesystem and exposes
// them under a public base URL. Uploads overwrite by design: deterministic
// object names mean a re-sync replaces the object instead of accumulating
// copies.
type LocalStorage struct {
	dir     string
	baseURL string // public URL prefix for stored objects, no trailing slash
}

// NewLocalStorage creates a local media store rooted at dir. Objects are
// publicly addressable as baseURL/<name>.
func NewLocalStorage(dir, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &LocalStorage{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Dir returns the filesystem root of the store
func (ls *LocalStorage) Dir() string {
	return ls.dir
}

// BaseURL returns the public URL prefix of the store
func (ls *LocalStorage) BaseURL() string {
	return ls.baseURL
}

// Upload writes an object and returns its public URL. An existing object
// with the same name is overwritten.
func (ls *LocalStorage) Upload(ctx context.Context, name string, data []byte) (string, error) {
	if err := validateObjectName(name); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(ls.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write object %s: %w", name, err)
	}
	return ls.baseURL + "/" + name, nil
}

// Remove deletes an object. Removing a missing object is not an error.
func (ls *LocalStorage) Remove(ctx context.Context, name string) error {
	if err := validateObjectName(name); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(ls.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove object %s: %w", name, err)
	}
	return nil
}

// validateObjectName rejects names that could escape the store directory
func validateObjectName(name string) error {
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return fmt.Errorf("invalid object name: %q", name)
	}
	return nil
}
