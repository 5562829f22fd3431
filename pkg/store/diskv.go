package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/peterbourgon/diskv/v3"
)

// Diskv is a KV that keeps one file per key under a base directory.
type Diskv struct {
	d        *diskv.Diskv
	basePath string
}

// OpenDiskv creates a diskv-backed KV rooted at basePath.
func OpenDiskv(basePath string) (*Diskv, error) {
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &Diskv{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		// No read cache: other processes write the same records.
		CacheSizeMax: 0,
	}), basePath: basePath}, nil
}

// BasePath reports the directory records are written to.
func (p *Diskv) BasePath() string { return p.basePath }

func (p *Diskv) Get(key string) (string, error) {
	if err := validKey(key); err != nil {
		return "", err
	}
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("store: read %s: %w", key, err)
	}
	return string(val), nil
}

func (p *Diskv) Set(key, value string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := p.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *Diskv) Clear(key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := p.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

// Records are flat files directly under the base path.
func keyToPathTransform(s string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: s,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}
