package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by KV.Get when no value is stored under the key.
var ErrNotFound = errors.New("store: key not found")

// KV is the persistence contract for the small named records folio keeps
// between runs, such as the terminal lockout deadline.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Clear(key string) error
}

// Backend names accepted by Load.
const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config describes where a KV lives.
type Config interface {
	Backend() string
	BasePath() string
	DatabasePath() string
}

// Load opens the backend selected by cfg.
func Load(cfg Config) (KV, error) {
	if cfg == nil {
		return nil, errors.New("store: no config")
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Backend())) {
	case "", BackendDiskv:
		return OpenDiskv(cfg.BasePath())
	case BackendSQLite:
		return OpenSQLite(cfg.DatabasePath())
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend())
	}
}

func validKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("store: key required")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("store: invalid key %q", key)
	}
	return nil
}
