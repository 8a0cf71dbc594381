package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	apperrors "github.com/simaogato/rebalancer/internal/errors"
)

const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendGzip   = "gzip"
	BackendSQLite = "sqlite"

	defaultDir = ".rebalancer"
)

// Opened pairs a store with the backend that produced it.
type Opened struct {
	Backend string
	Store   KeyValueStore
}

// Open returns a key-value store for the provided backend spec.
// Examples:
//   - "memory"
//   - "file:/home/me/.rebalancer"
//   - "gzip:/tmp/portfolio"
//   - "sqlite:/home/me/.rebalancer/portfolio.db"
//
// If no backend is specified, the argument is treated as a directory for
// the file backend.
func Open(spec string) (*Opened, error) {
	backend, arg := parseSpec(spec)

	switch backend {
	case BackendMemory:
		return &Opened{Backend: BackendMemory, Store: NewMemoryStore()}, nil
	case BackendFile:
		return &Opened{Backend: BackendFile, Store: NewFileStore(orDefault(arg, defaultDir))}, nil
	case BackendGzip:
		return &Opened{Backend: BackendGzip, Store: NewGzipStore(orDefault(arg, defaultDir))}, nil
	case BackendSQLite:
		path := orDefault(arg, filepath.Join(defaultDir, "portfolio.db"))
		s, err := NewSQLiteStore(path)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, err)
		}
		return &Opened{Backend: BackendSQLite, Store: s}, nil
	default:
		return nil, apperrors.WithMessage(apperrors.ErrUnsupportedBackend,
			fmt.Sprintf("unsupported storage backend: %s", backend))
	}
}

func parseSpec(spec string) (backend, arg string) {
	if spec == "" {
		return BackendFile, defaultDir
	}

	if !strings.Contains(spec, ":") {
		backend = strings.ToLower(spec)
		switch backend {
		case BackendMemory, BackendFile, BackendGzip, BackendSQLite:
			return backend, ""
		default:
			// A bare path selects the file backend.
			return BackendFile, spec
		}
	}

	parts := strings.SplitN(spec, ":", 2)
	return strings.ToLower(parts[0]), parts[1]
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
