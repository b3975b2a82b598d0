package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/studyplanner/planner/internal/store/file"
	"github.com/studyplanner/planner/internal/store/sqlite"
)

// KV is a key-value blob store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Backend names a KV implementation.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
)

// ParseBackend parses a backend name; empty means sqlite.
func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case "", BackendSQLite:
		return BackendSQLite, nil
	case BackendFile:
		return BackendFile, nil
	default:
		return "", fmt.Errorf("unknown storage backend %q (use sqlite or file)", s)
	}
}

// Valid planner name pattern: alphanumeric, hyphens, underscores, 1-64 chars.
var validName = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// ValidName reports whether name can be used as a planner name.
func ValidName(name string) bool {
	return validName.MatchString(name)
}

// Manager opens one KV per planner under a base directory and caches them.
type Manager struct {
	basePath string
	backend  Backend
	kvs      map[string]KV
	mu       sync.RWMutex
}

// NewManager creates a new store manager.
// basePath is the directory where planner data is stored (e.g., ~/.planner/data).
func NewManager(basePath string, backend Backend) (*Manager, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Manager{
		basePath: basePath,
		backend:  backend,
		kvs:      make(map[string]KV),
	}, nil
}

// Open returns the KV for a planner, creating it if necessary.
func (m *Manager) Open(name string) (KV, error) {
	if !ValidName(name) {
		return nil, fmt.Errorf("invalid planner name %q: must be 1-64 alphanumeric characters, hyphens, or underscores", name)
	}

	m.mu.RLock()
	if kv, ok := m.kvs[name]; ok {
		m.mu.RUnlock()
		return kv, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if kv, ok := m.kvs[name]; ok {
		return kv, nil
	}

	var (
		kv  KV
		err error
	)
	switch m.backend {
	case BackendFile:
		kv, err = file.Open(filepath.Join(m.basePath, name))
	default:
		kv, err = sqlite.Open(filepath.Join(m.basePath, name+".db"))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open planner %s: %w", name, err)
	}

	m.kvs[name] = kv
	return kv, nil
}

// ListPlanners returns the names of all planners found in the base directory.
func (m *Manager) ListPlanners() ([]string, error) {
	entries, err := os.ReadDir(m.basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list planners: %w", err)
	}

	planners := []string{}
	for _, entry := range entries {
		name := entry.Name()
		switch m.backend {
		case BackendFile:
			if entry.IsDir() && ValidName(name) {
				planners = append(planners, name)
			}
		default:
			if !entry.IsDir() && filepath.Ext(name) == ".db" {
				planners = append(planners, strings.TrimSuffix(name, ".db"))
			}
		}
	}
	sort.Strings(planners)
	return planners, nil
}

// Close closes all open stores.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for name, kv := range m.kvs {
		if err := kv.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close %s: %w", name, err))
		}
	}
	m.kvs = make(map[string]KV)

	if len(errs) > 0 {
		return fmt.Errorf("errors closing stores: %v", errs)
	}
	return nil
}
