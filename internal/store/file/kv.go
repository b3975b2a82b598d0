// Package file implements a key-value blob store on plain JSON files.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var validKey = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,128}$`)

// KV stores each key as <dir>/<key>.json.
type KV struct {
	dir string
}

// Open creates the directory if needed and returns a file-backed store.
func Open(dir string) (*KV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &KV{dir: dir}, nil
}

func (kv *KV) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(kv.dir, key+".json"), nil
}

// Get returns the value stored under key. The boolean is false when the key
// does not exist.
func (kv *KV) Get(_ context.Context, key string) ([]byte, bool, error) {
	p, err := kv.path(key)
	if err != nil {
		return nil, false, err
	}

	b, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

// Put overwrites the value stored under key. The write goes to a temporary
// file first so a crash never leaves a half-written value behind.
func (kv *KV) Put(_ context.Context, key string, value []byte) error {
	p, err := kv.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(kv.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, p); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", p, err)
	}
	return nil
}

// Close is a no-op; files are not kept open.
func (kv *KV) Close() error {
	return nil
}
