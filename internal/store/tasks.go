package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/studyplanner/planner/internal/domain"
)

// StorageKey is the fixed key the task list is persisted under.
const StorageKey = "smart-study-planner-v1"

// ErrNotArray is returned by Decode when the top-level JSON value is not an array.
var ErrNotArray = errors.New("top-level value is not an array")

// TaskStore mirrors the ordered task list to a single blob in a KV.
type TaskStore struct {
	kv     KV
	key    string
	logger *log.Logger
}

// NewTaskStore creates a task store over kv using StorageKey.
// A nil logger discards log output.
func NewTaskStore(kv KV, logger *log.Logger) *TaskStore {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &TaskStore{kv: kv, key: StorageKey, logger: logger}
}

// Load deserializes the persisted blob. A missing, unreadable or invalid blob
// yields an empty sequence.
func (s *TaskStore) Load(ctx context.Context) []domain.Task {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.logger.Printf("Warning: failed to read %s, starting empty: %v", s.key, err)
		return []domain.Task{}
	}
	if !ok {
		return []domain.Task{}
	}

	tasks, err := Decode(raw)
	if err != nil {
		s.logger.Printf("Warning: stored %s is invalid, starting empty: %v", s.key, err)
		return []domain.Task{}
	}
	return tasks
}

// Save serializes the full sequence and overwrites the persisted blob.
func (s *TaskStore) Save(ctx context.Context, tasks []domain.Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return err
	}
	if err := s.kv.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	return nil
}

// Encode serializes tasks as a JSON array.
func Encode(tasks []domain.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tasks: %w", err)
	}
	return data, nil
}

// Decode parses a JSON array of tasks and normalizes every record. Unknown
// fields are ignored and missing fields are treated as absent.
func Decode(data []byte) ([]domain.Task, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotArray
	}

	var tasks []domain.Task
	if err := json.Unmarshal(trimmed, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	for i := range tasks {
		tasks[i].Normalize()
	}
	return tasks, nil
}
