package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/studyplanner/planner/internal/domain"
	"github.com/studyplanner/planner/internal/store"
)

// Export serializes the whole store as a JSON array.
func (s *TaskService) Export() ([]byte, error) {
	data, err := store.Encode(s.Snapshot())
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return data, nil
}

// Import replaces the whole store with the tasks in data, a JSON array.
// Anything else, or an element without a title, is rejected and the store is
// left unchanged. Elements with a missing or repeated id get a fresh one and
// a missing created time becomes the import time. Pending reminders are
// dropped and rearmed for the imported tasks.
func (s *TaskService) Import(ctx context.Context, data []byte) (int, error) {
	tasks, err := store.Decode(data)
	if err != nil {
		reason := "file is not valid task JSON"
		if errors.Is(err, store.ErrNotArray) {
			reason = err.Error()
		}
		return 0, domain.NewInvalidImportError(reason)
	}
	if err := s.repairImported(tasks); err != nil {
		return 0, err
	}

	s.mu.Lock()
	if err := s.commitLocked(ctx, tasks); err != nil {
		s.mu.Unlock()
		return 0, err
	}
	if s.reminders != nil {
		s.rescheduleLocked()
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)

	return len(snapshot), nil
}

func (s *TaskService) repairImported(tasks []domain.Task) error {
	now := domain.MillisOf(s.now())
	seen := make(map[string]bool, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		t.Title = strings.TrimSpace(t.Title)
		if t.Title == "" {
			return domain.NewInvalidImportError(fmt.Sprintf("task %d has no title", i+1))
		}
		t.ID = strings.TrimSpace(t.ID)
		if t.ID == "" || seen[t.ID] {
			id, err := s.newID()
			if err != nil {
				return domain.NewInternalError(err)
			}
			t.ID = id
		}
		seen[t.ID] = true
		if t.Created == 0 {
			t.Created = now
		}
	}
	return nil
}
