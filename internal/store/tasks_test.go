package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/studyplanner/planner/internal/domain"
)

func strPtr(s string) *string {
	return &s
}

func sampleTasks() []domain.Task {
	return []domain.Task{
		{
			ID:          "t-1",
			Title:       "Read ch.1",
			Description: "intro chapter",
			Date:        strPtr("2024-01-10"),
			Time:        strPtr("09:00"),
			Priority:    domain.PriorityHigh,
			Remind:      true,
			Created:     1704067200000,
		},
		{
			ID:       "t-2",
			Title:    "Flashcards",
			Priority: domain.PriorityLow,
			Created:  1704067300000,
			Done:     true,
		},
	}
}

// memKV is an in-memory KV for tests.
type memKV struct {
	data   map[string][]byte
	getErr error
	putErr error
}

func newMemKV() *memKV {
	return &memKV{data: map[string][]byte{}}
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Put(_ context.Context, key string, value []byte) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.data[key] = value
	return nil
}

func (m *memKV) Close() error { return nil }

func assertTasksEqual(t *testing.T, got, want []domain.Task) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(got), len(want))
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.ID != w.ID || g.Title != w.Title || g.Description != w.Description ||
			g.Priority != w.Priority || g.Remind != w.Remind || g.Created != w.Created || g.Done != w.Done {
			t.Errorf("task %d = %+v, want %+v", i, g, w)
		}
		if (g.Date == nil) != (w.Date == nil) || (g.Date != nil && *g.Date != *w.Date) {
			t.Errorf("task %d date = %v, want %v", i, g.Date, w.Date)
		}
		if (g.Time == nil) != (w.Time == nil) || (g.Time != nil && *g.Time != *w.Time) {
			t.Errorf("task %d time = %v, want %v", i, g.Time, w.Time)
		}
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	tasks := sampleTasks()

	data, err := Encode(tasks)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	assertTasksEqual(t, got, tasks)
}

func TestEncode_EmptyIsArray(t *testing.T) {
	data, err := Encode(nil)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("Encode(nil) = %s, want []", data)
	}
}

func TestDecode_NotArray(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"object", `{"id":"t-1"}`},
		{"string", `"tasks"`},
		{"number", `42`},
		{"null", `null`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			if !errors.Is(err, ErrNotArray) {
				t.Errorf("Decode(%s) error = %v, want ErrNotArray", tt.data, err)
			}
		})
	}
}

func TestDecode_MalformedElements(t *testing.T) {
	_, err := Decode([]byte(`[1, 2, 3]`))
	if err == nil {
		t.Fatal("Decode() should reject non-object elements")
	}
	if errors.Is(err, ErrNotArray) {
		t.Error("array with bad elements is not an ErrNotArray failure")
	}
}

func TestDecode_UnknownAndMissingFields(t *testing.T) {
	data := `[{"id":"t-1","title":"Read","extra":{"x":1},"created":5}]`

	got, err := Decode([]byte(data))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d tasks, want 1", len(got))
	}
	if got[0].Priority != domain.PriorityMedium {
		t.Errorf("missing priority should default to medium, got %q", got[0].Priority)
	}
	if got[0].Date != nil || got[0].Done || got[0].Remind {
		t.Errorf("missing fields should be absent: %+v", got[0])
	}
}

func TestDecode_OriginalBlobShape(t *testing.T) {
	// Records saved with null date/time and a millisecond timestamp
	data := `[{"id":"t17049","title":"Essay","description":"","date":null,"time":null,"priority":"low","remind":false,"created":1704900000000,"done":false}]`

	got, err := Decode([]byte(data))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if got[0].Date != nil || got[0].Time != nil {
		t.Errorf("null date/time should decode as nil: %+v", got[0])
	}
	if got[0].Created != 1704900000000 {
		t.Errorf("Created = %d", got[0].Created)
	}
}

func TestTaskStore_LoadMissingIsEmpty(t *testing.T) {
	s := NewTaskStore(newMemKV(), nil)

	got := s.Load(context.Background())
	if got == nil || len(got) != 0 {
		t.Errorf("Load() = %v, want empty non-nil slice", got)
	}
}

func TestTaskStore_LoadCorruptIsEmpty(t *testing.T) {
	kv := newMemKV()
	kv.data[StorageKey] = []byte(`{not json`)
	s := NewTaskStore(kv, nil)

	if got := s.Load(context.Background()); len(got) != 0 {
		t.Errorf("Load() = %v, want empty", got)
	}
}

func TestTaskStore_LoadReadErrorIsEmpty(t *testing.T) {
	kv := newMemKV()
	kv.getErr = errors.New("io failure")
	s := NewTaskStore(kv, nil)

	if got := s.Load(context.Background()); len(got) != 0 {
		t.Errorf("Load() = %v, want empty", got)
	}
}

func TestTaskStore_SaveLoad(t *testing.T) {
	kv := newMemKV()
	s := NewTaskStore(kv, nil)
	ctx := context.Background()

	if err := s.Save(ctx, sampleTasks()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if _, ok := kv.data[StorageKey]; !ok {
		t.Fatalf("Save() did not write under %s", StorageKey)
	}

	assertTasksEqual(t, s.Load(ctx), sampleTasks())
}

func TestTaskStore_SaveError(t *testing.T) {
	kv := newMemKV()
	kv.putErr = errors.New("read-only")
	s := NewTaskStore(kv, nil)

	if err := s.Save(context.Background(), sampleTasks()); err == nil {
		t.Error("Save() should propagate KV errors")
	}
}

func TestTaskStore_SQLiteBackend(t *testing.T) {
	m, err := NewManager(t.TempDir(), BackendSQLite)
	if err != nil {
		t.Fatalf("NewManager() error: %v", err)
	}
	defer m.Close()

	kv, err := m.Open("default")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	s := NewTaskStore(kv, nil)
	ctx := context.Background()

	if err := s.Save(ctx, sampleTasks()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	assertTasksEqual(t, s.Load(ctx), sampleTasks())
}

func TestTaskStore_FileBackend(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir, BackendFile)
	if err != nil {
		t.Fatalf("NewManager() error: %v", err)
	}
	defer m.Close()

	kv, err := m.Open("course-101")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	s := NewTaskStore(kv, nil)
	ctx := context.Background()

	if err := s.Save(ctx, sampleTasks()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	assertTasksEqual(t, s.Load(ctx), sampleTasks())

	if _, err := os.Stat(filepath.Join(dir, "course-101", StorageKey+".json")); err != nil {
		t.Errorf("expected blob file: %v", err)
	}
}
