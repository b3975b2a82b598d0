package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/studyplanner/planner/internal/domain"
)

func TestRunImport(t *testing.T) {
	svc := newTestService(t)
	mustCreate(t, svc, domain.Draft{Title: "Old"})

	n, err := runImport(context.Background(), svc, []byte(`[{"id":"t-a","title":"Imported","priority":"high","created":1,"done":false,"remind":false}]`))
	if err != nil {
		t.Fatalf("runImport() error = %v", err)
	}
	if n != 1 {
		t.Errorf("imported %d tasks, expected 1", n)
	}
	tasks := svc.Snapshot()
	if len(tasks) != 1 || tasks[0].Title != "Imported" {
		t.Errorf("import should replace all tasks, got %+v", tasks)
	}
}

func TestRunImport_RejectsNonArray(t *testing.T) {
	svc := newTestService(t)
	mustCreate(t, svc, domain.Draft{Title: "Keep"})

	for _, input := range []string{`{"title":"x"}`, `"tasks"`, `42`, `null`, ``, `not json`} {
		_, err := runImport(context.Background(), svc, []byte(input))
		if mapErrorToExitCode(err) != ExitInvalidImport {
			t.Errorf("import of %q: expected invalid import, got %v", input, err)
		}
	}
	if tasks := svc.Snapshot(); len(tasks) != 1 || tasks[0].Title != "Keep" {
		t.Errorf("rejected import changed the tasks: %+v", tasks)
	}
}

func TestReadImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}

	data, err := readImportFile(path)
	if err != nil || string(data) != "[]" {
		t.Errorf("readImportFile() = %q, %v", data, err)
	}

	if _, err := readImportFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
