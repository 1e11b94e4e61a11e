package patient

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestFileRepo(t *testing.T) (Repository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "patients.json")
	return NewJSONFileRepo(path), path
}

func TestJSONFileRepo_MissingFileIsEmptyStore(t *testing.T) {
	repo, _ := newTestFileRepo(t)

	store, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store) != 0 {
		t.Errorf("expected empty store, got %d records", len(store))
	}
}

func TestJSONFileRepo_CorruptFileIsEmptyStore(t *testing.T) {
	repo, path := newTestFileRepo(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store) != 0 {
		t.Errorf("expected empty store for corrupt file, got %d records", len(store))
	}
}

func TestJSONFileRepo_PutGetDelete(t *testing.T) {
	repo, _ := newTestFileRepo(t)
	ctx := context.Background()
	rec := validPatient().Record()

	if err := repo.Put(ctx, "P001", rec); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := repo.Get(ctx, "P001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != rec {
		t.Errorf("round trip mismatch: %+v vs %+v", got, rec)
	}

	if err := repo.Delete(ctx, "P001"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, "P001"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestJSONFileRepo_GetMissing(t *testing.T) {
	repo, _ := newTestFileRepo(t)
	if _, err := repo.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestJSONFileRepo_DeleteMissing(t *testing.T) {
	repo, _ := newTestFileRepo(t)
	if err := repo.Delete(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestJSONFileRepo_FileLayout(t *testing.T) {
	repo, path := newTestFileRepo(t)
	if err := repo.Put(context.Background(), "P001", validPatient().Record()); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	// Top-level object keyed by id, human-readable indentation, no id field
	// inside the record, derived fields persisted.
	if !strings.HasPrefix(content, "{\n  \"P001\"") {
		t.Errorf("unexpected document layout:\n%s", content)
	}
	if strings.Contains(content, `"id"`) {
		t.Errorf("record value must not contain the id field:\n%s", content)
	}
	for _, field := range []string{`"bmi"`, `"verdict"`, `"name"`, `"height"`} {
		if !strings.Contains(content, field) {
			t.Errorf("missing %s in persisted record:\n%s", field, content)
		}
	}
}

func TestJSONFileRepo_PutOverwritesExisting(t *testing.T) {
	repo, _ := newTestFileRepo(t)
	ctx := context.Background()

	rec := validPatient().Record()
	if err := repo.Put(ctx, "P001", rec); err != nil {
		t.Fatal(err)
	}
	rec.Weight = 70
	if err := repo.Put(ctx, "P001", rec); err != nil {
		t.Fatal(err)
	}

	got, _ := repo.Get(ctx, "P001")
	if got.Weight != 70 {
		t.Errorf("expected overwritten weight 70, got %v", got.Weight)
	}
	store, _ := repo.GetAll(ctx)
	if len(store) != 1 {
		t.Errorf("expected a single record, got %d", len(store))
	}
}

func TestInitJSONStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patients.json")

	if err := InitJSONStore(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{}" {
		t.Errorf("expected empty object, got %q", data)
	}

	if err := InitJSONStore(path); err == nil {
		t.Error("expected error when store file already exists")
	}
}
