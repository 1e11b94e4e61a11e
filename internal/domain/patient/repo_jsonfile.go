package patient

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// jsonFileRepo persists the whole store as a single JSON document, a
// top-level object mapping id to record. Every call loads the file fresh
// and every mutation rewrites it completely. A missing or unparsable file
// reads as an empty store.
type jsonFileRepo struct {
	path string
	mu   sync.Mutex // serializes file rewrites, not read-modify-write cycles
}

// NewJSONFileRepo returns a Repository backed by the JSON document at path.
// The file is created lazily on the first mutation.
func NewJSONFileRepo(path string) Repository {
	return &jsonFileRepo{path: path}
}

// InitJSONStore writes an empty store document at path unless one exists.
func InitJSONStore(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("store file already exists: %s", path)
	}
	return os.WriteFile(path, []byte("{}"), 0o644)
}

func (r *jsonFileRepo) load() map[string]Record {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return map[string]Record{}
	}
	store := map[string]Record{}
	if err := json.Unmarshal(data, &store); err != nil {
		return map[string]Record{}
	}
	return store
}

func (r *jsonFileRepo) save(store map[string]Record) error {
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("write store %s: %w", r.path, err)
	}
	return nil
}

func (r *jsonFileRepo) GetAll(_ context.Context) (map[string]Record, error) {
	return r.load(), nil
}

func (r *jsonFileRepo) Get(_ context.Context, id string) (Record, error) {
	store := r.load()
	rec, ok := store[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (r *jsonFileRepo) Put(_ context.Context, id string, rec Record) error {
	store := r.load()
	store[id] = rec
	return r.save(store)
}

func (r *jsonFileRepo) Delete(_ context.Context, id string) error {
	store := r.load()
	if _, ok := store[id]; !ok {
		return ErrNotFound
	}
	delete(store, id)
	return r.save(store)
}
