package patient

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("patient not found")
	ErrAlreadyExists = errors.New("patient already exists")
)

// Repository is the store of patient records keyed by id. Implementations
// are free to read and rewrite the whole store per call (jsonfile) or to
// address rows individually (postgres); callers get no isolation between
// a Get and a later Put.
type Repository interface {
	GetAll(ctx context.Context) (map[string]Record, error)
	Get(ctx context.Context, id string) (Record, error)
	Put(ctx context.Context, id string, rec Record) error
	Delete(ctx context.Context, id string) error
}
