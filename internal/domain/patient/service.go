package patient

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidArgument marks a bad sort parameter. The wrapped message names
// the allowed set.
var ErrInvalidArgument = errors.New("invalid argument")

var sortFields = map[string]bool{
	"height": true, "weight": true, "bmi": true,
}

// Service orchestrates the record store and the patient model.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates the payload and stores its record under the patient id.
// The id must be unused; an existing record is never overwritten.
func (s *Service) Create(ctx context.Context, p Patient) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, err := s.repo.Get(ctx, p.ID); err == nil {
		return ErrAlreadyExists
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	return s.repo.Put(ctx, p.ID, p.Record())
}

// Get returns the record for id.
func (s *Service) Get(ctx context.Context, id string) (Record, error) {
	return s.repo.Get(ctx, id)
}

// List returns the entire store as a mapping id to record.
func (s *Service) List(ctx context.Context) (map[string]Record, error) {
	return s.repo.GetAll(ctx)
}

// Sort returns all records ordered by the requested numeric field.
// The sort is stable over an ascending-id materialization of the store;
// descending order is the reversal of that stable ascending sort, so tied
// keys appear as reversed whole blocks rather than being re-ordered.
func (s *Service) Sort(ctx context.Context, sortBy, order string) ([]Record, error) {
	if !sortFields[sortBy] {
		return nil, fmt.Errorf("%w: sort_by must be one of height, weight, bmi", ErrInvalidArgument)
	}
	if order == "" {
		order = "asc"
	}
	if order != "asc" && order != "desc" {
		return nil, fmt.Errorf("%w: order must be asc or desc", ErrInvalidArgument)
	}

	store, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(store))
	for id := range store {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	records := make([]Record, 0, len(ids))
	for _, id := range ids {
		records = append(records, store[id])
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].sortKey(sortBy) < records[j].sortKey(sortBy)
	})
	if order == "desc" {
		for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
			records[i], records[j] = records[j], records[i]
		}
	}
	return records, nil
}

func (r Record) sortKey(field string) float64 {
	switch field {
	case "height":
		return r.Height
	case "weight":
		return r.Weight
	case "bmi":
		return r.BMI
	}
	return 0
}

// Update merges the patch onto the existing record, reattaches the id, and
// pushes the merged field set back through full validation and derivation.
// Untouched fields are re-validated too; a patch can never leave bmi or
// verdict stale, and an empty patch is an idempotent recompute.
func (s *Service) Update(ctx context.Context, id string, u Update) (Record, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Record{}, err
	}
	merged := existing.Apply(u).Patient(id)
	if err := merged.Validate(); err != nil {
		return Record{}, err
	}
	rec := merged.Record()
	if err := s.repo.Put(ctx, id, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Delete removes the record for id.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
