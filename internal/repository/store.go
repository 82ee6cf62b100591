package repository

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/sundayezeilo/repositories/internal/errx"
)

var (
	ErrNotFound    = errors.New("repository not found")
	ErrInvalidID   = errors.New("invalid repository id")
	ErrDuplicateID = errors.New("repository id already exists")
)

// Store holds repositories in insertion order.
// Update applies fn to the stored record and writes the result back at the
// same position as one atomic step; fn must not retain its argument.
type Store interface {
	List(ctx context.Context) ([]Repository, error)
	Append(ctx context.Context, repo Repository) (Repository, error)
	Update(ctx context.Context, id string, fn func(Repository) Repository) (Repository, error)
	Delete(ctx context.Context, id string) error
}

var _ Store = (*MemoryStore)(nil)

// MemoryStore is a Store backed by a slice that lives as long as the process.
// All methods are safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	items []Repository
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: []Repository{}}
}

// List returns a snapshot of every repository in insertion order.
func (s *MemoryStore) List(_ context.Context) ([]Repository, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Repository, len(s.items))
	for i, item := range s.items {
		out[i] = item.clone()
	}
	return out, nil
}

// Append adds repo at the end of the collection.
func (s *MemoryStore) Append(_ context.Context, repo Repository) (Repository, error) {
	const op = "repository.store.Append"

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(repo.ID) >= 0 {
		return Repository{}, errx.E(op, errx.Internal, ErrDuplicateID)
	}

	stored := repo.clone()
	s.items = append(s.items, stored)
	return stored.clone(), nil
}

// Update replaces the repository with the given id by fn's result.
// The id is kept even if fn changes it.
func (s *MemoryStore) Update(_ context.Context, id string, fn func(Repository) Repository) (Repository, error) {
	const op = "repository.store.Update"

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Repository{}, errx.E(op, errx.NotFound, ErrNotFound)
	}

	updated := fn(s.items[i].clone()).clone()
	updated.ID = s.items[i].ID
	s.items[i] = updated
	return updated.clone(), nil
}

// Delete removes exactly one repository, keeping the order of the rest.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	const op = "repository.store.Delete"

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return errx.E(op, errx.NotFound, ErrNotFound)
	}

	s.items = slices.Delete(s.items, i, i+1)
	return nil
}

// indexOf returns the position of the first repository with id, or -1.
// Callers must hold mu.
func (s *MemoryStore) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}
