package repository

import (
	"context"

	"github.com/sundayezeilo/repositories/internal/errx"
	"github.com/sundayezeilo/repositories/internal/idgen"
)

// Service defines the operations exposed over HTTP.
type Service interface {
	List(ctx context.Context) ([]Repository, error)
	Create(ctx context.Context, f Fields) (Repository, error)
	Update(ctx context.Context, id string, f Fields) (Repository, error)
	Delete(ctx context.Context, id string) error
	Like(ctx context.Context, id string) (Repository, error)
}

// service implements the Service interface.
type service struct {
	store Store
	ids   idgen.Generator
}

// ServiceConfig holds configuration for the service.
type ServiceConfig struct {
	IDGenerator idgen.Generator // defaults to UUID v4
}

// NewService creates a new service instance.
func NewService(store Store, config *ServiceConfig) Service {
	if config == nil {
		config = &ServiceConfig{}
	}

	ids := config.IDGenerator
	if ids == nil {
		ids = idgen.NewV4()
	}

	return &service{
		store: store,
		ids:   ids,
	}
}

func (s *service) List(ctx context.Context) ([]Repository, error) {
	const op = "repository.service.List"

	repos, err := s.store.List(ctx)
	if err != nil {
		return nil, errx.E(op, errx.KindOf(err), err)
	}
	if repos == nil {
		repos = []Repository{}
	}
	return repos, nil
}

// Create stores a new repository with a fresh id and zero likes.
func (s *service) Create(ctx context.Context, f Fields) (Repository, error) {
	const op = "repository.service.Create"

	id, err := s.ids.Generate()
	if err != nil {
		return Repository{}, errx.E(op, errx.Internal, err)
	}

	f = f.clone()
	created, err := s.store.Append(ctx, Repository{
		ID:    id.String(),
		Title: f.Title,
		URL:   f.URL,
		Techs: f.Techs,
		Likes: 0,
	})
	if err != nil {
		return Repository{}, errx.E(op, errx.KindOf(err), err)
	}
	return created, nil
}

// Update overwrites title, url and techs with f as given. A field missing
// from f is cleared. The id and like count are preserved.
func (s *service) Update(ctx context.Context, id string, f Fields) (Repository, error) {
	const op = "repository.service.Update"

	if !idgen.Valid(id) {
		return Repository{}, errx.E(op, errx.Invalid, ErrInvalidID)
	}

	f = f.clone()
	updated, err := s.store.Update(ctx, id, func(current Repository) Repository {
		current.Title = f.Title
		current.URL = f.URL
		current.Techs = f.Techs
		return current
	})
	if err != nil {
		return Repository{}, errx.E(op, errx.KindOf(err), err)
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	const op = "repository.service.Delete"

	if !idgen.Valid(id) {
		return errx.E(op, errx.Invalid, ErrInvalidID)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return errx.E(op, errx.KindOf(err), err)
	}
	return nil
}

// Like increments the like counter by exactly one.
func (s *service) Like(ctx context.Context, id string) (Repository, error) {
	const op = "repository.service.Like"

	if !idgen.Valid(id) {
		return Repository{}, errx.E(op, errx.Invalid, ErrInvalidID)
	}

	liked, err := s.store.Update(ctx, id, func(current Repository) Repository {
		current.Likes++
		return current
	})
	if err != nil {
		return Repository{}, errx.E(op, errx.KindOf(err), err)
	}
	return liked, nil
}
