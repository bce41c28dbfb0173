package mocks

import (
	"context"

	"github.com/americano/projectsync/internal/projects/domain"
	"github.com/americano/projectsync/internal/projects/repository"
	"github.com/stretchr/testify/mock"
)

// Store is a mock for repository.Store.
type Store struct {
	mock.Mock
}

var _ repository.Store = (*Store)(nil)

// SaveFunc lets a test compute Save's result from its input.
type SaveFunc func(ctx context.Context, p *domain.Project) (*domain.Project, error)

// ReturnArgument is a SaveFunc echoing the saved project.
func ReturnArgument(_ context.Context, p *domain.Project) (*domain.Project, error) {
	return p, nil
}

func (m *Store) Save(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	args := m.Called(ctx, p)
	if fn, ok := args.Get(0).(SaveFunc); ok {
		return fn(ctx, p)
	}
	if fn, ok := args.Get(0).(func(context.Context, *domain.Project) (*domain.Project, error)); ok {
		return fn(ctx, p)
	}
	if proj, ok := args.Get(0).(*domain.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) FindByID(ctx context.Context, id int64) (*domain.Project, bool, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*domain.Project); ok {
		return proj, args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *Store) FindAll(ctx context.Context) ([]domain.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]domain.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *Store) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Transact records the call and then runs fn against the mock itself.
func (m *Store) Transact(ctx context.Context, fn func(repository.Repository) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m)
}

func (m *Store) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
