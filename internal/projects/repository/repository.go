package repository

import (
	"context"
	"errors"
	"time"

	"github.com/americano/projectsync/internal/projects/domain"
)

// ErrConstraintViolation marks a write rejected by a backend constraint.
var ErrConstraintViolation = errors.New("constraint violation")

// Repository provides persistence operations for projects.
type Repository interface {
	// Save inserts p when it has no id yet, otherwise updates the stored row.
	// Timestamps are managed here: both are set on insert and
	// LastModifiedDate is refreshed on update.
	Save(ctx context.Context, p *domain.Project) (*domain.Project, error)
	// FindByID reports false with a nil error when no project has the id.
	FindByID(ctx context.Context, id int64) (*domain.Project, bool, error)
	// FindAll returns every project in insertion order.
	FindAll(ctx context.Context) ([]domain.Project, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	// DeleteByID is a no-op for unknown ids.
	DeleteByID(ctx context.Context, id int64) error
}

// Store is a Repository with a transactional boundary and a liveness check.
type Store interface {
	Repository
	// Transact runs fn against a repository bound to a single transaction.
	// The transaction is rolled back when fn returns an error or panics.
	Transact(ctx context.Context, fn func(Repository) error) error
	Ping(ctx context.Context) error
}

// Option configures a repository.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// timestamp normalizes t to UTC at microsecond precision, the finest
// precision every backend keeps.
func timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// modifiedAt returns the refreshed LastModifiedDate for p.
func modifiedAt(now time.Time, p *domain.Project) time.Time {
	ts := timestamp(now)
	if ts.Before(p.CreatedDate) {
		return p.CreatedDate
	}
	return ts
}

var (
	_ Store = (*ProjectRepository)(nil)
	_ Store = (*RedisProjectRepository)(nil)
)
