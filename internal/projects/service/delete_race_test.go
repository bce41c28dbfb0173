package service_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/americano/projectsync/internal/projects/domain"
	"github.com/americano/projectsync/internal/projects/repository"
	"github.com/americano/projectsync/internal/projects/service"
)

// interleavingStore runs afterExists once, right after the first successful
// existence check inside a transaction.
type interleavingStore struct {
	repository.Store
	afterExists func()
}

func (s *interleavingStore) Transact(ctx context.Context, fn func(repository.Repository) error) error {
	return s.Store.Transact(ctx, func(tx repository.Repository) error {
		return fn(&interleavingRepo{Repository: tx, store: s})
	})
}

type interleavingRepo struct {
	repository.Repository
	store *interleavingStore
}

func (r *interleavingRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	ok, err := r.Repository.ExistsByID(ctx, id)
	if ok && err == nil && r.store.afterExists != nil {
		hook := r.store.afterExists
		r.store.afterExists = nil
		hook()
	}
	return ok, err
}

func TestProjectService_DeleteProject_ConcurrentDeleteOnRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	base := repository.NewRedisProjectRepository(client)
	created, err := base.Save(ctx, domain.NewProject("Contested", "", "Active", "Owner"))
	require.NoError(t, err)

	store := &interleavingStore{Store: base}
	svc := service.NewProjectService(store, nil)

	var competingErr error
	store.afterExists = func() {
		competingErr = svc.DeleteProject(ctx, created.ID)
	}

	firstErr := svc.DeleteProject(ctx, created.ID)

	assert.NoError(t, competingErr, "the caller that deletes first succeeds")
	assert.ErrorIs(t, firstErr, domain.ErrNotFound, "the caller that loses the race sees NotFound")

	exists, err := base.ExistsByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}
