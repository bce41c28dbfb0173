package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/americano/projectsync/internal/projects/domain"
	"github.com/redis/go-redis/v9"
)

const (
	projectKeyPrefix = "projects:item:" // JSON document: projects:item:{id}
	projectIndexKey  = "projects:index" // sorted set of ids, score = id
	projectSeqKey    = "projects:seq"   // id counter
)

// RedisProjectRepository stores projects as JSON documents in Redis.
type RedisProjectRepository struct {
	client redis.UniversalClient
	now    func() time.Time
	inTx   bool
}

// NewRedisProjectRepository creates a new RedisProjectRepository
func NewRedisProjectRepository(client redis.UniversalClient, opts ...Option) *RedisProjectRepository {
	o := buildOptions(opts)
	return &RedisProjectRepository{client: client, now: o.now}
}

// Save inserts or updates a project.
func (r *RedisProjectRepository) Save(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	if err := p.Validate(); err != nil {
		return nil, domain.NewPersistenceError("save", err)
	}
	if p.IsNew() {
		return r.insert(ctx, p)
	}
	return r.update(ctx, p)
}

func (r *RedisProjectRepository) insert(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	id, err := r.client.Incr(ctx, projectSeqKey).Result()
	if err != nil {
		return nil, domain.NewPersistenceError("insert", fmt.Errorf("allocate id: %w", err))
	}

	now := timestamp(r.now())
	stored := *p
	stored.ID = id
	stored.CreatedDate = now
	stored.LastModifiedDate = now

	data, err := json.Marshal(stored)
	if err != nil {
		return nil, domain.NewPersistenceError("insert", fmt.Errorf("marshal project: %w", err))
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, projectKey(id), data, 0)
		pipe.ZAdd(ctx, projectIndexKey, redis.Z{Score: float64(id), Member: strconv.FormatInt(id, 10)})
		return nil
	})
	if err != nil {
		return nil, domain.NewPersistenceError("insert", err)
	}

	*p = stored
	return p, nil
}

func (r *RedisProjectRepository) update(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	existing, ok, err := r.FindByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NotFoundError(p.ID)
	}

	stored := *p
	stored.CreatedDate = existing.CreatedDate
	stored.LastModifiedDate = modifiedAt(r.now(), existing)

	data, err := json.Marshal(stored)
	if err != nil {
		return nil, domain.NewPersistenceError("update", fmt.Errorf("marshal project: %w", err))
	}

	// XX: never resurrect a project deleted since the read above
	set, err := r.client.SetXX(ctx, projectKey(p.ID), data, 0).Result()
	if err != nil {
		return nil, domain.NewPersistenceError("update", err)
	}
	if !set {
		return nil, domain.NotFoundError(p.ID)
	}

	*p = stored
	return p, nil
}

// FindByID retrieves a project by id.
func (r *RedisProjectRepository) FindByID(ctx context.Context, id int64) (*domain.Project, bool, error) {
	data, err := r.client.Get(ctx, projectKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, domain.NewPersistenceError("find", err)
	}

	var p domain.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, false, domain.NewPersistenceError("find", fmt.Errorf("unmarshal project %d: %w", id, err))
	}
	return &p, true, nil
}

// FindAll returns all projects ordered by id.
func (r *RedisProjectRepository) FindAll(ctx context.Context) ([]domain.Project, error) {
	ids, err := r.client.ZRange(ctx, projectIndexKey, 0, -1).Result()
	if err != nil {
		return nil, domain.NewPersistenceError("find all", err)
	}

	out := make([]domain.Project, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = projectKeyPrefix + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, domain.NewPersistenceError("find all", err)
	}

	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			// removed between ZRANGE and MGET
			continue
		}
		var p domain.Project
		if err := json.Unmarshal([]byte(s), &p); err != nil {
			return nil, domain.NewPersistenceError("find all", fmt.Errorf("unmarshal %s: %w", keys[i], err))
		}
		out = append(out, p)
	}
	return out, nil
}

// ExistsByID reports whether a project with the id is stored.
func (r *RedisProjectRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	n, err := r.client.Exists(ctx, projectKey(id)).Result()
	if err != nil {
		return false, domain.NewPersistenceError("exists", err)
	}
	return n > 0, nil
}

// DeleteByID removes the project with the id, if any. Inside Transact the
// caller has already seen the key, so removing nothing means a concurrent
// delete got there first and NotFound is returned.
func (r *RedisProjectRepository) DeleteByID(ctx context.Context, id int64) error {
	var del *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, projectKey(id))
		pipe.ZRem(ctx, projectIndexKey, strconv.FormatInt(id, 10))
		return nil
	})
	if err != nil {
		return domain.NewPersistenceError("delete", err)
	}
	if r.inTx && del.Val() == 0 {
		return domain.NotFoundError(id)
	}
	return nil
}

// Transact runs fn against a repository whose deletes report NotFound when
// the key vanished after fn checked it. Reads are not isolated.
func (r *RedisProjectRepository) Transact(ctx context.Context, fn func(Repository) error) error {
	if r.inTx {
		return fn(r)
	}
	return fn(&RedisProjectRepository{client: r.client, now: r.now, inTx: true})
}

// Ping checks the Redis connection.
func (r *RedisProjectRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func projectKey(id int64) string {
	return projectKeyPrefix + strconv.FormatInt(id, 10)
}
