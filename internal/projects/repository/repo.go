package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/americano/projectsync/internal/projects/domain"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ProjectRepository stores projects in a SQL database.
type ProjectRepository struct {
	db      *sql.DB
	q       querier
	tx      *sql.Tx
	dialect Dialect
	now     func() time.Time
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB, dialect Dialect, opts ...Option) *ProjectRepository {
	o := buildOptions(opts)
	return &ProjectRepository{
		db:      db,
		q:       db,
		dialect: dialect,
		now:     o.now,
	}
}

const projectColumns = `id, title, description, status, responsible_person, created_date, last_modified_date`

// Save inserts or updates a project.
func (r *ProjectRepository) Save(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	if err := p.Validate(); err != nil {
		return nil, domain.NewPersistenceError("save", err)
	}
	if p.IsNew() {
		return r.insert(ctx, p)
	}
	return r.update(ctx, p)
}

func (r *ProjectRepository) insert(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	now := timestamp(r.now())

	q := r.dialect.Rebind(`
INSERT INTO projects (title, description, status, responsible_person, created_date, last_modified_date)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id;
`)
	var id int64
	err := r.q.QueryRowContext(ctx, q, p.Title, p.Description, p.Status, p.ResponsiblePerson, now, now).Scan(&id)
	if err != nil {
		return nil, r.persistenceError("insert", err)
	}

	p.ID = id
	p.CreatedDate = now
	p.LastModifiedDate = now
	return p, nil
}

func (r *ProjectRepository) update(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	var created time.Time
	q := r.dialect.Rebind(`SELECT created_date FROM projects WHERE id = ?` + r.lockClause())
	err := r.q.QueryRowContext(ctx, q, p.ID).Scan(&created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError(p.ID)
	}
	if err != nil {
		return nil, r.persistenceError("update", err)
	}
	p.CreatedDate = created.UTC()
	modified := modifiedAt(r.now(), p)

	// created_date is never written after insert
	q = r.dialect.Rebind(`
UPDATE projects
SET title = ?, description = ?, status = ?, responsible_person = ?, last_modified_date = ?
WHERE id = ?;
`)
	res, err := r.q.ExecContext(ctx, q, p.Title, p.Description, p.Status, p.ResponsiblePerson, modified, p.ID)
	if err != nil {
		return nil, r.persistenceError("update", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, r.persistenceError("update", err)
	}
	if n == 0 {
		return nil, domain.NotFoundError(p.ID)
	}

	p.LastModifiedDate = modified
	return p, nil
}

// FindByID retrieves a project by id.
func (r *ProjectRepository) FindByID(ctx context.Context, id int64) (*domain.Project, bool, error) {
	q := r.dialect.Rebind(`SELECT ` + projectColumns + ` FROM projects WHERE id = ?` + r.lockClause())

	p, err := scanProject(r.q.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, r.persistenceError("find", err)
	}
	return p, true, nil
}

// FindAll returns all projects ordered by id.
func (r *ProjectRepository) FindAll(ctx context.Context) ([]domain.Project, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY id ASC`)
	if err != nil {
		return nil, r.persistenceError("find all", err)
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, r.persistenceError("find all", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, r.persistenceError("find all", err)
	}
	return out, nil
}

// ExistsByID reports whether a project with the id is stored.
func (r *ProjectRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	q := r.dialect.Rebind(`SELECT 1 FROM projects WHERE id = ?` + r.lockClause())

	var one int
	err := r.q.QueryRowContext(ctx, q, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, r.persistenceError("exists", err)
	}
	return true, nil
}

// DeleteByID removes the project with the id, if any.
func (r *ProjectRepository) DeleteByID(ctx context.Context, id int64) error {
	q := r.dialect.Rebind(`DELETE FROM projects WHERE id = ?`)
	if _, err := r.q.ExecContext(ctx, q, id); err != nil {
		return r.persistenceError("delete", err)
	}
	return nil
}

// Transact runs fn inside a database transaction. Nested calls reuse the
// outer transaction.
func (r *ProjectRepository) Transact(ctx context.Context, fn func(Repository) error) (err error) {
	if r.tx != nil {
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return r.persistenceError("begin", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	txRepo := &ProjectRepository{
		db:      r.db,
		q:       tx,
		tx:      tx,
		dialect: r.dialect,
		now:     r.now,
	}
	if err := fn(txRepo); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return r.persistenceError("commit", err)
	}
	return nil
}

// Ping checks the database connection.
func (r *ProjectRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *ProjectRepository) lockClause() string {
	if r.tx == nil {
		return ""
	}
	return r.dialect.LockClause()
}

func (r *ProjectRepository) persistenceError(op string, err error) error {
	if r.dialect.IsConstraintViolation(err) {
		err = fmt.Errorf("%w: %v", ErrConstraintViolation, err)
	}
	return domain.NewPersistenceError(op, err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var description sql.NullString
	err := row.Scan(
		&p.ID,
		&p.Title,
		&description,
		&p.Status,
		&p.ResponsiblePerson,
		&p.CreatedDate,
		&p.LastModifiedDate,
	)
	if err != nil {
		return nil, err
	}
	p.Description = description.String
	p.CreatedDate = p.CreatedDate.UTC()
	p.LastModifiedDate = p.LastModifiedDate.UTC()
	return &p, nil
}
