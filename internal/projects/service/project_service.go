package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/americano/projectsync/internal/projects/domain"
	"github.com/americano/projectsync/internal/projects/repository"
)

// ProjectService handles project-related business logic
type ProjectService struct {
	store  repository.Store
	logger *zap.Logger
}

// NewProjectService creates a new project service
func NewProjectService(store repository.Store, logger *zap.Logger) *ProjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectService{
		store:  store,
		logger: logger,
	}
}

// CreateProject persists a new project. Any id or timestamps set by the
// caller are discarded; the store assigns them.
func (s *ProjectService) CreateProject(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	p.ID = 0
	p.CreatedDate = time.Time{}
	p.LastModifiedDate = time.Time{}

	created, err := s.store.Save(ctx, p)
	if err != nil {
		return nil, err
	}

	s.logger.Info("project created", zap.Int64("project_id", created.ID))
	return created, nil
}

// GetAllProjects returns every project.
func (s *ProjectService) GetAllProjects(ctx context.Context) ([]domain.Project, error) {
	return s.store.FindAll(ctx)
}

// GetProjectByID returns the project or an error wrapping domain.ErrNotFound.
func (s *ProjectService) GetProjectByID(ctx context.Context, id int64) (*domain.Project, error) {
	p, ok, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NotFoundError(id)
	}
	return p, nil
}

// UpdateProject merges req into the stored project and saves it.
//
// Absent fields are left alone. Blank values for title, status and
// responsiblePerson are treated as "no change"; description takes whatever
// value is sent, blank included.
func (s *ProjectService) UpdateProject(ctx context.Context, id int64, req domain.UpdateProjectRequest) (*domain.Project, error) {
	var updated *domain.Project
	err := s.store.Transact(ctx, func(repo repository.Repository) error {
		existing, ok, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NotFoundError(id)
		}

		applyUpdate(existing, req)

		updated, err = repo.Save(ctx, existing)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("project updated", zap.Int64("project_id", id))
	return updated, nil
}

// DeleteProject removes the project, failing with domain.ErrNotFound when it
// does not exist.
func (s *ProjectService) DeleteProject(ctx context.Context, id int64) error {
	err := s.store.Transact(ctx, func(repo repository.Repository) error {
		ok, err := repo.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NotFoundError(id)
		}
		return repo.DeleteByID(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("project deleted", zap.Int64("project_id", id))
	return nil
}

func applyUpdate(p *domain.Project, req domain.UpdateProjectRequest) {
	setRequired(&p.Title, req.Title)
	setRequired(&p.Status, req.Status)
	setRequired(&p.ResponsiblePerson, req.ResponsiblePerson)

	if req.Description != nil {
		p.Description = *req.Description
	}
}

// setRequired overwrites dst unless v is absent or blank.
func setRequired(dst *string, v *string) {
	if v == nil || domain.IsBlank(*v) {
		return
	}
	*dst = *v
}
