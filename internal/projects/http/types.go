package http

import (
	"context"

	"go.uber.org/zap"

	"github.com/americano/projectsync/internal/projects/domain"
)

// ProjectService is the business layer the handlers call into.
type ProjectService interface {
	CreateProject(ctx context.Context, p *domain.Project) (*domain.Project, error)
	GetAllProjects(ctx context.Context) ([]domain.Project, error)
	GetProjectByID(ctx context.Context, id int64) (*domain.Project, error)
	UpdateProject(ctx context.Context, id int64, req domain.UpdateProjectRequest) (*domain.Project, error)
	DeleteProject(ctx context.Context, id int64) error
}

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	svc    ProjectService
	logger *zap.Logger
}

func New(svc ProjectService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

type createProjectRequest struct {
	Title             string `json:"title" validate:"notblank,max=100"`
	Description       string `json:"description" validate:"max=500"`
	Status            string `json:"status" validate:"notblank,max=50"`
	ResponsiblePerson string `json:"responsiblePerson" validate:"notblank,max=100"`
}

func (r createProjectRequest) toProject() *domain.Project {
	return domain.NewProject(r.Title, r.Description, r.Status, r.ResponsiblePerson)
}

// updateProjectRequest accepts partial payloads: omitted fields stay nil and
// only fields that are present get validated.
type updateProjectRequest struct {
	Title             *string `json:"title" validate:"omitempty,notblank,max=100"`
	Description       *string `json:"description" validate:"omitempty,max=500"`
	Status            *string `json:"status" validate:"omitempty,notblank,max=50"`
	ResponsiblePerson *string `json:"responsiblePerson" validate:"omitempty,notblank,max=100"`
}

func (r updateProjectRequest) toDomain() domain.UpdateProjectRequest {
	return domain.UpdateProjectRequest{
		Title:             r.Title,
		Description:       r.Description,
		Status:            r.Status,
		ResponsiblePerson: r.ResponsiblePerson,
	}
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Status     int                `json:"status"`
	Error      string             `json:"error"`
	Message    string             `json:"message"`
	Violations []domain.Violation `json:"violations,omitempty"`
}
