package domain

import "time"

// Project is a single tracked project.
type Project struct {
	ID                int64     `json:"id"`
	Title             string    `json:"title" validate:"notblank,max=100"`
	Description       string    `json:"description" validate:"max=500"`
	Status            string    `json:"status" validate:"notblank,max=50"`
	ResponsiblePerson string    `json:"responsiblePerson" validate:"notblank,max=100"`
	CreatedDate       time.Time `json:"createdDate"`
	LastModifiedDate  time.Time `json:"lastModifiedDate"`
}

// NewProject returns an unsaved project. ID and timestamps are assigned by the store.
func NewProject(title, description, status, responsiblePerson string) *Project {
	return &Project{
		Title:             title,
		Description:       description,
		Status:            status,
		ResponsiblePerson: responsiblePerson,
	}
}

// IsNew reports whether the project has not been persisted yet.
func (p *Project) IsNew() bool {
	return p.ID == 0
}

// UpdateProjectRequest represents data for updating a project.
// A nil field means the caller did not send it.
type UpdateProjectRequest struct {
	Title             *string
	Description       *string
	Status            *string
	ResponsiblePerson *string
}
