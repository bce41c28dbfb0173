package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/americano/projectsync/internal/projects/domain"
	"github.com/americano/projectsync/internal/projects/repository/mocks"
	"github.com/americano/projectsync/internal/projects/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const projectID int64 = 1

func ptr(s string) *string { return &s }

func existingProject() *domain.Project {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	p := domain.NewProject("Original Title", "Original Description", "Active", "Original Responsible")
	p.ID = projectID
	p.CreatedDate = created
	p.LastModifiedDate = created
	return p
}

func TestProjectService_CreateProject(t *testing.T) {
	ctx := context.Background()
	store := &mocks.Store{}

	store.On("Save", ctx, mock.MatchedBy(func(p *domain.Project) bool {
		return p.ID == 0 && p.CreatedDate.IsZero() && p.LastModifiedDate.IsZero()
	})).Return(mocks.SaveFunc(func(_ context.Context, p *domain.Project) (*domain.Project, error) {
		now := time.Now().UTC()
		p.ID = 10
		p.CreatedDate = now
		p.LastModifiedDate = now
		return p, nil
	}), nil).Once()

	svc := service.NewProjectService(store, nil)

	input := domain.NewProject("New", "", "Active", "Owner")
	input.ID = 999
	input.CreatedDate = time.Unix(0, 0)

	created, err := svc.CreateProject(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, int64(10), created.ID)
	assert.Equal(t, created.CreatedDate, created.LastModifiedDate)
	store.AssertExpectations(t)
}

func TestProjectService_CreateProject_PersistenceError(t *testing.T) {
	ctx := context.Background()
	store := &mocks.Store{}
	cause := domain.NewPersistenceError("insert", errors.New("connection refused"))
	store.On("Save", ctx, mock.Anything).Return(nil, cause)

	svc := service.NewProjectService(store, nil)
	_, err := svc.CreateProject(ctx, domain.NewProject("New", "", "Active", "Owner"))

	var perr *domain.PersistenceError
	require.ErrorAs(t, err, &perr)
}

func TestProjectService_GetAllProjects(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store", func(t *testing.T) {
		store := &mocks.Store{}
		store.On("FindAll", ctx).Return([]domain.Project{}, nil)

		all, err := service.NewProjectService(store, nil).GetAllProjects(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("returns every record", func(t *testing.T) {
		store := &mocks.Store{}
		store.On("FindAll", ctx).Return([]domain.Project{*existingProject(), *existingProject()}, nil)

		all, err := service.NewProjectService(store, nil).GetAllProjects(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}

func TestProjectService_GetProjectByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		store := &mocks.Store{}
		store.On("FindByID", ctx, projectID).Return(existingProject(), true, nil)

		p, err := service.NewProjectService(store, nil).GetProjectByID(ctx, projectID)
		require.NoError(t, err)
		assert.Equal(t, existingProject(), p)
	})

	t.Run("not found", func(t *testing.T) {
		store := &mocks.Store{}
		store.On("FindByID", ctx, int64(99)).Return(nil, false, nil)

		_, err := service.NewProjectService(store, nil).GetProjectByID(ctx, 99)
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, err.Error(), "99")
	})
}

func TestProjectService_UpdateProject_AllFieldsUpdated(t *testing.T) {
	ctx := context.Background()
	existing := existingProject()

	store := &mocks.Store{}
	store.On("Transact", ctx).Return(nil)
	store.On("FindByID", ctx, projectID).Return(existing, true, nil).Once()
	store.On("Save", ctx, existing).Return(mocks.ReturnArgument, nil).Once()

	svc := service.NewProjectService(store, nil)
	updated, err := svc.UpdateProject(ctx, projectID, domain.UpdateProjectRequest{
		Title:             ptr("New Title"),
		Description:       ptr("New Description"),
		Status:            ptr("Completed"),
		ResponsiblePerson: ptr("New Responsible"),
	})
	require.NoError(t, err)

	assert.Equal(t, projectID, updated.ID, "id must not change")
	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, "New Description", updated.Description)
	assert.Equal(t, "Completed", updated.Status)
	assert.Equal(t, "New Responsible", updated.ResponsiblePerson)
	assert.Equal(t, existingProject().CreatedDate, updated.CreatedDate)

	store.AssertExpectations(t)
	store.AssertNumberOfCalls(t, "FindByID", 1)
	store.AssertNumberOfCalls(t, "Save", 1)
}

func TestProjectService_UpdateProject_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	existing := existingProject()

	store := &mocks.Store{}
	store.On("Transact", ctx).Return(nil)
	store.On("FindByID", ctx, projectID).Return(existing, true, nil)
	store.On("Save", ctx, existing).Return(mocks.ReturnArgument, nil).Once()

	svc := service.NewProjectService(store, nil)
	updated, err := svc.UpdateProject(ctx, projectID, domain.UpdateProjectRequest{
		Title: ptr("Partial Title Change"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Partial Title Change", updated.Title)
	assert.Equal(t, "Active", updated.Status, "status keeps its original value")
	assert.Equal(t, "Original Responsible", updated.ResponsiblePerson, "responsible person keeps its original value")
	assert.Equal(t, "Original Description", updated.Description)
	store.AssertExpectations(t)
}

func TestProjectService_UpdateProject_BlankValues(t *testing.T) {
	ctx := context.Background()
	existing := existingProject()

	store := &mocks.Store{}
	store.On("Transact", ctx).Return(nil)
	store.On("FindByID", ctx, projectID).Return(existing, true, nil)
	store.On("Save", ctx, existing).Return(mocks.ReturnArgument, nil)

	svc := service.NewProjectService(store, nil)
	updated, err := svc.UpdateProject(ctx, projectID, domain.UpdateProjectRequest{
		Title:             ptr(""),
		Status:            ptr("   "),
		ResponsiblePerson: ptr("\t"),
		Description:       ptr(""),
	})
	require.NoError(t, err)

	assert.Equal(t, "Original Title", updated.Title)
	assert.Equal(t, "Active", updated.Status)
	assert.Equal(t, "Original Responsible", updated.ResponsiblePerson)
	assert.Equal(t, "", updated.Description, "blank is a valid description")
}

func TestProjectService_UpdateProject_NotFound(t *testing.T) {
	ctx := context.Background()
	nonExistentID := int64(99)

	store := &mocks.Store{}
	store.On("Transact", ctx).Return(nil)
	store.On("FindByID", ctx, nonExistentID).Return(nil, false, nil)

	svc := service.NewProjectService(store, nil)
	_, err := svc.UpdateProject(ctx, nonExistentID, domain.UpdateProjectRequest{
		Title:             ptr("Title"),
		Description:       ptr("Desc"),
		Status:            ptr("Status"),
		ResponsiblePerson: ptr("Resp"),
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "project not found with id: 99")

	store.AssertNumberOfCalls(t, "FindByID", 1)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProjectService_UpdateProject_TransactionFailure(t *testing.T) {
	ctx := context.Background()
	cause := domain.NewPersistenceError("begin", errors.New("pool exhausted"))

	store := &mocks.Store{}
	store.On("Transact", ctx).Return(cause)

	_, err := service.NewProjectService(store, nil).UpdateProject(ctx, projectID, domain.UpdateProjectRequest{})
	require.ErrorIs(t, err, cause)
	store.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestProjectService_DeleteProject(t *testing.T) {
	ctx := context.Background()

	t.Run("existing project", func(t *testing.T) {
		store := &mocks.Store{}
		store.On("Transact", ctx).Return(nil)
		store.On("ExistsByID", ctx, projectID).Return(true, nil)
		store.On("DeleteByID", ctx, projectID).Return(nil).Once()

		err := service.NewProjectService(store, nil).DeleteProject(ctx, projectID)
		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("missing project", func(t *testing.T) {
		store := &mocks.Store{}
		store.On("Transact", ctx).Return(nil)
		store.On("ExistsByID", ctx, int64(999)).Return(false, nil)

		err := service.NewProjectService(store, nil).DeleteProject(ctx, 999)
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, err.Error(), "999")
		store.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
	})

	t.Run("exists check fails", func(t *testing.T) {
		store := &mocks.Store{}
		cause := domain.NewPersistenceError("exists", errors.New("timeout"))
		store.On("Transact", ctx).Return(nil)
		store.On("ExistsByID", ctx, projectID).Return(false, cause)

		err := service.NewProjectService(store, nil).DeleteProject(ctx, projectID)
		require.ErrorIs(t, err, cause)
		store.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
	})
}
