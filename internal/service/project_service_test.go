package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/dayline/internal/domain"
	"github.com/alexanderramin/dayline/internal/repository"
	"github.com/alexanderramin/dayline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_Create(t *testing.T) {
	projects, _, _, _ := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(projects)

	proj := &domain.Project{Name: "Thesis"}
	require.NoError(t, svc.Create(ctx, proj))
	assert.NotEmpty(t, proj.ID, "UUID should be generated")
	assert.Equal(t, domain.ProjectActive, proj.Status, "status should default to active")

	fetched, err := svc.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Thesis", fetched.Name)
}

func TestProjectService_Create_Validation(t *testing.T) {
	projects, _, _, _ := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(projects)

	assert.Error(t, svc.Create(ctx, &domain.Project{Name: ""}))

	missing := "no-such-parent"
	err := svc.Create(ctx, &domain.Project{Name: "Child", ParentID: &missing})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectService_Delete_RequiresArchiveFirst(t *testing.T) {
	projects, _, _, _ := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(projects)

	proj := testutil.NewTestProject("Active Project")
	require.NoError(t, projects.Create(ctx, proj))

	assert.Error(t, svc.Delete(ctx, proj.ID, false), "should require archive before delete")

	require.NoError(t, svc.Archive(ctx, proj.ID))
	require.NoError(t, svc.Delete(ctx, proj.ID, false))

	_, err := svc.GetByID(ctx, proj.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectService_Delete_Force(t *testing.T) {
	projects, _, _, _ := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(projects)

	proj := testutil.NewTestProject("Forced")
	require.NoError(t, projects.Create(ctx, proj))
	require.NoError(t, svc.Delete(ctx, proj.ID, true))

	list, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProjectService_Archive_CascadesToSubprojects(t *testing.T) {
	projects, _, _, _ := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(projects)

	home := &domain.Project{Name: "Home"}
	require.NoError(t, svc.Create(ctx, home))
	garden := &domain.Project{Name: "Garden", ParentID: &home.ID}
	require.NoError(t, svc.Create(ctx, garden))
	beds := &domain.Project{Name: "Raised beds", ParentID: &garden.ID}
	require.NoError(t, svc.Create(ctx, beds))
	work := &domain.Project{Name: "Work"}
	require.NoError(t, svc.Create(ctx, work))

	require.NoError(t, svc.Archive(ctx, home.ID))

	active, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Work", active[0].Name)

	err = svc.Create(ctx, &domain.Project{Name: "Shed", ParentID: &garden.ID})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "archived")
}

func TestProjectService_Archive_Missing(t *testing.T) {
	projects, _, _, _ := setupRepos(t)
	svc := NewProjectService(projects)
	assert.ErrorIs(t, svc.Archive(context.Background(), "nope"), repository.ErrNotFound)
}
