package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dayline/internal/domain"
	"github.com/alexanderramin/dayline/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	projects repository.ProjectRepo
}

func NewProjectService(projects repository.ProjectRepo) ProjectService {
	return &projectService{projects: projects}
}

// Create stores p as an active project. A parent must exist and be active.
func (s *projectService) Create(ctx context.Context, p *domain.Project) error {
	p.Name = strings.TrimSpace(p.Name)
	if err := p.Validate(); err != nil {
		return err
	}
	if p.ParentID != nil {
		parent, err := s.projects.GetByID(ctx, *p.ParentID)
		if err != nil {
			return fmt.Errorf("parent project: %w", err)
		}
		if parent.Status == domain.ProjectArchived {
			return fmt.Errorf("parent project %s is archived", parent.DisplayID())
		}
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.Status = domain.ProjectActive
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	return s.projects.Create(ctx, p)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	return s.projects.List(ctx, includeArchived)
}

// Archive archives id and every active project below it, so an active
// subproject never hangs off an archived one.
func (s *projectService) Archive(ctx context.Context, id string) error {
	if _, err := s.projects.GetByID(ctx, id); err != nil {
		return err
	}
	all, err := s.projects.List(ctx, false)
	if err != nil {
		return err
	}
	children := make(map[string][]string)
	for _, p := range all {
		if p.ParentID != nil {
			children[*p.ParentID] = append(children[*p.ParentID], p.ID)
		}
	}

	seen := map[string]bool{}
	queue := []string{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		if err := s.projects.Archive(ctx, cur); err != nil {
			return fmt.Errorf("archiving %s: %w", domain.ShortID(cur), err)
		}
		queue = append(queue, children[cur]...)
	}
	return nil
}

// Delete removes an archived project. force skips the archive requirement.
// Tasks and subprojects keep existing with their reference cleared.
func (s *projectService) Delete(ctx context.Context, id string, force bool) error {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !force && p.Status != domain.ProjectArchived {
		return fmt.Errorf("project %s must be archived before deletion (use --force to override)", p.DisplayID())
	}
	return s.projects.Delete(ctx, id)
}
