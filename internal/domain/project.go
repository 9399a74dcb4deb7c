package domain

import (
	"fmt"
	"strings"
	"time"
)

type Project struct {
	ID         string
	Name       string
	ParentID   *string
	Status     ProjectStatus
	ArchivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("project name is required")
	}
	if p.ParentID != nil && *p.ParentID == p.ID {
		return fmt.Errorf("project %q cannot be its own parent", p.Name)
	}
	return nil
}

// Archive marks the project archived. Archiving twice keeps the first
// timestamp.
func (p *Project) Archive(now time.Time) {
	if p.Status == ProjectArchived {
		return
	}
	p.Status = ProjectArchived
	p.ArchivedAt = &now
	p.UpdatedAt = now
}

// DisplayID returns the first 8 characters of the id for listings.
func (p *Project) DisplayID() string {
	return ShortID(p.ID)
}

// ShortID truncates a uuid to 8 characters.
func ShortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
