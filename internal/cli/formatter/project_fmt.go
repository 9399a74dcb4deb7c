package formatter

import (
	"github.com/alexanderramin/dayline/internal/domain"
)

// FormatProjectList renders projects as a tree following ParentID. A
// project whose parent is not in the list is shown at the top level.
func FormatProjectList(projects []*domain.Project) string {
	if len(projects) == 0 {
		return Dim("No projects.") + "\n"
	}

	present := make(map[string]bool, len(projects))
	for _, p := range projects {
		present[p.ID] = true
	}
	children := make(map[string][]*domain.Project)
	var roots []*domain.Project
	for _, p := range projects {
		if p.ParentID != nil && present[*p.ParentID] && *p.ParentID != p.ID {
			children[*p.ParentID] = append(children[*p.ParentID], p)
			continue
		}
		roots = append(roots, p)
	}

	var items []TreeItem
	visited := make(map[string]bool, len(projects))
	var walk func(list []*domain.Project, level int)
	walk = func(list []*domain.Project, level int) {
		for i, p := range list {
			if visited[p.ID] {
				continue
			}
			visited[p.ID] = true
			items = append(items, TreeItem{
				Title:  TruncID(p.ID) + " " + Bold(p.Name),
				Level:  level,
				IsLast: i == len(list)-1,
				Dimmed: p.Status == domain.ProjectArchived,
				Detail: string(p.Status),
			})
			walk(children[p.ID], level+1)
		}
	}
	walk(roots, 0)
	return RenderBox("Projects", RenderTree(items))
}
