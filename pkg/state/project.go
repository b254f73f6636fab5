package state

import (
	"cmp"
	"slices"
)

// Columns maps a column name to its tasks. Unknown names read as empty columns.
type Columns = DefaultMap[string, Column]

// Project groups tasks into named columns.
type Project struct {
	Priority Priority `json:"priority,omitempty"`
	Title    string   `json:"title"`
	Columns  Columns  `json:"columns"`
}

// Compare orders projects by priority only.
func (p Project) Compare(other Project) int {
	return cmp.Compare(p.Priority, other.Priority)
}

// TaskCount returns the number of tasks across all columns.
func (p Project) TaskCount() int {
	total := 0
	for _, column := range p.Columns.Inner() {
		total += column.Len()
	}
	return total
}

// ColumnNames lists the columns holding tasks: those named in order first,
// in that order, then the rest alphabetically.
func (p Project) ColumnNames(order []string) []string {
	var names []string
	for _, name := range order {
		if p.Columns.Get(name).Len() > 0 && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	for _, name := range p.Columns.Keys() {
		if !slices.Contains(order, name) && p.Columns.Get(name).Len() > 0 {
			names = append(names, name)
		}
	}
	return names
}

func (s *State) handleProjectAction(loc ProjectsLocation, action Action) *SwitchTo {
	if create, ok := action.(Create); ok {
		idx := s.projects.Insert(Project{Title: create.Title})
		s.touch()
		return &SwitchTo{Index: idx}
	}

	switch action.(type) {
	case Delete, Rename, ChangePriority:
	default:
		panic(unexpectedAction(loc, action))
	}

	idx, ok := loc.Selected.Index()
	if !ok || idx >= s.projects.Len() {
		return nil
	}

	switch a := action.(type) {
	case Delete:
		_, _ = s.projects.Remove(idx)
		s.touch()
		return nil
	case Rename:
		project, _ := s.projects.At(idx)
		project.Title = a.Title
		_ = s.projects.Set(idx, project)
		s.touch()
		return nil
	case ChangePriority:
		moved, _ := s.projects.ReplaceAt(idx, func(p Project) Project {
			p.Priority = a.Priority
			return p
		})
		s.touch()
		return &SwitchTo{Index: moved}
	}
	return nil
}
