package state

import (
	"kraban/pkg/config"
	"kraban/pkg/utils"
)

// State is every project the user tracks. It is changed only through HandleAction.
type State struct {
	projects SortedList[Project]
	dueTasks *SortedList[DueTask]

	needsSave bool
	// digest of the file contents last loaded or saved
	digest string
}

// New returns a state holding the given projects.
func New(projects []Project) *State {
	return &State{projects: NewSortedList(projects)}
}

// Projects returns the projects from the highest priority down.
func (s *State) Projects() SortedList[Project] {
	return s.projects
}

// Project returns the project at idx.
func (s *State) Project(idx int) (Project, bool) {
	return s.projects.At(idx)
}

// Tasks returns the tasks of a column of the project at idx. Unknown projects
// and columns read as empty.
func (s *State) Tasks(project int, column string) Column {
	p, ok := s.projects.At(project)
	if !ok {
		return Column{}
	}
	return p.Columns.Get(column)
}

// NeedsSave reports whether the state changed since it was last loaded or saved.
func (s *State) NeedsSave() bool {
	return s.needsSave
}

// HandleAction applies action at loc. It returns where the changed item now
// sits when its position may have moved, nil otherwise.
func (s *State) HandleAction(loc Location, action Action, cfg *config.Config) *SwitchTo {
	utils.Logger().Debug("handling action", "location", loc, "action", action)

	switch l := loc.(type) {
	case ProjectsLocation:
		return s.handleProjectAction(l, action)
	case TasksLocation:
		return s.handleTaskAction(l, action, cfg)
	case DueTasksLocation:
		return nil
	}
	panic(unexpectedAction(loc, action))
}

// Merge inserts every project of other into s.
func (s *State) Merge(other *State) int {
	for _, project := range other.projects.All() {
		s.projects.Insert(project)
	}
	if other.projects.Len() > 0 {
		s.touch()
	}
	return other.projects.Len()
}

// touch records that the state changed.
func (s *State) touch() {
	s.dueTasks = nil
	s.needsSave = true
}

func (s *State) projectMut(idx int) *Project {
	return s.projects.ref(idx)
}
