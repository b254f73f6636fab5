package state

import (
	"fmt"

	"cloud.google.com/go/civil"
)

// Selection is an optional index into a list.
type Selection struct {
	index int
	valid bool
}

// NoSelection selects nothing.
var NoSelection = Selection{}

// Select selects the element at idx.
func Select(idx int) Selection {
	return Selection{index: idx, valid: idx >= 0}
}

// Index returns the selected index and whether there is one.
func (s Selection) Index() (int, bool) {
	return s.index, s.valid
}

func (s Selection) String() string {
	if !s.valid {
		return "none"
	}
	return fmt.Sprint(s.index)
}

// Location identifies where an action is performed.
type Location interface {
	location()
}

// ProjectsLocation is the project list.
type ProjectsLocation struct {
	Selected Selection
}

// DueTasksLocation is the due task list. It is read-only.
type DueTasksLocation struct {
	Selected Selection
}

// TasksLocation is a column of a project.
type TasksLocation struct {
	Project  int
	Column   string
	Selected Selection
}

func (ProjectsLocation) location() {}
func (DueTasksLocation) location() {}
func (TasksLocation) location()    {}

// Action is a mutation of the state.
type Action interface {
	action()
}

type (
	Delete           struct{}
	ChangePriority   struct{ Priority Priority }
	ChangeDifficulty struct{ Difficulty Difficulty }
	Create           struct{ Title string }
	Rename           struct{ Title string }
	MoveToColumn     struct{ Column string }
	// SetDueDate sets the due date by hand. A nil Date clears it.
	SetDueDate struct{ Date *civil.Date }
)

func (Delete) action()           {}
func (ChangePriority) action()   {}
func (ChangeDifficulty) action() {}
func (Create) action()           {}
func (Rename) action()           {}
func (MoveToColumn) action()     {}
func (SetDueDate) action()       {}

// SwitchTo reports the index the changed item now occupies.
type SwitchTo struct {
	Index int
}

func unexpectedAction(loc Location, action Action) string {
	return fmt.Sprintf("cannot perform %T in %T", action, loc)
}
