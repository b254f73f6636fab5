package state

import (
	"github.com/charmbracelet/lipgloss"

	"kraban/pkg/config"
	"kraban/pkg/utils"
)

// DueTask is a task with a due date, together with where it lives.
type DueTask struct {
	Task            Task
	Index           int
	ProjectIndex    int
	ProjectTitle    string
	ProjectPriority Priority
	ColumnName      string
	ColumnColor     lipgloss.Color
}

// Compare ranks the task due soonest highest.
func (d DueTask) Compare(other DueTask) int {
	return compareDueDates(d.Task.DueDate, other.Task.DueDate)
}

// Location returns where the underlying task can be acted upon.
func (d DueTask) Location() TasksLocation {
	return TasksLocation{Project: d.ProjectIndex, Column: d.ColumnName, Selected: Select(d.Index)}
}

// CompileDueTasks builds the due task list from every column that is not a
// done column. It does nothing if the list is already up to date.
func (s *State) CompileDueTasks(cfg *config.Config) {
	if s.dueTasks != nil {
		return
	}

	var due []DueTask
	for _, column := range cfg.Columns() {
		if column.DoneColumn {
			continue
		}
		for projectIndex, project := range s.projects.All() {
			for index, task := range project.Columns.Get(column.Name).All() {
				if task.DueDate == nil {
					continue
				}
				due = append(due, DueTask{
					Task:            task,
					Index:           index,
					ProjectIndex:    projectIndex,
					ProjectTitle:    project.Title,
					ProjectPriority: project.Priority,
					ColumnName:      column.Name,
					ColumnColor:     column.Color,
				})
			}
		}
	}

	list := NewSortedList(due)
	s.dueTasks = &list
	utils.Logger().Debug("compiled due tasks", "count", list.Len())
}

// DueTasks returns the compiled due task list. CompileDueTasks must have been
// called since the last change.
func (s *State) DueTasks() SortedList[DueTask] {
	if s.dueTasks == nil {
		panic("due tasks read before being compiled")
	}
	return *s.dueTasks
}

// DueTasksCompiled reports whether the due task list is up to date.
func (s *State) DueTasksCompiled() bool {
	return s.dueTasks != nil
}
