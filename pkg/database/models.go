package database

import (
	"database/sql"

	"kraban/pkg/config"
	"kraban/pkg/state"
)

// ProjectRow is a project as stored in the projects table. ID is the
// project's position in the state.
type ProjectRow struct {
	ID       int            `db:"id"`
	Title    string         `db:"title"`
	Priority sql.NullString `db:"priority"`
}

// TaskRow is a task as stored in the tasks table.
type TaskRow struct {
	ProjectID          int            `db:"project_id"`
	ColumnName         string         `db:"column_name"`
	Position           int            `db:"position"`
	Title              string         `db:"title"`
	Priority           sql.NullString `db:"priority"`
	Difficulty         sql.NullString `db:"difficulty"`
	DueDate            sql.NullString `db:"due_date"`
	DueDateManuallySet bool           `db:"due_date_manually_set"`
	Done               bool           `db:"done"`
}

// TaskFilter narrows the tasks read or purged. Zero fields match everything.
type TaskFilter struct {
	Project    string
	Column     string
	DoneOnly   bool
	UndoneOnly bool
}

func nullString(s string, valid bool) sql.NullString {
	return sql.NullString{String: s, Valid: valid}
}

// Rows flattens the state into table rows. Columns are visited in config
// order first, then any column the config does not know, alphabetically.
func Rows(s *state.State, cfg *config.Config) ([]ProjectRow, []TaskRow) {
	var projects []ProjectRow
	var tasks []TaskRow
	order := cfg.ColumnNames()

	for id, project := range s.Projects().All() {
		projects = append(projects, ProjectRow{
			ID:       id,
			Title:    project.Title,
			Priority: nullString(project.Priority.String(), project.Priority != state.PriorityNone),
		})

		for _, name := range project.ColumnNames(order) {
			column, _ := cfg.Column(name)
			for position, task := range project.Columns.Get(name).All() {
				row := TaskRow{
					ProjectID:          id,
					ColumnName:         name,
					Position:           position,
					Title:              task.Title,
					Priority:           nullString(task.Priority.String(), task.Priority != state.PriorityNone),
					Difficulty:         nullString(task.Difficulty.String(), task.Difficulty != state.DifficultyNone),
					DueDateManuallySet: task.DueDateManuallySet,
					Done:               column.DoneColumn,
				}
				if task.DueDate != nil {
					row.DueDate = nullString(task.DueDate.String(), true)
				}
				tasks = append(tasks, row)
			}
		}
	}
	return projects, tasks
}
