package database

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"

	"kraban/pkg/config"
	"kraban/pkg/state"
	"kraban/pkg/utils"
)

// ExportState replaces the mirror contents with the given state in a single
// transaction. It returns the number of projects and tasks written.
func ExportState(ctx context.Context, db *DB, s *state.State, cfg *config.Config) (int, int, error) {
	projects, tasks := Rows(s, cfg)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, err
	}
	defer tx.Rollback()

	for _, stmt := range []string{"DELETE FROM tasks", "DELETE FROM projects"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return 0, 0, fmt.Errorf("clear mirror: %w", err)
		}
	}

	for _, p := range projects {
		if _, err := tx.ExecContext(ctx,
			db.rebind(`INSERT INTO projects (id, title, priority) VALUES (?, ?, ?)`),
			p.ID, p.Title, p.Priority,
		); err != nil {
			return 0, 0, fmt.Errorf("insert project %q: %w", p.Title, err)
		}
	}

	for _, t := range tasks {
		if _, err := tx.ExecContext(ctx,
			db.rebind(`INSERT INTO tasks (project_id, column_name, position, title, priority, difficulty, due_date, due_date_manually_set, done)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
			t.ProjectID, t.ColumnName, t.Position, t.Title, t.Priority, t.Difficulty, t.DueDate, t.DueDateManuallySet, t.Done,
		); err != nil {
			return 0, 0, fmt.Errorf("insert task %q: %w", t.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, err
	}
	utils.Log("Exported %d projects and %d tasks to %s", len(projects), len(tasks), db.Dialect)
	return len(projects), len(tasks), nil
}

// LoadTasks retrieves the tasks matching filter, grouped by project and column.
func LoadTasks(ctx context.Context, db *DB, filter TaskFilter) ([]TaskRow, error) {
	query := `
		SELECT t.project_id, t.column_name, t.position, t.title, t.priority, t.difficulty,
		       t.due_date, t.due_date_manually_set, t.done
		FROM tasks t JOIN projects p ON p.id = t.project_id
	`
	where, args := buildWhereClause(filter, true)
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY t.project_id, t.column_name, t.position"

	rows, err := db.QueryContext(ctx, db.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []TaskRow
	for rows.Next() {
		var item TaskRow
		if err := rows.Scan(
			&item.ProjectID,
			&item.ColumnName,
			&item.Position,
			&item.Title,
			&item.Priority,
			&item.Difficulty,
			&item.DueDate,
			&item.DueDateManuallySet,
			&item.Done,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	utils.Log("Loaded %d tasks from database", len(items))
	return items, nil
}

// LoadState rebuilds a state from the mirror.
func LoadState(ctx context.Context, db *DB) (*state.State, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, title, priority FROM projects ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[int]int)
	var projects []state.Project
	for rows.Next() {
		var p ProjectRow
		if err := rows.Scan(&p.ID, &p.Title, &p.Priority); err != nil {
			return nil, err
		}
		priority, err := state.ParsePriority(p.Priority.String)
		if err != nil {
			return nil, fmt.Errorf("project %q: %w", p.Title, err)
		}
		byID[p.ID] = len(projects)
		projects = append(projects, state.Project{Title: p.Title, Priority: priority})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tasks, err := LoadTasks(ctx, db, TaskFilter{})
	if err != nil {
		return nil, err
	}
	for _, row := range tasks {
		idx, ok := byID[row.ProjectID]
		if !ok {
			return nil, fmt.Errorf("task %q references missing project %d", row.Title, row.ProjectID)
		}
		task, err := row.task()
		if err != nil {
			return nil, err
		}
		projects[idx].Columns.GetMut(row.ColumnName).Insert(task)
	}
	return state.New(projects), nil
}

func (row TaskRow) task() (state.Task, error) {
	priority, err := state.ParsePriority(row.Priority.String)
	if err != nil {
		return state.Task{}, fmt.Errorf("task %q: %w", row.Title, err)
	}
	difficulty, err := state.ParseDifficulty(row.Difficulty.String)
	if err != nil {
		return state.Task{}, fmt.Errorf("task %q: %w", row.Title, err)
	}
	task := state.Task{
		Title:              row.Title,
		Priority:           priority,
		Difficulty:         difficulty,
		DueDateManuallySet: row.DueDateManuallySet,
	}
	if row.DueDate.Valid {
		due, err := civil.ParseDate(row.DueDate.String)
		if err != nil {
			return state.Task{}, fmt.Errorf("task %q: %w", row.Title, err)
		}
		task.DueDate = &due
	}
	return task, nil
}

// Purge deletes the tasks matching filter and returns how many were removed.
func Purge(ctx context.Context, db *DB, filter TaskFilter) (int64, error) {
	query := "DELETE FROM tasks"
	where, args := buildWhereClause(filter, false)
	if where != "" {
		query += " WHERE " + where
	}

	result, err := db.ExecContext(ctx, db.rebind(query), args...)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	utils.Log("Purged %d tasks", affected)
	return affected, nil
}

// buildWhereClause builds a parameterized where clause on the tasks table.
// With joined set the query aliases tasks as t and projects as p; DELETE has
// no join, so the project is matched with a sub-select instead.
func buildWhereClause(filter TaskFilter, joined bool) (string, []any) {
	var conditions []string
	var args []any

	prefix := ""
	if joined {
		prefix = "t."
	}

	if filter.Project != "" {
		if joined {
			conditions = append(conditions, "p.title = ?")
		} else {
			conditions = append(conditions, "project_id IN (SELECT id FROM projects WHERE title = ?)")
		}
		args = append(args, filter.Project)
	}
	if filter.Column != "" {
		conditions = append(conditions, prefix+"column_name = ?")
		args = append(args, filter.Column)
	}
	if filter.DoneOnly {
		conditions = append(conditions, prefix+"done = ?")
		args = append(args, true)
	} else if filter.UndoneOnly {
		conditions = append(conditions, prefix+"done = ?")
		args = append(args, false)
	}

	where := strings.Join(conditions, " AND ")
	utils.Log("Built where clause: %s", where)
	return where, args
}
