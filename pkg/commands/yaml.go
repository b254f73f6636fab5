package commands

import (
	"bytes"
	"fmt"

	"cloud.google.com/go/civil"
	"gopkg.in/yaml.v3"

	"kraban/pkg/config"
	"kraban/pkg/state"
)

// yamlProject is the YAML export of a project. Like the txt format it is
// meant for reading and editing by hand.
type yamlProject struct {
	Title    string     `yaml:"title"`
	Priority string     `yaml:"priority,omitempty"`
	Tasks    []yamlTask `yaml:"tasks,omitempty"`
}

type yamlTask struct {
	Title      string `yaml:"title"`
	Column     string `yaml:"column"`
	Done       bool   `yaml:"done,omitempty"`
	Priority   string `yaml:"priority,omitempty"`
	Difficulty string `yaml:"difficulty,omitempty"`
	DueDate    string `yaml:"due_date,omitempty"`
}

func label[T interface {
	comparable
	fmt.Stringer
}](value, none T) string {
	if value == none {
		return ""
	}
	return value.String()
}

func exportYAML(s *state.State, cfg *config.Config) ([]byte, error) {
	var projects []yamlProject
	for _, p := range s.Projects().All() {
		project := yamlProject{Title: p.Title, Priority: label(p.Priority, state.PriorityNone)}
		for _, name := range p.ColumnNames(cfg.ColumnNames()) {
			column, _ := cfg.Column(name)
			for _, task := range p.Columns.Get(name).All() {
				t := yamlTask{
					Title:      task.Title,
					Column:     name,
					Done:       column.DoneColumn,
					Priority:   label(task.Priority, state.PriorityNone),
					Difficulty: label(task.Difficulty, state.DifficultyNone),
				}
				if task.DueDate != nil {
					t.DueDate = task.DueDate.String()
				}
				project.Tasks = append(project.Tasks, t)
			}
		}
		projects = append(projects, project)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(projects); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// parseYAML reads the YAML export. Like the txt import, tasks are created
// through the dispatcher. The done flag is informational only.
func parseYAML(content []byte, cfg *config.Config) (*state.State, error) {
	var projects []yamlProject
	if err := yaml.Unmarshal(content, &projects); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	s := &state.State{}
	for i, p := range projects {
		if p.Title == "" {
			return nil, fmt.Errorf("project %d: missing title", i)
		}
		priority, err := state.ParsePriority(p.Priority)
		if err != nil {
			return nil, fmt.Errorf("project %q: %w", p.Title, err)
		}

		idx := s.HandleAction(state.ProjectsLocation{}, state.Create{Title: p.Title}, cfg).Index
		if priority != state.PriorityNone {
			idx = s.HandleAction(state.ProjectsLocation{Selected: state.Select(idx)}, state.ChangePriority{Priority: priority}, cfg).Index
		}

		for j, t := range p.Tasks {
			actions, err := t.actions()
			if err != nil {
				return nil, fmt.Errorf("project %q task %d: %w", p.Title, j, err)
			}
			if t.Title == "" || t.Column == "" {
				return nil, fmt.Errorf("project %q task %d: title and column are required", p.Title, j)
			}
			createTask(s, cfg, idx, t.Column, t.Title, actions)
		}
	}
	return s, nil
}

func (t yamlTask) actions() ([]state.Action, error) {
	var actions []state.Action
	priority, err := state.ParsePriority(t.Priority)
	if err != nil {
		return nil, err
	}
	if priority != state.PriorityNone {
		actions = append(actions, state.ChangePriority{Priority: priority})
	}
	difficulty, err := state.ParseDifficulty(t.Difficulty)
	if err != nil {
		return nil, err
	}
	if difficulty != state.DifficultyNone {
		actions = append(actions, state.ChangeDifficulty{Difficulty: difficulty})
	}
	if t.DueDate != "" {
		d, err := civil.ParseDate(t.DueDate)
		if err != nil {
			return nil, fmt.Errorf("parsing date: %w", err)
		}
		actions = append(actions, state.SetDueDate{Date: &d})
	}
	return actions, nil
}

// createTask creates a task and applies actions to it, following it as it moves.
func createTask(s *state.State, cfg *config.Config, project int, column, title string, actions []state.Action) {
	loc := state.TasksLocation{Project: project, Column: column}
	loc.Selected = state.Select(s.HandleAction(loc, state.Create{Title: title}, cfg).Index)
	for _, action := range actions {
		if moved := s.HandleAction(loc, action, cfg); moved != nil {
			loc.Selected = state.Select(moved.Index)
		}
	}
}
