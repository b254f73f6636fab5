package commands

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"cloud.google.com/go/civil"

	"kraban/pkg/config"
	"kraban/pkg/state"
)

// AddOptions describes a task created from the command line.
type AddOptions struct {
	Text       string // title, may carry a +project tag
	Project    string
	Column     string
	Priority   string
	Difficulty string
	Date       string // YYYY-MM-DD
}

// HandleAddTask processes the --add command
func HandleAddTask(s *state.State, cfg *config.Config, statePath string, opts AddOptions) {
	where, err := AddTask(s, cfg, opts)
	if err != nil {
		fmt.Printf("Error adding task: %v\n", err)
		os.Exit(1)
	}

	if err := s.Save(statePath); err != nil {
		fmt.Printf("Error saving state: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Task added to %s\n", where)
}

// AddTask creates a task through the dispatcher, creating its project if
// needed, and returns "project / column".
func AddTask(s *state.State, cfg *config.Config, opts AddOptions) (string, error) {
	project := opts.Project
	if project == "" {
		if tags := extractProjects(opts.Text); len(tags) > 0 {
			project = tags[0]
		}
	}
	if project == "" {
		return "", errors.New("no project given (use --project or a +project tag)")
	}

	title := removeProjectTags(opts.Text)
	if title == "" {
		return "", errors.New("task title is empty")
	}

	column := opts.Column
	if column == "" {
		column = cfg.Tabs[0][0].Name
	}
	if _, ok := cfg.Column(column); !ok {
		return "", fmt.Errorf("unknown column %q", column)
	}

	priority, err := state.ParsePriority(opts.Priority)
	if err != nil {
		return "", err
	}
	difficulty, err := state.ParseDifficulty(opts.Difficulty)
	if err != nil {
		return "", err
	}
	var due *civil.Date
	if opts.Date != "" {
		d, err := civil.ParseDate(opts.Date)
		if err != nil {
			return "", fmt.Errorf("parsing date: %w", err)
		}
		due = &d
	}

	projectIdx := findProject(s, project)
	if projectIdx < 0 {
		projectIdx = s.HandleAction(state.ProjectsLocation{}, state.Create{Title: project}, cfg).Index
	}

	loc := state.TasksLocation{Project: projectIdx, Column: column}
	follow := func(action state.Action) {
		if moved := s.HandleAction(loc, action, cfg); moved != nil {
			loc.Selected = state.Select(moved.Index)
		}
	}
	follow(state.Create{Title: title})
	if priority != state.PriorityNone {
		follow(state.ChangePriority{Priority: priority})
	}
	if difficulty != state.DifficultyNone {
		follow(state.ChangeDifficulty{Difficulty: difficulty})
	}
	if due != nil {
		follow(state.SetDueDate{Date: due})
	}

	p, _ := s.Project(projectIdx)
	return p.Title + " / " + column, nil
}

// findProject returns the index of the project titled name, ignoring case, or -1.
func findProject(s *state.State, name string) int {
	for i, p := range s.Projects().All() {
		if strings.EqualFold(p.Title, name) {
			return i
		}
	}
	return -1
}

var (
	projectTagRe      = regexp.MustCompile(`\+(\w+)`)
	projectTagStripRe = regexp.MustCompile(`\s*\+\w+\s*`)
)

// extractProjects finds all +project tags in text
func extractProjects(text string) []string {
	matches := projectTagRe.FindAllStringSubmatch(text, -1)
	var projects []string
	for _, match := range matches {
		projects = append(projects, match[1])
	}
	return projects
}

// removeProjectTags removes +project tags from text for clean title
func removeProjectTags(text string) string {
	return strings.TrimSpace(projectTagStripRe.ReplaceAllString(text, " "))
}
