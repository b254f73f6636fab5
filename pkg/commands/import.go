package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"cloud.google.com/go/civil"

	"kraban/pkg/config"
	"kraban/pkg/state"
)

// HandleImportCommand processes --import commands
func HandleImportCommand(s *state.State, cfg *config.Config, statePath, filename string) {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		os.Exit(1)
	}

	projects, err := Import(s, cfg, filename, content)
	if err != nil {
		fmt.Printf("Error importing %s: %v\n", filename, err)
		os.Exit(1)
	}

	if err := s.Save(statePath); err != nil {
		fmt.Printf("Error saving state: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully imported %d project(s) from %s\n", projects, filename)
}

// Import merges the projects of content into s. .txt and .yaml files use the
// Export formats of the same name; anything else is read as a state document
// of any version, basilk files included.
func Import(s *state.State, cfg *config.Config, filename string, content []byte) (int, error) {
	var imported *state.State
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		imported, err = parseText(content, cfg)
	case ".yaml", ".yml":
		imported, err = parseYAML(content, cfg)
	default:
		imported, err = state.Decode(content, cfg)
	}
	if err != nil {
		return 0, err
	}
	return s.Merge(imported), nil
}

var (
	projectLineRe = regexp.MustCompile(`^(.+?):(?:\s+!(\w+))?$`)
	taskLineRe    = regexp.MustCompile(`^-\s+\[[ xX]\]\s+([^:]+):\s*(.*)$`)
)

// parseText reads the Export text format. Every task goes through the
// dispatcher, so auto due dates apply unless the line carries an @date.
func parseText(content []byte, cfg *config.Config) (*state.State, error) {
	s := &state.State{}
	project := -1

	for n, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if match := taskLineRe.FindStringSubmatch(line); match != nil {
			if project < 0 {
				return nil, fmt.Errorf("line %d: task outside of a project", n+1)
			}
			if err := addTextTask(s, cfg, project, strings.TrimSpace(match[1]), match[2]); err != nil {
				return nil, fmt.Errorf("line %d: %w", n+1, err)
			}
			continue
		}

		match := projectLineRe.FindStringSubmatch(line)
		if match == nil {
			return nil, fmt.Errorf("line %d: expected a project or a task: %q", n+1, line)
		}
		project = s.HandleAction(state.ProjectsLocation{}, state.Create{Title: match[1]}, cfg).Index
		if match[2] != "" {
			priority, err := state.ParsePriority(match[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", n+1, err)
			}
			project = s.HandleAction(state.ProjectsLocation{Selected: state.Select(project)}, state.ChangePriority{Priority: priority}, cfg).Index
		}
	}
	return s, nil
}

func addTextTask(s *state.State, cfg *config.Config, project int, column, rest string) error {
	words := strings.Fields(rest)
	var actions []state.Action
	var due *civil.Date

	// attributes trail the title
	for len(words) > 1 {
		last := words[len(words)-1]
		if len(last) < 2 || !strings.ContainsRune("!~@", rune(last[0])) {
			break
		}
		value := last[1:]
		switch last[0] {
		case '!':
			priority, err := state.ParsePriority(value)
			if err != nil {
				return err
			}
			actions = append(actions, state.ChangePriority{Priority: priority})
		case '~':
			difficulty, err := state.ParseDifficulty(value)
			if err != nil {
				return err
			}
			actions = append(actions, state.ChangeDifficulty{Difficulty: difficulty})
		case '@':
			d, err := civil.ParseDate(value)
			if err != nil {
				return fmt.Errorf("parsing date: %w", err)
			}
			due = &d
		}
		words = words[:len(words)-1]
	}

	title := strings.Join(words, " ")
	if title == "" {
		return fmt.Errorf("task in column %q has no title", column)
	}

	// the date goes last so a priority cannot replace it
	if due != nil {
		actions = append(actions, state.SetDueDate{Date: due})
	}
	createTask(s, cfg, project, column, title, actions)
	return nil
}
