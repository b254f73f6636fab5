package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"kraban/pkg/config"
	"kraban/pkg/state"
)

// HandleExportCommand processes --export commands
func HandleExportCommand(s *state.State, cfg *config.Config, filename, exportType string) {
	content, tasks, err := Export(s, cfg, exportType)
	if err != nil {
		fmt.Printf("Error exporting tasks: %v\n", err)
		os.Exit(1)
	}

	// Ensure directory exists
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Printf("Error creating directory: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(filename, content, 0644); err != nil {
		fmt.Printf("Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully exported %d task(s) to %s\n", tasks, filename)
}

// Export renders the state as json (the state file format), txt or yaml, and
// returns the number of tasks written.
//
// The txt format is one "title:" line per project followed by its tasks:
//
//	- [ ] Column: title !priority ~difficulty @YYYY-MM-DD
//
// Tasks in done columns are checked.
func Export(s *state.State, cfg *config.Config, exportType string) ([]byte, int, error) {
	tasks := 0
	for _, p := range s.Projects().All() {
		tasks += p.TaskCount()
	}

	switch exportType {
	case "json":
		content, err := s.Encode()
		return content, tasks, err
	case "txt":
		var lines []string
		for _, p := range s.Projects().All() {
			header := p.Title + ":"
			if p.Priority != state.PriorityNone {
				header = fmt.Sprintf("%s !%s", header, strings.ToLower(p.Priority.String()))
			}
			lines = append(lines, header)
			for _, name := range p.ColumnNames(cfg.ColumnNames()) {
				column, _ := cfg.Column(name)
				for _, task := range p.Columns.Get(name).All() {
					lines = append(lines, taskLine(name, column.DoneColumn, task))
				}
			}
			lines = append(lines, "")
		}
		return []byte(strings.Join(lines, "\n")), tasks, nil
	case "yaml":
		content, err := exportYAML(s, cfg)
		return content, tasks, err
	}
	return nil, 0, fmt.Errorf("unknown export type: %s", exportType)
}

func taskLine(column string, done bool, task state.Task) string {
	status := " "
	if done {
		status = "x"
	}
	line := fmt.Sprintf("- [%s] %s: %s", status, column, task.Title)
	if task.Priority != state.PriorityNone {
		line += " !" + strings.ToLower(task.Priority.String())
	}
	if task.Difficulty != state.DifficultyNone {
		line += " ~" + strings.ToLower(task.Difficulty.String())
	}
	if task.DueDate != nil {
		line += " @" + task.DueDate.String()
	}
	return line
}
