package commands

import (
	"fmt"
	"io"
	"os"

	"kraban/pkg/config"
	"kraban/pkg/state"
)

// HandleDueCommand processes --due: it lists the due tasks, soonest first
func HandleDueCommand(s *state.State, cfg *config.Config) {
	if WriteDueTasks(os.Stdout, s, cfg) == 0 {
		fmt.Println("Nothing is due.")
	}
}

// WriteDueTasks writes one line per due task and returns how many it wrote.
func WriteDueTasks(w io.Writer, s *state.State, cfg *config.Config) int {
	s.CompileDueTasks(cfg)
	due := s.DueTasks()
	for _, d := range due.All() {
		fmt.Fprintf(w, "%s  %s / %s: %s\n", d.Task.DueDate, d.ProjectTitle, d.ColumnName, d.Task.Title)
	}
	return due.Len()
}
