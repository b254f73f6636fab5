package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"kraban/pkg/config"
	"kraban/pkg/database"
	"kraban/pkg/state"
)

// DatabaseOptions carries the flags of a --database command.
type DatabaseOptions struct {
	Command     string // export, import or purge
	Filter      database.TaskFilter
	SkipConfirm bool
}

// HandleDatabaseCommand processes --database commands against the SQL mirror
func HandleDatabaseCommand(ctx context.Context, db *database.DB, s *state.State, cfg *config.Config, statePath string, opts DatabaseOptions) {
	switch opts.Command {
	case "export":
		projects, tasks, err := database.ExportState(ctx, db, s, cfg)
		if err != nil {
			fmt.Printf("Error exporting to database: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Successfully exported %d project(s) and %d task(s)\n", projects, tasks)

	case "import":
		imported, err := database.LoadState(ctx, db)
		if err != nil {
			fmt.Printf("Error reading database: %v\n", err)
			os.Exit(1)
		}
		projects := s.Merge(imported)
		if err := s.Save(statePath); err != nil {
			fmt.Printf("Error saving state: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Successfully imported %d project(s) from the database\n", projects)

	case "purge":
		// Show confirmation unless --yes flag is used
		if !opts.SkipConfirm {
			fmt.Print("Are you sure you want to delete these tasks from the database? (y/N): ")
			var response string
			fmt.Scanln(&response)
			if strings.ToLower(response) != "y" && strings.ToLower(response) != "yes" {
				fmt.Println("Operation cancelled.")
				return
			}
		}

		rowsAffected, err := database.Purge(ctx, db, opts.Filter)
		if err != nil {
			fmt.Printf("Error purging tasks: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Successfully deleted %d task(s)\n", rowsAffected)

	default:
		fmt.Printf("Unknown database command: %s\n", opts.Command)
		os.Exit(1)
	}
}
