package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"kraban/pkg/commands"
	"kraban/pkg/config"
	"kraban/pkg/database"
	"kraban/pkg/state"
	"kraban/pkg/utils"
)

// Args represents parsed command line arguments
type Args struct {
	ConfigPath string
	StatePath  string
	Verbose    bool

	// Config operations
	PrintDefaultConfig bool
	WriteDefaultConfig bool

	// Task operations
	AddTask        string
	ProjectFlag    string
	ColumnFlag     string
	PriorityFlag   string
	DifficultyFlag string
	DateFlag       string
	Due            bool

	// Database operations
	DatabaseCmd string
	DatabaseDSN string
	YesFlag     bool
	DoneFlag    bool
	UndoneFlag  bool

	// Import/Export operations
	ImportFile string
	ExportFile string
	TypeFlag   string
}

// ParseArgs parses command line arguments and returns Args struct
func ParseArgs() *Args {
	return parseArgs(flag.CommandLine, os.Args[1:])
}

func parseArgs(fs *flag.FlagSet, arguments []string) *Args {
	args := &Args{}

	fs.StringVar(&args.ConfigPath, "config", "", "Path to configuration file")
	fs.StringVar(&args.StatePath, "state", "", "Path to the task file")
	fs.BoolVar(&args.Verbose, "verbose", false, "Enable verbose logging")

	// Config operations
	fs.BoolVar(&args.PrintDefaultConfig, "print-default-config", false, "Print the built-in configuration")
	fs.BoolVar(&args.WriteDefaultConfig, "write-default-config", false, "Write the built-in configuration to the config dir")

	// Task operations
	fs.StringVar(&args.AddTask, "add", "", "Add a new task (a +project tag selects the project)")
	fs.StringVar(&args.ProjectFlag, "project", "", "Project of the new task, or filter by project")
	fs.StringVar(&args.ColumnFlag, "column", "", "Column of the new task, or filter by column")
	fs.StringVar(&args.PriorityFlag, "priority", "", "Priority of the new task (low, medium, high)")
	fs.StringVar(&args.DifficultyFlag, "difficulty", "", "Difficulty of the new task (easy, normal, hard)")
	fs.StringVar(&args.DateFlag, "date", "", "Due date for task (YYYY-MM-DD format)")
	fs.BoolVar(&args.Due, "due", false, "List due tasks and exit")

	// Database operations
	fs.StringVar(&args.DatabaseCmd, "database", "", "Database command (export, import, purge)")
	fs.StringVar(&args.DatabaseDSN, "db", "", "SQLite path or postgres:// URL of the mirror database")
	fs.BoolVar(&args.YesFlag, "yes", false, "Skip confirmation")
	fs.BoolVar(&args.DoneFlag, "done", false, "Filter done tasks")
	fs.BoolVar(&args.UndoneFlag, "undone", false, "Filter undone tasks")

	// Import/Export operations
	fs.StringVar(&args.ImportFile, "import", "", "Import tasks from file")
	fs.StringVar(&args.ExportFile, "export", "", "Export tasks to file")
	fs.StringVar(&args.TypeFlag, "type", "json", "Export file type (json, txt, yaml)")

	_ = fs.Parse(arguments)
	return args
}

// HandleConfigCommands processes the commands that need no loaded config or
// state and returns true if one was handled
func HandleConfigCommands(args *Args) bool {
	if args.PrintDefaultConfig {
		config.PrintDefault()
		return true
	}

	if args.WriteDefaultConfig {
		path, err := config.WriteDefault()
		if err != nil {
			fmt.Printf("Error writing default config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Default config written to %s\n", path)
		return true
	}

	return false
}

// HandleCommands processes CLI commands and returns true if a command was handled
func HandleCommands(ctx context.Context, args *Args, s *state.State, cfg *config.Config, statePath string) bool {
	if args.AddTask != "" {
		commands.HandleAddTask(s, cfg, statePath, commands.AddOptions{
			Text:       args.AddTask,
			Project:    args.ProjectFlag,
			Column:     args.ColumnFlag,
			Priority:   args.PriorityFlag,
			Difficulty: args.DifficultyFlag,
			Date:       args.DateFlag,
		})
		return true
	}

	if args.Due {
		commands.HandleDueCommand(s, cfg)
		return true
	}

	if args.DatabaseCmd != "" {
		dsn, err := databaseDSN(args.DatabaseDSN)
		if err != nil {
			fmt.Printf("Error locating database: %v\n", err)
			os.Exit(1)
		}
		db, err := database.Connect(dsn)
		if err != nil {
			fmt.Printf("Error connecting to database: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := database.EnsureSchema(db); err != nil {
			fmt.Printf("Error creating database schema: %v\n", err)
			os.Exit(1)
		}

		commands.HandleDatabaseCommand(ctx, db, s, cfg, statePath, commands.DatabaseOptions{
			Command: args.DatabaseCmd,
			Filter: database.TaskFilter{
				Project:    args.ProjectFlag,
				Column:     args.ColumnFlag,
				DoneOnly:   args.DoneFlag,
				UndoneOnly: args.UndoneFlag,
			},
			SkipConfirm: args.YesFlag,
		})
		return true
	}

	if args.ImportFile != "" {
		commands.HandleImportCommand(s, cfg, statePath, args.ImportFile)
		return true
	}

	if args.ExportFile != "" {
		commands.HandleExportCommand(s, cfg, args.ExportFile, args.TypeFlag)
		return true
	}

	// No CLI command was handled
	return false
}

// databaseDSN defaults the mirror database to a SQLite file next to the task file.
func databaseDSN(dsn string) (string, error) {
	if dsn != "" {
		return dsn, nil
	}
	dir, err := utils.GetDir(utils.StateDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "kraban.db"), nil
}
