package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"

	"kraban/pkg/cli"
	"kraban/pkg/config"
	"kraban/pkg/state"
	"kraban/pkg/ui"
	"kraban/pkg/utils"
	"kraban/pkg/watch"
)

func main() {
	// Parse command line flags
	args := cli.ParseArgs()

	utils.InitLogger(args.Verbose)
	defer utils.CloseLogger()

	if cli.HandleConfigCommands(args) {
		return
	}

	// Load configuration
	cfg, err := config.Load(args.ConfigPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	statePath := utils.ExpandHome(args.StatePath)
	if statePath == "" {
		statePath, err = state.DefaultPath()
		if err != nil {
			fmt.Printf("Error locating task file: %v\n", err)
			os.Exit(1)
		}
	}

	// Load tasks
	s, err := state.Load(statePath, cfg)
	if err != nil {
		fmt.Printf("Error loading tasks from %s: %v\n", statePath, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Handle CLI commands if any
	if cli.HandleCommands(ctx, args, s, cfg, statePath) {
		return
	}

	// A migrated legacy file is rewritten in the current format right away
	if _, err := s.SaveIfNeeded(statePath); err != nil {
		fmt.Printf("Error saving tasks: %v\n", err)
		os.Exit(1)
	}

	watcher, err := watch.New(statePath)
	if err == nil {
		err = watcher.Start(ctx)
	}
	if err != nil {
		utils.Log("Live reload unavailable: %v", err)
		if watcher != nil {
			_ = watcher.Stop()
		}
		watcher = nil
	} else {
		defer watcher.Stop()
	}

	// Create and run the Bubble Tea program
	p := tea.NewProgram(ui.NewModel(s, cfg, statePath, watcher), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
