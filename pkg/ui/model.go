package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"kraban/pkg/config"
	"kraban/pkg/keymaps"
	"kraban/pkg/state"
	"kraban/pkg/watch"
)

// InputMode represents the current input mode
type InputMode int

const (
	NormalMode InputMode = iota
	InputPromptMode
	PriorityPromptMode
	DifficultyPromptMode
	DueDatePromptMode
	MovePromptMode
	DeleteConfirmMode
)

// ViewMode selects the list the user is looking at.
type ViewMode int

const (
	ProjectsView ViewMode = iota
	DueTasksView
	TasksView
)

// inputAction tells what the text prompt creates or renames.
type inputAction int

const (
	inputCreate inputAction = iota
	inputRename
)

// Model represents the application state
type Model struct {
	state     *state.State
	statePath string
	watcher   *watch.Watcher
	width     int
	height    int
	err       error
	status    string

	// Configuration
	config *config.Config
	keyMap keymaps.KeyMap

	// View state
	viewMode      ViewMode
	projectCursor int
	dueCursor     int
	project       int
	tab           int
	column        int // index inside the tab
	taskCursors   map[string]int
	showKeyHints  bool

	// Prompt state
	mode        InputMode
	input       textinput.Model
	inputAction inputAction
	choice      int
	queued      []InputMode
}

// NewModel creates a new UI model. watcher may be nil, in which case
// external edits of the task file are not picked up.
func NewModel(s *state.State, cfg *config.Config, statePath string, watcher *watch.Watcher) Model {
	input := textinput.New()
	input.Width = 40
	input.CharLimit = 200

	return Model{
		state:        s,
		statePath:    statePath,
		watcher:      watcher,
		config:       cfg,
		keyMap:       keymaps.BuildKeyMap(cfg.KeyMap),
		viewMode:     ProjectsView,
		taskCursors:  make(map[string]int),
		showKeyHints: cfg.ShowKeyHints,
		mode:         NormalMode,
		input:        input,
	}
}

// fileChangedMsg reports that the task file was written by someone else.
type fileChangedMsg struct{}

// waitForChange blocks until the watcher reports a change.
func waitForChange(w *watch.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return fileChangedMsg{}
	}
}

// Init initializes the model (required by Bubble Tea Model interface)
func (m Model) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return waitForChange(m.watcher)
}

// State returns the state the model edits.
func (m Model) State() *state.State {
	return m.state
}
