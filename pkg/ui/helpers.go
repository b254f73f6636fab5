package ui

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/charmbracelet/lipgloss"

	"kraban/pkg/config"
	"kraban/pkg/state"
	"kraban/pkg/utils"
)

// today is the date due dates are colored against.
var today = func() civil.Date {
	return civil.DateOf(time.Now())
}

func selection(cursor, length int) state.Selection {
	if length == 0 {
		return state.NoSelection
	}
	return state.Select(cursor)
}

// currentTab returns the columns of the focused tab.
func (m Model) currentTab() config.TabConfig {
	return m.config.Tabs[m.tab]
}

// currentColumn returns the focused column of the task view.
func (m Model) currentColumn() config.ColumnConfig {
	return m.currentTab()[m.column]
}

func (m Model) taskCount() int {
	return m.state.Tasks(m.project, m.currentColumn().Name).Len()
}

// location returns where actions currently apply.
func (m Model) location() state.Location {
	switch m.viewMode {
	case DueTasksView:
		m.state.CompileDueTasks(m.config)
		return state.DueTasksLocation{Selected: selection(m.dueCursor, m.state.DueTasks().Len())}
	case TasksView:
		name := m.currentColumn().Name
		return state.TasksLocation{
			Project:  m.project,
			Column:   name,
			Selected: selection(m.taskCursors[name], m.taskCount()),
		}
	}
	return state.ProjectsLocation{Selected: selection(m.projectCursor, m.state.Projects().Len())}
}

// hasSelection reports whether the focused list has an item under the cursor.
func (m Model) hasSelection() bool {
	var sel state.Selection
	switch loc := m.location().(type) {
	case state.ProjectsLocation:
		sel = loc.Selected
	case state.DueTasksLocation:
		sel = loc.Selected
	case state.TasksLocation:
		sel = loc.Selected
	}
	_, ok := sel.Index()
	return ok
}

// dispatch applies action at the current location, follows the item if it
// moved and saves the state.
func (m *Model) dispatch(action state.Action) {
	loc := m.location()
	moved := m.state.HandleAction(loc, action, m.config)
	if moved != nil {
		switch l := loc.(type) {
		case state.ProjectsLocation:
			m.projectCursor = moved.Index
		case state.TasksLocation:
			target := l.Column
			if move, ok := action.(state.MoveToColumn); ok {
				target = move.Column
			}
			m.taskCursors[target] = moved.Index
		}
	}
	m.clampCursors()
	m.save()
}

func (m *Model) save() {
	saved, err := m.state.SaveIfNeeded(m.statePath)
	if err != nil {
		utils.Logger().Error("saving state", "err", err)
		m.err = fmt.Errorf("error saving state: %w", err)
		return
	}
	if saved {
		m.err = nil
	}
}

// reload picks up changes another process made to the task file.
func (m *Model) reload() {
	changed, err := m.state.ChangedOnDisk(m.statePath)
	if err != nil {
		m.err = err
		return
	}
	if !changed {
		return
	}

	s, err := state.Load(m.statePath, m.config)
	if err != nil {
		m.err = fmt.Errorf("error reloading state: %w", err)
		return
	}
	utils.Logger().Info("reloaded state after external change", "path", m.statePath)
	m.state = s
	m.status = "Reloaded " + m.statePath
	if m.viewMode == TasksView && m.project >= s.Projects().Len() {
		m.viewMode = ProjectsView
	}
	m.clampCursors()
}

func clamp(cursor, length int) int {
	if cursor >= length {
		cursor = length - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

func (m *Model) clampCursors() {
	m.projectCursor = clamp(m.projectCursor, m.state.Projects().Len())
	m.state.CompileDueTasks(m.config)
	m.dueCursor = clamp(m.dueCursor, m.state.DueTasks().Len())
	if m.viewMode == TasksView {
		for _, column := range m.config.Columns() {
			name := column.Name
			m.taskCursors[name] = clamp(m.taskCursors[name], m.state.Tasks(m.project, name).Len())
		}
	}
}

// moveCursor moves the cursor of the focused list by delta.
func (m *Model) moveCursor(delta int) {
	switch m.viewMode {
	case ProjectsView:
		m.projectCursor = clamp(m.projectCursor+delta, m.state.Projects().Len())
	case DueTasksView:
		m.state.CompileDueTasks(m.config)
		m.dueCursor = clamp(m.dueCursor+delta, m.state.DueTasks().Len())
	case TasksView:
		name := m.currentColumn().Name
		m.taskCursors[name] = clamp(m.taskCursors[name]+delta, m.taskCount())
	}
}

// openProject switches to the task view of a project.
func (m *Model) openProject(project int) {
	m.viewMode = TasksView
	m.project = project
	m.tab = 0
	m.column = 0
	m.taskCursors = make(map[string]int)
}

// openDueTask switches to the task view with the due task focused.
func (m *Model) openDueTask(due state.DueTask) {
	m.openProject(due.ProjectIndex)
	for t, tab := range m.config.Tabs {
		if c := tab.ColumnIndex(due.ColumnName); c >= 0 {
			m.tab, m.column = t, c
		}
	}
	m.taskCursors[due.ColumnName] = due.Index
}

// moveTargets lists the columns a task can be moved to.
func (m Model) moveTargets() []config.ColumnConfig {
	var targets []config.ColumnConfig
	current := m.currentColumn().Name
	for _, column := range m.config.Columns() {
		if column.Name != current {
			targets = append(targets, column)
		}
	}
	return targets
}

// openTextPrompt opens the title prompt, prefilled when renaming.
func (m *Model) openTextPrompt(action inputAction, value string) {
	m.mode = InputPromptMode
	m.inputAction = action
	m.input.Reset()
	m.input.Placeholder = "Title"
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

// openPrompt opens an enum or date prompt for the selected item.
func (m *Model) openPrompt(mode InputMode) {
	m.mode = mode
	m.choice = 0

	switch mode {
	case PriorityPromptMode:
		if p, ok := m.selectedPriority(); ok {
			m.choice = int(p)
		}
	case DifficultyPromptMode:
		if task, ok := m.selectedTask(); ok {
			m.choice = int(task.Difficulty)
		}
	case DueDatePromptMode:
		m.input.Reset()
		m.input.Placeholder = "YYYY-MM-DD, empty to clear"
		if task, ok := m.selectedTask(); ok && task.DueDate != nil {
			m.input.SetValue(task.DueDate.String())
		}
		m.input.CursorEnd()
		m.input.Focus()
	}
}

// closePrompt returns to normal mode, or to the next prompt queued after a
// creation.
func (m *Model) closePrompt() {
	m.input.Blur()
	m.mode = NormalMode
	if len(m.queued) > 0 {
		next := m.queued[0]
		m.queued = m.queued[1:]
		m.openPrompt(next)
	}
}

// queueCreationPrompts queues the prompts the config opens after creating an item.
func (m *Model) queueCreationPrompts() {
	open := m.config.AlwaysOpen
	m.queued = nil
	if open.Priority {
		m.queued = append(m.queued, PriorityPromptMode)
	}
	if m.viewMode != TasksView {
		return
	}
	if open.Difficulty {
		m.queued = append(m.queued, DifficultyPromptMode)
	}
	if open.DueDate {
		m.queued = append(m.queued, DueDatePromptMode)
	}
}

func (m Model) selectedTask() (state.Task, bool) {
	if m.viewMode != TasksView {
		return state.Task{}, false
	}
	name := m.currentColumn().Name
	return m.state.Tasks(m.project, name).At(m.taskCursors[name])
}

func (m Model) selectedTitle() string {
	if m.viewMode == ProjectsView {
		p, _ := m.state.Project(m.projectCursor)
		return p.Title
	}
	task, _ := m.selectedTask()
	return task.Title
}

func (m Model) selectedPriority() (state.Priority, bool) {
	if m.viewMode == ProjectsView {
		p, ok := m.state.Project(m.projectCursor)
		return p.Priority, ok
	}
	task, ok := m.selectedTask()
	return task.Priority, ok
}

// submitDueDate parses the date prompt. An empty value clears the date.
func (m *Model) submitDueDate() bool {
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		m.dispatch(state.SetDueDate{})
		return true
	}
	d, err := civil.ParseDate(value)
	if err != nil {
		m.err = fmt.Errorf("invalid date format: use YYYY-MM-DD")
		return false
	}
	m.dispatch(state.SetDueDate{Date: &d})
	return true
}

var (
	red     = lipgloss.Color("1")
	green   = lipgloss.Color("2")
	yellow  = lipgloss.Color("3")
	blue    = lipgloss.Color("4")
	magenta = lipgloss.Color("5")
	dim     = lipgloss.NewStyle().Faint(true).Italic(true)
)

func priorityColor(p state.Priority) lipgloss.Color {
	switch p {
	case state.PriorityHigh:
		return red
	case state.PriorityMedium:
		return yellow
	case state.PriorityLow:
		return green
	}
	return ""
}

func priorityLabel(p state.Priority) string {
	if p == state.PriorityNone {
		return dim.Render("-")
	}
	return lipgloss.NewStyle().Foreground(priorityColor(p)).Render(strings.Repeat("!", int(p)))
}

func difficultyLabel(d state.Difficulty) string {
	var color lipgloss.Color
	switch d {
	case state.DifficultyNone:
		return dim.Render("-")
	case state.DifficultyHard:
		color = red
	case state.DifficultyNormal:
		color = yellow
	case state.DifficultyEasy:
		color = green
	}
	// Hard is the lowest non-zero value and gets the most stars
	stars := int(state.DifficultyEasy) + 1 - int(d)
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("*", stars))
}

// dueDateColor colors a due date by its distance from now.
func dueDateColor(due, now civil.Date) lipgloss.Color {
	days := due.DaysSince(now)
	switch {
	case days < 0:
		return red
	case days == 0:
		return yellow
	case days < 7:
		return green
	case days < 30:
		return blue
	}
	return magenta
}

func dueDateLabel(due *civil.Date) string {
	if due == nil {
		return dim.Render("-")
	}
	return lipgloss.NewStyle().
		Foreground(dueDateColor(*due, today())).
		Underline(true).
		Render(due.String())
}
