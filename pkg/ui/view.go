package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"kraban/pkg/keymaps"
	"kraban/pkg/state"
)

const defaultWidth = 100

// View renders the UI based on the current mode
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.titleBar())
	sb.WriteString("\n\n")

	switch m.viewMode {
	case ProjectsView, DueTasksView:
		sb.WriteString(m.renderMainView())
	case TasksView:
		sb.WriteString(m.renderTasksView())
	}
	sb.WriteString("\n")

	if m.mode != NormalMode {
		sb.WriteString("\n")
		sb.WriteString(m.renderPrompt())
		sb.WriteString("\n")
	}

	// Error message if any
	if m.err != nil {
		sb.WriteString(lipgloss.NewStyle().Foreground(red).Render(fmt.Sprintf("\nError: %v", m.err)))
		sb.WriteString("\n")
	} else if m.status != "" {
		sb.WriteString(dim.Render(m.status))
		sb.WriteString("\n")
	}

	if m.showKeyHints {
		sb.WriteString("\n")
		sb.WriteString(m.helpBar())
	}

	return sb.String()
}

func (m Model) viewWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

func (m Model) titleBar() string {
	title := "Projects"
	if m.viewMode == TasksView {
		p, _ := m.state.Project(m.project)
		title = "Tasks in " + p.Title
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(m.config.AppColor).
		Padding(0, 1).
		Render("kraban - " + title)
}

// panel draws a rounded border around content, in the app color when focused.
func (m Model) panel(content string, width int, focused bool) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Width(max(width-2, 10))
	if focused {
		border = border.BorderForeground(m.config.AppColor)
	} else {
		border = border.BorderForeground(lipgloss.Color("8"))
	}
	return border.Render(content)
}

// pad right-pads styled text to width cells.
func pad(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}

// row renders one list row, highlighted under the cursor.
func row(selected bool, cells ...string) string {
	line := strings.Join(cells, "  ")
	if selected {
		return lipgloss.NewStyle().Bold(true).Render("> " + line)
	}
	return "  " + line
}

func (m Model) renderMainView() string {
	half := m.viewWidth() / 2

	var projects []string
	for i, p := range m.state.Projects().All() {
		projects = append(projects, row(
			m.viewMode == ProjectsView && i == m.projectCursor,
			pad(priorityLabel(p.Priority), 3),
			p.Title,
			m.columnCounts(p),
		))
	}
	if len(projects) == 0 {
		projects = append(projects, dim.Render("No projects yet"))
	}

	m.state.CompileDueTasks(m.config)
	var due []string
	for i, d := range m.state.DueTasks().All() {
		due = append(due, row(
			m.viewMode == DueTasksView && i == m.dueCursor,
			dueDateLabel(d.Task.DueDate),
			lipgloss.NewStyle().Foreground(priorityColor(d.ProjectPriority)).Render(d.ProjectTitle),
			lipgloss.NewStyle().Foreground(d.ColumnColor).Italic(true).Render(d.ColumnName),
			d.Task.Title,
		))
	}
	if len(due) == 0 {
		due = append(due, dim.Render("Nothing is due"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.panel("Projects\n\n"+strings.Join(projects, "\n"), half, m.viewMode == ProjectsView),
		m.panel("Due tasks\n\n"+strings.Join(due, "\n"), half, m.viewMode == DueTasksView),
	)
}

// columnCounts renders the number of tasks per non-empty column.
func (m Model) columnCounts(p state.Project) string {
	var counts []string
	for _, column := range m.config.Columns() {
		if n := p.Columns.Get(column.Name).Len(); n > 0 {
			counts = append(counts, lipgloss.NewStyle().
				Foreground(column.Color).
				Italic(true).
				Render(fmt.Sprintf("%d %s", n, column.Name)))
		}
	}
	if len(counts) == 0 {
		return dim.Render("empty")
	}
	return strings.Join(counts, " ")
}

func (m Model) renderTasksView() string {
	var sb strings.Builder
	sb.WriteString(m.renderTabBar())
	sb.WriteString("\n")

	tab := m.currentTab()
	width := m.viewWidth() / len(tab)
	var columns []string
	for i, column := range tab {
		tasks := m.state.Tasks(m.project, column.Name)
		focused := i == m.column

		header := lipgloss.NewStyle().Foreground(column.Color).Bold(true).
			Render(fmt.Sprintf("%s (%d)", column.Name, tasks.Len()))
		lines := []string{header, ""}
		for j, task := range tasks.All() {
			lines = append(lines, row(
				focused && j == m.taskCursors[column.Name],
				pad(priorityLabel(task.Priority), 3),
				pad(difficultyLabel(task.Difficulty), 3),
				dueDateLabel(task.DueDate),
				task.Title,
			))
		}
		if tasks.Len() == 0 {
			lines = append(lines, dim.Render("No tasks"))
		}
		columns = append(columns, m.panel(strings.Join(lines, "\n"), width, focused))
	}

	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	return sb.String()
}

// renderTabBar lists every tab. Unfocused tabs show only their task count
// when collapse_unfocused_tabs is set.
func (m Model) renderTabBar() string {
	var tabs []string
	for i, tab := range m.config.Tabs {
		var names []string
		total := 0
		for _, column := range tab {
			names = append(names, column.Name)
			total += m.state.Tasks(m.project, column.Name).Len()
		}

		label := strings.Join(names, " | ")
		if i != m.tab && m.config.CollapseUnfocusedTabs {
			label = fmt.Sprintf("%s (%d)", names[0], total)
			if len(names) > 1 {
				label = fmt.Sprintf("%s… (%d)", names[0], total)
			}
		}

		style := lipgloss.NewStyle().Padding(0, 1)
		if i == m.tab {
			style = style.Bold(true).Underline(true).Foreground(m.config.AppColor)
		} else {
			style = style.Faint(true)
		}
		tabs = append(tabs, style.Render(label))
	}
	return strings.Join(tabs, " ")
}

func (m Model) renderPrompt() string {
	var sb strings.Builder

	choices := func(labels []string) {
		for i, label := range labels {
			sb.WriteString(row(i == m.choice, label))
			sb.WriteString("\n")
		}
	}

	switch m.mode {
	case InputPromptMode:
		if m.inputAction == inputRename {
			sb.WriteString("Rename\n\n")
		} else if m.viewMode == TasksView {
			sb.WriteString("New task in " + m.currentColumn().Name + "\n\n")
		} else {
			sb.WriteString("New project\n\n")
		}
		sb.WriteString(m.input.View())

	case DueDatePromptMode:
		sb.WriteString("Due date\n\n")
		sb.WriteString(m.input.View())

	case PriorityPromptMode:
		sb.WriteString("Priority\n\n")
		var labels []string
		for _, p := range priorityChoices {
			labels = append(labels, pad(priorityLabel(p), 3)+" "+p.String())
		}
		choices(labels)

	case DifficultyPromptMode:
		sb.WriteString("Difficulty\n\n")
		var labels []string
		for _, d := range difficultyChoices {
			labels = append(labels, pad(difficultyLabel(d), 3)+" "+d.String())
		}
		choices(labels)

	case MovePromptMode:
		sb.WriteString("Move to column\n\n")
		var labels []string
		for _, column := range m.moveTargets() {
			labels = append(labels, lipgloss.NewStyle().Foreground(column.Color).Render(column.Name))
		}
		choices(labels)

	case DeleteConfirmMode:
		sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(red).Render("Delete"))
		sb.WriteString("\n\n")
		sb.WriteString(fmt.Sprintf("Are you sure you want to delete %q?\n\n", m.selectedTitle()))
		sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Press Y to confirm, N to cancel"))
	}

	return m.panel(sb.String(), min(m.viewWidth(), 60), true)
}

// helpBar renders the key hints of the current mode and view
func (m Model) helpBar() string {
	km := m.keyMap
	var bindings []key.Binding

	switch m.mode {
	case NormalMode:
		bindings = []key.Binding{km.MoveUp, km.MoveDown}
		switch m.viewMode {
		case ProjectsView:
			bindings = append(bindings, km.Open, km.Create, km.Rename, km.Delete, km.ChangePriority, km.NextTab)
		case DueTasksView:
			bindings = append(bindings, km.Open, km.NextTab)
		case TasksView:
			bindings = append(bindings, km.PrevColumn, km.NextColumn, km.NextTab, km.Create, km.Rename,
				km.Delete, km.ChangePriority, km.ChangeDifficulty, km.SetDueDate, km.MoveToColumn)
		}
		bindings = append(bindings, km.Back, km.ToggleKeyHints, km.QuitApp)

	case InputPromptMode, DueDatePromptMode:
		bindings = []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}

	case DeleteConfirmMode:
		bindings = []key.Binding{
			key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
			key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "cancel")),
		}

	default:
		bindings = []key.Binding{km.MoveUp, km.MoveDown, km.Open, km.Back}
	}

	keyStyle := lipgloss.NewStyle().Foreground(m.config.AppColor).Bold(true)
	var hints []string
	for _, hint := range keymaps.Hints(bindings...) {
		k, desc, _ := strings.Cut(hint, " ")
		hints = append(hints, keyStyle.Render(k)+" "+dim.Render(desc))
	}
	return strings.Join(hints, dim.Render(" • "))
}
