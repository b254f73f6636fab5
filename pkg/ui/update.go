package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"kraban/pkg/state"
	"kraban/pkg/utils"
)

var (
	priorityChoices   = append([]state.Priority{state.PriorityNone}, state.Priorities...)
	difficultyChoices = append([]state.Difficulty{state.DifficultyNone}, state.Difficulties...)
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keyMap.QuitApp) {
			m.save()
			return m, tea.Quit
		}
		m.status = ""

		switch m.mode {
		case NormalMode:
			return m.updateNormal(msg)

		case InputPromptMode:
			switch msg.String() {
			case "esc":
				m.queued = nil
				m.closePrompt()
				return m, nil
			case "enter":
				m.submitTitle()
				return m, nil
			}
			m.input, cmd = m.input.Update(msg)
			return m, cmd

		case DueDatePromptMode:
			switch msg.String() {
			case "esc":
				m.closePrompt()
				return m, nil
			case "enter":
				if m.submitDueDate() {
					m.closePrompt()
				}
				return m, nil
			}
			m.input, cmd = m.input.Update(msg)
			return m, cmd

		case PriorityPromptMode, DifficultyPromptMode, MovePromptMode:
			m.updateChoice(msg)

		case DeleteConfirmMode:
			switch msg.String() {
			case "y", "Y":
				utils.Log("Deleting %q", m.selectedTitle())
				m.dispatch(state.Delete{})
				m.closePrompt()
			case "n", "N", "esc":
				m.closePrompt()
			}
		}

	case fileChangedMsg:
		m.reload()
		if m.watcher == nil {
			return m, nil
		}
		return m, waitForChange(m.watcher)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = min(40, max(10, msg.Width-10))
	}

	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.ToggleKeyHints):
		m.showKeyHints = !m.showKeyHints

	case key.Matches(msg, m.keyMap.MoveUp):
		m.moveCursor(-1)

	case key.Matches(msg, m.keyMap.MoveDown):
		m.moveCursor(1)

	case key.Matches(msg, m.keyMap.Back):
		if m.viewMode != TasksView {
			m.save()
			return m, tea.Quit
		}
		m.viewMode = ProjectsView
		m.projectCursor = m.project

	case m.viewMode == ProjectsView:
		m.updateProjects(msg)

	case m.viewMode == DueTasksView:
		m.updateDueTasks(msg)

	case m.viewMode == TasksView:
		m.updateTasks(msg)
	}
	return m, nil
}

func (m *Model) updateProjects(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keyMap.NextTab), key.Matches(msg, m.keyMap.PrevTab):
		m.viewMode = DueTasksView
		m.clampCursors()

	case key.Matches(msg, m.keyMap.Open):
		if m.hasSelection() {
			m.openProject(m.projectCursor)
		}

	case key.Matches(msg, m.keyMap.Create):
		m.openTextPrompt(inputCreate, "")

	case !m.hasSelection():
		// the remaining keys act on the selected project

	case key.Matches(msg, m.keyMap.Rename):
		m.openTextPrompt(inputRename, m.selectedTitle())

	case key.Matches(msg, m.keyMap.Delete):
		m.mode = DeleteConfirmMode

	case key.Matches(msg, m.keyMap.ChangePriority):
		m.openPrompt(PriorityPromptMode)
	}
}

func (m *Model) updateDueTasks(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keyMap.NextTab), key.Matches(msg, m.keyMap.PrevTab):
		m.viewMode = ProjectsView

	case key.Matches(msg, m.keyMap.Open):
		m.state.CompileDueTasks(m.config)
		if due, ok := m.state.DueTasks().At(m.dueCursor); ok {
			m.openDueTask(due)
		}
	}
}

func (m *Model) updateTasks(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keyMap.NextColumn):
		if m.column < len(m.currentTab())-1 {
			m.column++
		} else if m.tab < len(m.config.Tabs)-1 {
			m.tab++
			m.column = 0
		}

	case key.Matches(msg, m.keyMap.PrevColumn):
		if m.column > 0 {
			m.column--
		} else if m.tab > 0 {
			m.tab--
			m.column = len(m.currentTab()) - 1
		}

	case key.Matches(msg, m.keyMap.NextTab):
		m.tab = (m.tab + 1) % len(m.config.Tabs)
		m.column = 0

	case key.Matches(msg, m.keyMap.PrevTab):
		m.tab = (m.tab + len(m.config.Tabs) - 1) % len(m.config.Tabs)
		m.column = 0

	case key.Matches(msg, m.keyMap.Create):
		m.openTextPrompt(inputCreate, "")

	case !m.hasSelection():

	case key.Matches(msg, m.keyMap.Rename):
		m.openTextPrompt(inputRename, m.selectedTitle())

	case key.Matches(msg, m.keyMap.Delete):
		m.mode = DeleteConfirmMode

	case key.Matches(msg, m.keyMap.ChangePriority):
		m.openPrompt(PriorityPromptMode)

	case key.Matches(msg, m.keyMap.ChangeDifficulty):
		m.openPrompt(DifficultyPromptMode)

	case key.Matches(msg, m.keyMap.SetDueDate):
		m.openPrompt(DueDatePromptMode)

	case key.Matches(msg, m.keyMap.MoveToColumn):
		if len(m.moveTargets()) > 0 {
			m.openPrompt(MovePromptMode)
		}
	}
}

// submitTitle creates or renames the selected item from the text prompt.
func (m *Model) submitTitle() {
	title := strings.TrimSpace(m.input.Value())
	if title == "" {
		return
	}

	if m.inputAction == inputRename {
		m.dispatch(state.Rename{Title: title})
		m.closePrompt()
		return
	}

	m.dispatch(state.Create{Title: title})
	m.queueCreationPrompts()
	m.closePrompt()
}

// updateChoice handles the prompts that pick one value from a list.
func (m *Model) updateChoice(msg tea.KeyMsg) {
	var count int
	switch m.mode {
	case PriorityPromptMode:
		count = len(priorityChoices)
	case DifficultyPromptMode:
		count = len(difficultyChoices)
	case MovePromptMode:
		count = len(m.moveTargets())
	}

	switch {
	case key.Matches(msg, m.keyMap.MoveUp):
		m.choice = clamp(m.choice-1, count)

	case key.Matches(msg, m.keyMap.MoveDown):
		m.choice = clamp(m.choice+1, count)

	case key.Matches(msg, m.keyMap.Back):
		m.closePrompt()

	case key.Matches(msg, m.keyMap.Open):
		switch m.mode {
		case PriorityPromptMode:
			m.dispatch(state.ChangePriority{Priority: priorityChoices[m.choice]})
		case DifficultyPromptMode:
			m.dispatch(state.ChangeDifficulty{Difficulty: difficultyChoices[m.choice]})
		case MovePromptMode:
			m.dispatch(state.MoveToColumn{Column: m.moveTargets()[m.choice].Name})
		}
		m.closePrompt()
	}
}
