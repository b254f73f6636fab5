package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kraban/pkg/config"
)

func projectTitles(s *State) []string {
	var titles []string
	for _, p := range s.Projects().All() {
		titles = append(titles, p.Title)
	}
	return titles
}

func taskTitles(s *State, project int, column string) []string {
	var titles []string
	for _, task := range s.Tasks(project, column).All() {
		titles = append(titles, task.Title)
	}
	return titles
}

func TestProjectActions(t *testing.T) {
	cfg := config.Default()
	s := &State{}

	assert.Equal(t, &SwitchTo{Index: 0}, s.HandleAction(ProjectsLocation{}, Create{Title: "a"}, cfg))
	assert.Equal(t, &SwitchTo{Index: 1}, s.HandleAction(ProjectsLocation{}, Create{Title: "b"}, cfg))
	assert.True(t, s.NeedsSave())

	got := s.HandleAction(ProjectsLocation{Selected: Select(1)}, ChangePriority{Priority: PriorityMedium}, cfg)
	assert.Equal(t, &SwitchTo{Index: 0}, got)
	assert.Equal(t, []string{"b", "a"}, projectTitles(s))

	assert.Nil(t, s.HandleAction(ProjectsLocation{Selected: Select(1)}, Rename{Title: "renamed"}, cfg))
	assert.Equal(t, []string{"b", "renamed"}, projectTitles(s))

	assert.Nil(t, s.HandleAction(ProjectsLocation{Selected: Select(0)}, Delete{}, cfg))
	assert.Equal(t, []string{"renamed"}, projectTitles(s))
}

func TestEqualPriorityProjectsKeepInsertionOrder(t *testing.T) {
	cfg := config.Default()
	s := &State{}
	for _, title := range []string{"a", "b", "c"} {
		s.HandleAction(ProjectsLocation{}, Create{Title: title}, cfg)
	}
	s.HandleAction(ProjectsLocation{Selected: Select(2)}, ChangePriority{Priority: PriorityHigh}, cfg)
	assert.Equal(t, []string{"c", "a", "b"}, projectTitles(s))

	// back among equals, it goes after them
	s.HandleAction(ProjectsLocation{Selected: Select(0)}, ChangePriority{Priority: PriorityNone}, cfg)

	assert.Equal(t, []string{"a", "b", "c"}, projectTitles(s))
}

func TestProjectLocationRejectsTaskActions(t *testing.T) {
	cfg := config.Default()
	s := New([]Project{{Title: "a"}})
	loc := ProjectsLocation{Selected: Select(0)}

	for _, action := range []Action{
		ChangeDifficulty{Difficulty: DifficultyEasy},
		MoveToColumn{Column: "Done"},
		SetDueDate{},
	} {
		assert.Panics(t, func() { s.HandleAction(loc, action, cfg) }, "%T", action)
	}
	assert.False(t, s.NeedsSave())
}

func TestStaleSelectionIsIgnored(t *testing.T) {
	cfg := config.Default()
	s := New([]Project{{Title: "a"}})

	tests := []struct {
		name   string
		loc    Location
		action Action
	}{
		{"no project selected", ProjectsLocation{}, Delete{}},
		{"project gone", ProjectsLocation{Selected: Select(4)}, Rename{Title: "x"}},
		{"no task selected", TasksLocation{Project: 0, Column: "Todo"}, ChangePriority{Priority: PriorityHigh}},
		{"task gone", TasksLocation{Project: 0, Column: "Todo", Selected: Select(0)}, Delete{}},
		{"unknown project", TasksLocation{Project: 3, Column: "Todo"}, Create{Title: "x"}},
		{"due tasks are read-only", DueTasksLocation{Selected: Select(0)}, Delete{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, s.HandleAction(tt.loc, tt.action, cfg))
			assert.False(t, s.NeedsSave())
		})
	}

	project, _ := s.Project(0)
	assert.Equal(t, 0, project.Columns.Len(), "reading a column must not create it")
}

func TestTaskActions(t *testing.T) {
	pinToday(t, fixedToday)
	cfg := config.Default()
	s := New([]Project{{Title: "home"}})
	loc := func(selected int) TasksLocation {
		return TasksLocation{Project: 0, Column: "Todo", Selected: Select(selected)}
	}

	for _, title := range []string{"a", "b", "c"} {
		s.HandleAction(loc(0), Create{Title: title}, cfg)
	}
	assert.Equal(t, []string{"a", "b", "c"}, taskTitles(s, 0, "Todo"))

	assert.Equal(t, &SwitchTo{Index: 0}, s.HandleAction(loc(2), ChangeDifficulty{Difficulty: DifficultyEasy}, cfg))
	assert.Equal(t, []string{"c", "a", "b"}, taskTitles(s, 0, "Todo"))

	assert.Equal(t, &SwitchTo{Index: 0}, s.HandleAction(loc(2), ChangePriority{Priority: PriorityLow}, cfg))
	assert.Equal(t, []string{"b", "c", "a"}, taskTitles(s, 0, "Todo"))

	assert.Nil(t, s.HandleAction(loc(1), Rename{Title: "c2"}, cfg))
	assert.Equal(t, []string{"b", "c2", "a"}, taskTitles(s, 0, "Todo"))

	// a dated task ranks below an undated one of the same priority
	assert.Equal(t, &SwitchTo{Index: 2}, s.HandleAction(loc(2), SetDueDate{Date: date(5)}, cfg))
	assert.Equal(t, []string{"b", "c2", "a"}, taskTitles(s, 0, "Todo"))

	assert.Equal(t, &SwitchTo{Index: 0}, s.HandleAction(loc(2), MoveToColumn{Column: "Done"}, cfg))
	assert.Equal(t, []string{"b", "c2"}, taskTitles(s, 0, "Todo"))
	assert.Equal(t, []string{"a"}, taskTitles(s, 0, "Done"))

	assert.Nil(t, s.HandleAction(loc(0), Delete{}, cfg))
	assert.Equal(t, []string{"c2"}, taskTitles(s, 0, "Todo"))
}

func TestMoveToColumnUsesTargetOrder(t *testing.T) {
	cfg := config.Default()
	s := New([]Project{{Title: "home"}})
	doing := TasksLocation{Project: 0, Column: "Doing"}
	s.HandleAction(doing, Create{Title: "first"}, cfg)
	s.HandleAction(TasksLocation{Project: 0, Column: "Doing", Selected: Select(0)}, ChangeDifficulty{Difficulty: DifficultyHard}, cfg)

	todo := TasksLocation{Project: 0, Column: "Todo"}
	s.HandleAction(todo, Create{Title: "easy"}, cfg)
	todo.Selected = Select(0)
	s.HandleAction(todo, ChangeDifficulty{Difficulty: DifficultyEasy}, cfg)

	got := s.HandleAction(todo, MoveToColumn{Column: "Doing"}, cfg)
	require.NotNil(t, got)
	assert.Equal(t, 0, got.Index)
	assert.Equal(t, []string{"easy", "first"}, taskTitles(s, 0, "Doing"))
	assert.Empty(t, taskTitles(s, 0, "Todo"))
}

func TestMerge(t *testing.T) {
	s := New([]Project{{Title: "a", Priority: PriorityLow}})
	other := New([]Project{{Title: "b", Priority: PriorityHigh}, {Title: "c"}})

	assert.Equal(t, 2, s.Merge(other))
	assert.Equal(t, []string{"b", "a", "c"}, projectTitles(s))
	assert.True(t, s.NeedsSave())
}
