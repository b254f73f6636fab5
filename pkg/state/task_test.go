package state

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kraban/pkg/config"
)

var fixedToday = civil.Date{Year: 2025, Month: 3, Day: 10}

func pinToday(t *testing.T, d civil.Date) {
	t.Helper()
	old := today
	today = func() civil.Date { return d }
	t.Cleanup(func() { today = old })
}

func date(days int) *civil.Date {
	d := fixedToday.AddDays(days)
	return &d
}

func TestTaskCompare(t *testing.T) {
	tests := []struct {
		name        string
		high, lower Task
	}{
		{"priority first", Task{Priority: PriorityLow}, Task{Priority: PriorityNone, Difficulty: DifficultyEasy}},
		{"higher priority", Task{Priority: PriorityHigh, DueDate: date(9)}, Task{Priority: PriorityMedium, DueDate: date(0)}},
		{"no due date before a due date", Task{Priority: PriorityLow}, Task{Priority: PriorityLow, DueDate: date(1)}},
		{"sooner due date", Task{DueDate: date(1)}, Task{DueDate: date(2)}},
		{"easy before normal", Task{Difficulty: DifficultyEasy}, Task{Difficulty: DifficultyNormal}},
		{"normal before hard", Task{Difficulty: DifficultyNormal}, Task{Difficulty: DifficultyHard}},
		{"hard before none", Task{Difficulty: DifficultyHard}, Task{}},
		{"due date before difficulty", Task{DueDate: date(1), Difficulty: DifficultyHard}, Task{DueDate: date(2), Difficulty: DifficultyEasy}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Positive(t, tt.high.Compare(tt.lower))
			assert.Negative(t, tt.lower.Compare(tt.high))
		})
	}

	assert.Zero(t, Task{Title: "a", DueDate: date(3)}.Compare(Task{Title: "b", DueDate: date(3)}))
}

func TestDueDateFollowsPriority(t *testing.T) {
	pinToday(t, fixedToday)
	cfg := config.Default()
	cfg.DefaultDueDates = config.DefaultDueDates{Enable: true, Low: 7, Medium: 3, High: 1}

	s := New([]Project{{Title: "home"}})
	loc := TasksLocation{Project: 0, Column: "Todo"}
	s.HandleAction(loc, Create{Title: "taxes"}, cfg)
	loc.Selected = Select(0)

	tests := []struct {
		priority Priority
		want     *civil.Date
	}{
		{PriorityHigh, date(1)},
		{PriorityMedium, date(3)},
		{PriorityLow, date(7)},
		{PriorityNone, nil},
	}
	for _, tt := range tests {
		t.Run(tt.priority.String(), func(t *testing.T) {
			s.HandleAction(loc, ChangePriority{Priority: tt.priority}, cfg)
			task, ok := s.Tasks(0, "Todo").At(0)
			require.True(t, ok)
			assert.Equal(t, tt.priority, task.Priority)
			assert.Equal(t, tt.want, task.DueDate)
			assert.False(t, task.DueDateManuallySet)
		})
	}
}

func TestManualDueDateIsKept(t *testing.T) {
	pinToday(t, fixedToday)
	cfg := config.Default()

	s := New([]Project{{Title: "home"}})
	loc := TasksLocation{Project: 0, Column: "Todo", Selected: Select(0)}
	s.HandleAction(loc, Create{Title: "taxes"}, cfg)

	s.HandleAction(loc, SetDueDate{Date: date(20)}, cfg)
	s.HandleAction(loc, ChangePriority{Priority: PriorityHigh}, cfg)
	task, _ := s.Tasks(0, "Todo").At(0)
	assert.Equal(t, date(20), task.DueDate)
	assert.True(t, task.DueDateManuallySet)

	// clearing by hand still counts as setting it
	s.HandleAction(loc, SetDueDate{}, cfg)
	s.HandleAction(loc, ChangePriority{Priority: PriorityLow}, cfg)
	task, _ = s.Tasks(0, "Todo").At(0)
	assert.Nil(t, task.DueDate)
	assert.True(t, task.DueDateManuallySet)
}

func TestDueDatesDisabled(t *testing.T) {
	pinToday(t, fixedToday)
	cfg := config.Default()
	cfg.DefaultDueDates.Enable = false

	s := New([]Project{{Title: "home"}})
	loc := TasksLocation{Project: 0, Column: "Todo", Selected: Select(0)}
	s.HandleAction(loc, Create{Title: "taxes"}, cfg)
	s.HandleAction(loc, ChangePriority{Priority: PriorityHigh}, cfg)

	task, _ := s.Tasks(0, "Todo").At(0)
	assert.Equal(t, PriorityHigh, task.Priority)
	assert.Nil(t, task.DueDate)
}

func TestParsePriorityAndDifficulty(t *testing.T) {
	p, err := ParsePriority("HIGH")
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, p)
	p, err = ParsePriority("")
	require.NoError(t, err)
	assert.Equal(t, PriorityNone, p)
	_, err = ParsePriority("urgent")
	assert.Error(t, err)

	d, err := ParseDifficulty("easy")
	require.NoError(t, err)
	assert.Equal(t, DifficultyEasy, d)
	_, err = ParseDifficulty("trivial")
	assert.Error(t, err)
}
