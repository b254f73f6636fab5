package state

import (
	"cmp"
	"time"

	"cloud.google.com/go/civil"

	"kraban/pkg/config"
)

// today returns the local calendar date. Tests replace it to pin the clock.
var today = func() civil.Date {
	return civil.DateOf(time.Now())
}

// Task is a single entry of a column.
type Task struct {
	Priority           Priority    `json:"priority,omitempty"`
	DueDate            *civil.Date `json:"due_date,omitempty"`
	Difficulty         Difficulty  `json:"difficulty,omitempty"`
	Title              string      `json:"title"`
	DueDateManuallySet bool        `json:"due_date_manually_set"`
}

// Column is a list of tasks ordered from the most to the least pressing.
type Column = SortedList[Task]

// Compare orders tasks by priority, then due date, then difficulty.
func (t Task) Compare(other Task) int {
	if c := cmp.Compare(t.Priority, other.Priority); c != 0 {
		return c
	}
	if c := compareDueDates(t.DueDate, other.DueDate); c != 0 {
		return c
	}
	return cmp.Compare(t.Difficulty, other.Difficulty)
}

// compareDueDates ranks a task without a deadline above one with a deadline,
// and a sooner deadline above a later one.
func compareDueDates(a, b *civil.Date) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case a.Before(*b):
		return 1
	case a.After(*b):
		return -1
	}
	return 0
}

// withPriority returns the task with the new priority and, unless the due
// date was set by hand, the due date derived from it.
func (t Task) withPriority(priority Priority, policy config.DefaultDueDates, now civil.Date) Task {
	t.DueDate = t.dueDateByPriority(priority, policy, now)
	t.Priority = priority
	return t
}

func (t Task) dueDateByPriority(priority Priority, policy config.DefaultDueDates, now civil.Date) *civil.Date {
	if t.DueDateManuallySet || !policy.Enable {
		return t.DueDate
	}

	var days int
	switch priority {
	case PriorityNone:
		return nil
	case PriorityLow:
		days = policy.Low
	case PriorityMedium:
		days = policy.Medium
	case PriorityHigh:
		days = policy.High
	}
	due := now.AddDays(days)
	return &due
}

func (t Task) withDueDate(due *civil.Date) Task {
	if due != nil {
		d := *due
		due = &d
	}
	t.DueDate = due
	t.DueDateManuallySet = true
	return t
}

func (s *State) handleTaskAction(loc TasksLocation, action Action, cfg *config.Config) *SwitchTo {
	project := s.projectMut(loc.Project)
	if project == nil {
		return nil
	}

	if create, ok := action.(Create); ok {
		idx := project.Columns.GetMut(loc.Column).Insert(Task{Title: create.Title})
		s.touch()
		return &SwitchTo{Index: idx}
	}

	idx, ok := loc.Selected.Index()
	if !ok || idx >= project.Columns.Get(loc.Column).Len() {
		return nil
	}
	list := project.Columns.GetMut(loc.Column)

	var moved int
	switch a := action.(type) {
	case Delete:
		_, _ = list.Remove(idx)
		s.touch()
		return nil
	case Rename:
		task, _ := list.At(idx)
		task.Title = a.Title
		_ = list.Set(idx, task)
		s.touch()
		return nil
	case ChangePriority:
		moved, _ = list.ReplaceAt(idx, func(t Task) Task {
			return t.withPriority(a.Priority, cfg.DefaultDueDates, today())
		})
	case ChangeDifficulty:
		moved, _ = list.ReplaceAt(idx, func(t Task) Task {
			t.Difficulty = a.Difficulty
			return t
		})
	case SetDueDate:
		moved, _ = list.ReplaceAt(idx, func(t Task) Task { return t.withDueDate(a.Date) })
	case MoveToColumn:
		task, _ := list.Remove(idx)
		moved = project.Columns.GetMut(a.Column).Insert(task)
	default:
		panic(unexpectedAction(loc, action))
	}
	s.touch()
	return &SwitchTo{Index: moved}
}
