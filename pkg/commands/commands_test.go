package commands

import (
	"bytes"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kraban/pkg/config"
	"kraban/pkg/state"
)

func TestAddTask(t *testing.T) {
	cfg := config.Default()
	s := &state.State{}

	where, err := AddTask(s, cfg, AddOptions{Text: "buy milk +home", Priority: "high", Date: "2030-01-02"})
	require.NoError(t, err)
	assert.Equal(t, "home / Backlog", where)

	where, err = AddTask(s, cfg, AddOptions{Text: "paint fence", Project: "HOME", Column: "Doing", Difficulty: "hard"})
	require.NoError(t, err)
	assert.Equal(t, "home / Doing", where)
	require.Equal(t, 1, s.Projects().Len())

	task, ok := s.Tasks(0, "Backlog").At(0)
	require.True(t, ok)
	assert.Equal(t, "buy milk", task.Title)
	assert.Equal(t, state.PriorityHigh, task.Priority)
	assert.Equal(t, &civil.Date{Year: 2030, Month: 1, Day: 2}, task.DueDate)
	assert.True(t, task.DueDateManuallySet)

	task, _ = s.Tasks(0, "Doing").At(0)
	assert.Equal(t, state.DifficultyHard, task.Difficulty)
	assert.True(t, s.NeedsSave())
}

func TestAddTaskErrors(t *testing.T) {
	cfg := config.Default()
	tests := []struct {
		name string
		opts AddOptions
	}{
		{"no project", AddOptions{Text: "orphan"}},
		{"empty title", AddOptions{Text: "+home"}},
		{"unknown column", AddOptions{Text: "x +home", Column: "Someday"}},
		{"bad priority", AddOptions{Text: "x +home", Priority: "urgent"}},
		{"bad date", AddOptions{Text: "x +home", Date: "02.01.2030"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &state.State{}
			_, err := AddTask(s, cfg, tt.opts)
			assert.Error(t, err)
			assert.Equal(t, 0, s.Projects().Len())
		})
	}
}

func TestProjectTags(t *testing.T) {
	assert.Equal(t, []string{"home", "garden"}, extractProjects("weed +home beds +garden"))
	assert.Equal(t, "weed beds", removeProjectTags("weed +home beds +garden"))
}

func sampleState(t *testing.T, cfg *config.Config) *state.State {
	t.Helper()
	s := &state.State{}
	for _, opts := range []AddOptions{
		{Text: "report +work", Column: "Todo", Priority: "medium", Difficulty: "easy", Date: "2030-03-01"},
		{Text: "hiring: round two +work", Column: "Done"},
		{Text: "paint +home", Column: "Backlog"},
	} {
		_, err := AddTask(s, cfg, opts)
		require.NoError(t, err)
	}
	s.HandleAction(state.ProjectsLocation{Selected: state.Select(0)}, state.ChangePriority{Priority: state.PriorityHigh}, cfg)
	return s
}

func TestExportText(t *testing.T) {
	cfg := config.Default()
	content, tasks, err := Export(sampleState(t, cfg), cfg, "txt")
	require.NoError(t, err)
	assert.Equal(t, 3, tasks)
	assert.Equal(t, `work: !high
- [ ] Todo: report !medium ~easy @2030-03-01
- [x] Done: hiring: round two

home:
- [ ] Backlog: paint
`, string(content))
}

func TestExportUnknownType(t *testing.T) {
	cfg := config.Default()
	_, _, err := Export(&state.State{}, cfg, "xml")
	assert.Error(t, err)
}

func TestTextRoundTrip(t *testing.T) {
	cfg := config.Default()
	original := sampleState(t, cfg)
	content, _, err := Export(original, cfg, "txt")
	require.NoError(t, err)

	s := &state.State{}
	projects, err := Import(s, cfg, "tasks.TXT", content)
	require.NoError(t, err)
	assert.Equal(t, 2, projects)

	again, _, err := Export(s, cfg, "txt")
	require.NoError(t, err)
	assert.Equal(t, string(content), string(again))
}

func TestJSONImportMerges(t *testing.T) {
	cfg := config.Default()
	content, _, err := Export(sampleState(t, cfg), cfg, "json")
	require.NoError(t, err)

	s := state.New([]state.Project{{Title: "existing"}})
	projects, err := Import(s, cfg, "backup.json", content)
	require.NoError(t, err)
	assert.Equal(t, 2, projects)

	var titles []string
	for _, p := range s.Projects().All() {
		titles = append(titles, p.Title)
	}
	assert.Equal(t, []string{"work", "existing", "home"}, titles)
}

func TestImportBasilk(t *testing.T) {
	cfg := config.Default()
	s := &state.State{}
	projects, err := Import(s, cfg, "basilk.json", []byte(`[{"title": "old", "tasks": [{"title": "t", "status": "UpNext", "priority": 0}]}]`))
	require.NoError(t, err)
	assert.Equal(t, 1, projects)
	assert.Equal(t, 1, s.Tasks(0, "Backlog").Len())
}

func TestImportTextErrors(t *testing.T) {
	cfg := config.Default()
	for _, content := range []string{
		"- [ ] Todo: no project yet",
		"home:\n- [ ] Todo: x !urgent",
		"home:\n- [ ] Todo: x @tomorrow",
		"just words",
	} {
		_, err := Import(&state.State{}, cfg, "tasks.txt", []byte(content))
		assert.Error(t, err, content)
	}
}

func TestWriteDueTasks(t *testing.T) {
	cfg := config.Default()
	s := sampleState(t, cfg)
	_, err := AddTask(s, cfg, AddOptions{Text: "taxes +home", Column: "Todo", Date: "2030-02-01"})
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.Equal(t, 2, WriteDueTasks(&buf, s, cfg))
	assert.Equal(t, "2030-02-01  home / Todo: taxes\n2030-03-01  work / Todo: report\n", buf.String())
}

func TestExportYAML(t *testing.T) {
	cfg := config.Default()
	content, _, err := Export(sampleState(t, cfg), cfg, "yaml")
	require.NoError(t, err)
	assert.Equal(t, `- title: work
  priority: High
  tasks:
    - title: report
      column: Todo
      priority: Medium
      difficulty: Easy
      due_date: "2030-03-01"
    - title: 'hiring: round two'
      column: Done
      done: true
- title: home
  tasks:
    - title: paint
      column: Backlog
`, string(content))
}

func TestYAMLRoundTrip(t *testing.T) {
	cfg := config.Default()
	original := sampleState(t, cfg)
	content, _, err := Export(original, cfg, "yaml")
	require.NoError(t, err)

	s := &state.State{}
	projects, err := Import(s, cfg, "tasks.yml", content)
	require.NoError(t, err)
	assert.Equal(t, 2, projects)

	want, _, err := Export(original, cfg, "txt")
	require.NoError(t, err)
	got, _, err := Export(s, cfg, "txt")
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestImportYAMLErrors(t *testing.T) {
	cfg := config.Default()
	for _, content := range []string{
		"- priority: High",
		"- title: home\n  tasks:\n    - title: x",
		"- title: home\n  tasks:\n    - title: x\n      column: Todo\n      difficulty: brutal",
		"title: not a list",
	} {
		_, err := Import(&state.State{}, cfg, "tasks.yaml", []byte(content))
		assert.Error(t, err, content)
	}
}
