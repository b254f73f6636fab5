package state

import (
	"encoding/json"
	"errors"
	"fmt"

	"kraban/pkg/config"
	"kraban/pkg/utils"
)

// Documents written by basilk, the predecessor of kraban, are a bare array of
// projects whose tasks carry a status and a numeric priority.
type basilkProject struct {
	Title *string      `json:"title"`
	Tasks []basilkTask `json:"tasks"`
}

type basilkTask struct {
	Title    *string `json:"title"`
	Status   *string `json:"status"`
	Priority *int    `json:"priority"`
}

var basilkColumns = map[string]string{
	"UpNext":  "Backlog",
	"OnGoing": "Doing",
	"Done":    "Done",
}

var basilkPriorities = map[int]Priority{
	0: PriorityNone,
	1: PriorityLow,
	2: PriorityMedium,
	3: PriorityHigh,
}

// fromBasilk converts a legacy document. Structural problems are errors;
// a status or priority basilk never wrote panics.
func fromBasilk(data []byte, cfg *config.Config) (*State, error) {
	var legacy []basilkProject
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("parse basilk document: %w", err)
	}

	projects := make([]Project, 0, len(legacy))
	tasks := 0
	for i, lp := range legacy {
		if lp.Title == nil {
			return nil, fmt.Errorf("basilk project %d: missing title", i)
		}
		project := Project{Title: *lp.Title}
		for j, lt := range lp.Tasks {
			column, task, err := lt.convert(cfg)
			if err != nil {
				return nil, fmt.Errorf("basilk project %q task %d: %w", project.Title, j, err)
			}
			project.Columns.GetMut(column).Insert(task)
			tasks++
		}
		projects = append(projects, project)
	}

	utils.Logger().Info("migrated basilk state", "projects", len(projects), "tasks", tasks)
	s := New(projects)
	s.needsSave = true
	return s, nil
}

func (t basilkTask) convert(cfg *config.Config) (string, Task, error) {
	switch {
	case t.Title == nil:
		return "", Task{}, errors.New("missing title")
	case t.Status == nil:
		return "", Task{}, errors.New("missing status")
	case t.Priority == nil:
		return "", Task{}, errors.New("missing priority")
	}

	column, ok := basilkColumns[*t.Status]
	if !ok {
		panic(fmt.Sprintf("unknown basilk status %q", *t.Status))
	}
	priority, ok := basilkPriorities[*t.Priority]
	if !ok {
		panic(fmt.Sprintf("unknown basilk priority %d", *t.Priority))
	}

	task := Task{Title: *t.Title}.withPriority(priority, cfg.DefaultDueDates, today())
	return column, task, nil
}
