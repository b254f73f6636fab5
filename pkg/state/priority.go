package state

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Priority of a task or project. The zero value means no priority and ranks lowest.
type Priority int

const (
	PriorityNone Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
)

// Priorities lists the settable priorities from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) String() string {
	switch p {
	case PriorityNone:
		return "None"
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	}
	return fmt.Sprintf("Priority(%d)", int(p))
}

// ParsePriority parses a priority name case-insensitively. "" and "none" give PriorityNone.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return PriorityNone, nil
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	}
	return PriorityNone, fmt.Errorf("unknown priority %q", s)
}

func (p Priority) MarshalJSON() ([]byte, error) {
	if p == PriorityNone {
		return []byte("null"), nil
	}
	return json.Marshal(p.String())
}

func (p *Priority) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = PriorityNone
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for _, candidate := range Priorities {
		if candidate.String() == name {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown priority %q", name)
}

// Difficulty of a task. Easy ranks highest so easy work surfaces first;
// the zero value means no difficulty and ranks lowest.
type Difficulty int

const (
	DifficultyNone Difficulty = iota
	DifficultyHard
	DifficultyNormal
	DifficultyEasy
)

// Difficulties lists the settable difficulties from lowest to highest rank.
var Difficulties = []Difficulty{DifficultyHard, DifficultyNormal, DifficultyEasy}

func (d Difficulty) String() string {
	switch d {
	case DifficultyNone:
		return "None"
	case DifficultyHard:
		return "Hard"
	case DifficultyNormal:
		return "Normal"
	case DifficultyEasy:
		return "Easy"
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

// ParseDifficulty parses a difficulty name case-insensitively. "" and "none" give DifficultyNone.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return DifficultyNone, nil
	case "hard":
		return DifficultyHard, nil
	case "normal":
		return DifficultyNormal, nil
	case "easy":
		return DifficultyEasy, nil
	}
	return DifficultyNone, fmt.Errorf("unknown difficulty %q", s)
}

func (d Difficulty) MarshalJSON() ([]byte, error) {
	if d == DifficultyNone {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Difficulty) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = DifficultyNone
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for _, candidate := range Difficulties {
		if candidate.String() == name {
			*d = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown difficulty %q", name)
}
