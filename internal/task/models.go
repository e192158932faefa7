package task

import (
	"errors"
	"fmt"
	"time"
)

// Priority is how urgent a task is
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists every priority in display order
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// ErrUnknownPriority is returned when a string names no priority
var ErrUnknownPriority = errors.New("unknown priority")

// ParsePriority converts s into a Priority
func ParsePriority(s string) (Priority, error) {
	for _, p := range Priorities {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownPriority, s)
}

// Task represents a single to-do item
type Task struct {
	ID          string
	Title       string
	Description string
	Priority    Priority
	Completed   bool
	DueDate     time.Time
	CreatedAt   time.Time
}

// IsOverdue reports whether the task is still open after its due date
func (t Task) IsOverdue(now time.Time) bool {
	if t.Completed || t.DueDate.IsZero() {
		return false
	}
	return now.After(t.DueDate)
}

// Input holds candidate field values as a form delivers them
type Input struct {
	Title       string
	Description string
	Priority    string
	DueDate     string
}

// Draft holds field values that passed validation
type Draft struct {
	Title       string
	Description string
	Priority    Priority
	DueDate     time.Time
}

// InputFrom returns the form values for an existing task
func InputFrom(t Task) Input {
	in := Input{
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
	}
	if !t.DueDate.IsZero() {
		in.DueDate = FormatDueDate(t.DueDate)
	}
	return in
}
