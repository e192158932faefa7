package task

import (
	"time"

	"github.com/google/uuid"
)

// Ops computes the next task collection from the current one. Now and NewID
// are the only sources of non-determinism and can be replaced in tests.
type Ops struct {
	Now   func() time.Time
	NewID func() string
}

// NewOps returns Ops backed by the wall clock and random UUIDs
func NewOps() Ops {
	return Ops{
		Now:   time.Now,
		NewID: uuid.NewString,
	}
}

// Add validates in and appends a new open task. On validation failure the
// original collection is returned with a *ValidationError.
func (o Ops) Add(tasks []Task, in Input) ([]Task, error) {
	now := o.Now()
	draft, err := Validate(in, now)
	if err != nil {
		return tasks, err
	}

	next := make([]Task, len(tasks), len(tasks)+1)
	copy(next, tasks)
	next = append(next, Task{
		ID:          o.NewID(),
		Title:       draft.Title,
		Description: draft.Description,
		Priority:    draft.Priority,
		Completed:   false,
		DueDate:     draft.DueDate,
		CreatedAt:   now,
	})
	return next, nil
}

// Edit validates in and replaces the fields of the task with the given id,
// keeping its ID, completion state and creation time. An unknown id leaves
// the collection unchanged and is not an error.
func (o Ops) Edit(tasks []Task, id string, in Input) ([]Task, error) {
	draft, err := Validate(in, o.Now())
	if err != nil {
		return tasks, err
	}

	return replace(tasks, id, func(t Task) Task {
		t.Title = draft.Title
		t.Description = draft.Description
		t.Priority = draft.Priority
		t.DueDate = draft.DueDate
		return t
	}), nil
}

// Delete removes the task with the given id. Deleting an absent id is a no-op.
func Delete(tasks []Task, id string) []Task {
	if indexOf(tasks, id) < 0 {
		return tasks
	}
	next := make([]Task, 0, len(tasks)-1)
	for _, t := range tasks {
		if t.ID != id {
			next = append(next, t)
		}
	}
	return next
}

// SetCompleted sets the completion flag of the task with the given id.
// An absent id is a no-op.
func SetCompleted(tasks []Task, id string, completed bool) []Task {
	return replace(tasks, id, func(t Task) Task {
		t.Completed = completed
		return t
	})
}

// replace returns a copy of tasks with fn applied to every task matching id,
// or tasks itself when nothing matches.
func replace(tasks []Task, id string, fn func(Task) Task) []Task {
	if indexOf(tasks, id) < 0 {
		return tasks
	}
	next := make([]Task, len(tasks))
	for i, t := range tasks {
		if t.ID == id {
			t = fn(t)
		}
		next[i] = t
	}
	return next
}

func indexOf(tasks []Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns the task with the given id
func Find(tasks []Task, id string) (Task, bool) {
	if i := indexOf(tasks, id); i >= 0 {
		return tasks[i], true
	}
	return Task{}, false
}
