package task

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// PriorityFilter selects tasks by priority; FilterAll lets every task through
type PriorityFilter string

// FilterAll is the pass-through priority filter
const FilterAll PriorityFilter = "all"

// PriorityFilters lists every filter value in display order
var PriorityFilters = []PriorityFilter{
	FilterAll,
	PriorityFilter(PriorityHigh),
	PriorityFilter(PriorityMedium),
	PriorityFilter(PriorityLow),
}

// ErrUnknownFilter is returned when a string names no priority filter
var ErrUnknownFilter = errors.New("unknown priority filter")

// ParsePriorityFilter converts s into a PriorityFilter. An empty string
// means FilterAll.
func ParsePriorityFilter(s string) (PriorityFilter, error) {
	if s == "" {
		return FilterAll, nil
	}
	for _, f := range PriorityFilters {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownFilter, s)
}

// Matches reports whether p passes the filter
func (f PriorityFilter) Matches(p Priority) bool {
	return f == FilterAll || f == "" || Priority(f) == p
}

// Filter returns the tasks whose priority passes by and whose title contains
// query, ignoring case. A blank query matches every title. The result keeps
// the input order and never shares a backing array with tasks.
func Filter(tasks []Task, by PriorityFilter, query string) []Task {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(query))

	filtered := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if !by.Matches(t.Priority) {
			continue
		}
		if needle != "" && !strings.Contains(fold.String(t.Title), needle) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

// Summary counts tasks for the list header
type Summary struct {
	Total      int
	Completed  int
	ByPriority map[Priority]int
}

// Summarize counts tasks overall, completed, and per priority
func Summarize(tasks []Task) Summary {
	s := Summary{ByPriority: make(map[Priority]int, len(Priorities))}
	for _, t := range tasks {
		s.Total++
		if t.Completed {
			s.Completed++
		}
		s.ByPriority[t.Priority]++
	}
	return s
}
