package engine

import (
	"fmt"
	"sort"
	"strings"
)

type StatusFilter string

const (
	StatusAll     StatusFilter = "all"
	StatusPending StatusFilter = "pending"
	StatusDone    StatusFilter = "done"
)

type SortBy string

const (
	SortCreated  SortBy = "created"
	SortPriority SortBy = "priority"
	SortDueDate  SortBy = "dueDate"
)

// Filter selects tasks for a view. A nil or empty Priorities set selects no
// task at all; use DefaultFilter for "everything".
type Filter struct {
	Status     StatusFilter
	Priorities []Priority
}

func DefaultFilter() Filter {
	return Filter{Status: StatusAll, Priorities: append([]Priority(nil), AllPriorities...)}
}

func ParseStatusFilter(input string) (StatusFilter, error) {
	s := StatusFilter(strings.TrimSpace(strings.ToLower(input)))
	switch s {
	case "":
		return StatusAll, nil
	case StatusAll, StatusPending, StatusDone:
		return s, nil
	default:
		return "", fmt.Errorf("invalid status filter: %q", input)
	}
}

func ParseSortBy(input string) (SortBy, error) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "", "created":
		return SortCreated, nil
	case "priority":
		return SortPriority, nil
	case "due", "duedate":
		return SortDueDate, nil
	default:
		return "", fmt.Errorf("invalid sort key: %q", input)
	}
}

// FilteredAndSorted is a pure view over tasks: the input slice is not modified.
func FilteredAndSorted(tasks []Task, f Filter, by SortBy) []Task {
	allowed := map[Priority]bool{}
	for _, p := range f.Priorities {
		allowed[p] = true
	}

	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		switch f.Status {
		case StatusPending:
			if t.Done {
				continue
			}
		case StatusDone:
			if !t.Done {
				continue
			}
		}
		if !allowed[t.Priority] {
			continue
		}
		out = append(out, t.clone())
	}

	newestFirst := func(a, b Task) bool { return a.Created.After(b.Created) }
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch by {
		case SortPriority:
			if a.Priority.rank() != b.Priority.rank() {
				return a.Priority.rank() < b.Priority.rank()
			}
		case SortDueDate:
			switch {
			case a.DueDate != nil && b.DueDate != nil:
				if !a.DueDate.Equal(*b.DueDate) {
					return a.DueDate.Before(*b.DueDate)
				}
			case a.DueDate != nil:
				return true
			case b.DueDate != nil:
				return false
			}
		}
		return newestFirst(a, b)
	})
	return out
}
