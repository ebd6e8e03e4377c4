// Package view derives the display order of a task collection. The
// result is recomputed from scratch on every render; nothing here keeps
// state that could drift from the source collection.
package view

import (
	"sort"

	"taskpad/internal/model"
)

type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

// Next cycles through the filters in UI order.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterPending
	case FilterPending:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// Derive sorts pending tasks before completed ones (stable, so equal
// statuses keep their relative order) and then applies the filter. The
// input slice is left untouched.
func Derive(tasks []model.Task, f Filter) []model.Task {
	sorted := make([]model.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return !sorted[i].IsCompleted && sorted[j].IsCompleted
	})

	out := make([]model.Task, 0, len(sorted))
	for _, t := range sorted {
		switch f {
		case FilterPending:
			if t.IsCompleted {
				continue
			}
		case FilterCompleted:
			if !t.IsCompleted {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}
