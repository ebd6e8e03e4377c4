// Package syncer routes every task mutation to either the remote store
// or a client-local mirror, falling back to the mirror when the remote
// cannot be reached.
package syncer

import (
	"taskpad/internal/model"
	"taskpad/internal/task"
)

// Mirror is the client-side task collection. It replicates the server
// store's CRUD contract (validation, id uniqueness, partial updates)
// and doubles as the displayed collection: remote results are merged
// into it, local-mode mutations land on it directly.
//
// Mirror is not safe for concurrent use; the controller serializes
// access to it.
type Mirror struct {
	tasks []model.Task
}

func NewMirror() *Mirror {
	return &Mirror{tasks: []model.Task{}}
}

func (m *Mirror) List() []model.Task {
	out := make([]model.Task, len(m.tasks))
	copy(out, m.tasks)
	return out
}

func (m *Mirror) Create(description string) (model.Task, error) {
	if err := task.ValidateDescription(description); err != nil {
		return model.Task{}, err
	}
	t := model.Task{
		ID:          task.NewID("local"),
		Description: description,
		IsCompleted: false,
	}
	m.tasks = append(m.tasks, t)
	return t, nil
}

func (m *Mirror) Update(id model.TaskID, p task.Patch) (model.Task, error) {
	i := m.find(id)
	if i < 0 {
		return model.Task{}, task.ErrNotFound
	}
	t := m.tasks[i]
	if err := p.Apply(&t); err != nil {
		return model.Task{}, err
	}
	m.tasks[i] = t
	return t, nil
}

func (m *Mirror) Delete(id model.TaskID) error {
	i := m.find(id)
	if i < 0 {
		return task.ErrNotFound
	}
	m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
	return nil
}

// ReplaceAll swaps in a fresh copy of the remote collection wholesale.
func (m *Mirror) ReplaceAll(ts []model.Task) {
	m.tasks = make([]model.Task, len(ts))
	copy(m.tasks, ts)
}

// Put merges a remote task: replace by id if present, append otherwise.
func (m *Mirror) Put(t model.Task) {
	if i := m.find(t.ID); i >= 0 {
		m.tasks[i] = t
		return
	}
	m.tasks = append(m.tasks, t)
}

// Remove drops a task by id. Unknown ids are a no-op so that merging a
// remote delete can never fail.
func (m *Mirror) Remove(id model.TaskID) {
	if i := m.find(id); i >= 0 {
		m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
	}
}

func (m *Mirror) find(id model.TaskID) int {
	for i, t := range m.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
