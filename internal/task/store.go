package task

import (
	"errors"
	"strings"
	"sync"

	"taskpad/internal/model"

	"github.com/google/uuid"
)

var (
	ErrNotFound         = errors.New("task not found")
	ErrEmptyDescription = errors.New("task description must not be empty")
)

// Patch represents a partial update.
// nil pointer => "no change"
type Patch struct {
	Description *string `json:"description,omitempty"`
	IsCompleted *bool   `json:"isCompleted,omitempty"`
}

// Apply writes the non-nil patch fields onto t. A patch that would leave
// the task with an empty description fails with ErrEmptyDescription.
func (p Patch) Apply(t *model.Task) error {
	if p.Description != nil {
		if err := ValidateDescription(*p.Description); err != nil {
			return err
		}
		t.Description = *p.Description
	}
	if p.IsCompleted != nil {
		t.IsCompleted = *p.IsCompleted
	}
	return nil
}

// ValidateDescription rejects empty and all-whitespace descriptions.
func ValidateDescription(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrEmptyDescription
	}
	return nil
}

// NewID allocates a fresh task identifier. The prefix keeps the server
// and client-local id spaces disjoint.
func NewID(prefix string) model.TaskID {
	return model.TaskID(prefix + "_" + uuid.NewString())
}

type Store interface {
	List() []model.Task
	Get(id model.TaskID) (model.Task, error)
	Create(description string) (model.Task, error)
	Update(id model.TaskID, p Patch) (model.Task, error)
	Delete(id model.TaskID) error
}

// MemoryStore is the canonical in-memory task collection. The slice keeps
// insertion order, which List must preserve. All operations hold the mutex
// for their full duration so a single mutation is indivisible.
type MemoryStore struct {
	mu    sync.Mutex
	tasks []model.Task
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tasks: []model.Task{}}
}

func (s *MemoryStore) List() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *MemoryStore) Get(id model.TaskID) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.find(id)
	if i < 0 {
		return model.Task{}, ErrNotFound
	}
	return s.tasks[i], nil
}

func (s *MemoryStore) Create(description string) (model.Task, error) {
	if err := ValidateDescription(description); err != nil {
		return model.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := model.Task{
		ID:          NewID("task"),
		Description: description,
		IsCompleted: false,
	}
	s.tasks = append(s.tasks, t)
	return t, nil
}

func (s *MemoryStore) Update(id model.TaskID, p Patch) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.find(id)
	if i < 0 {
		return model.Task{}, ErrNotFound
	}

	t := s.tasks[i]
	if err := p.Apply(&t); err != nil {
		return model.Task{}, err
	}
	s.tasks[i] = t
	return t, nil
}

func (s *MemoryStore) Delete(id model.TaskID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.find(id)
	if i < 0 {
		return ErrNotFound
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return nil
}

func (s *MemoryStore) find(id model.TaskID) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
