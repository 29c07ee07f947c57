package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Todo-specific validation errors
var (
	// ErrTodoIDEmpty is returned when a todo ID is empty or nil.
	ErrTodoIDEmpty = errors.New("todo ID cannot be empty")
)

// Todo represents a single task record. Text is free-form and may be
// empty; Completed defaults to false on creation. The ID is assigned
// once at construction and never changes afterwards.
type Todo struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
}

// NewTodo creates a new Todo with the given text.
// It generates a new UUID for the todo ID and leaves Completed false.
func NewTodo(text string) *Todo {
	return &Todo{
		ID:        uuid.New(),
		Text:      text,
		Completed: false,
	}
}

// Validate checks if the Todo has valid data.
// Returns an error if any field fails validation.
func (t *Todo) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTodoIDEmpty
	}

	return nil
}
