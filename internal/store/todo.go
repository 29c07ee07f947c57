package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/inoUwU/todo-api/internal/domain"
)

// TodoPatch describes a partial update to a todo. A nil field leaves the
// corresponding record field unchanged; an all-nil patch is legal and
// leaves the record untouched.
type TodoPatch struct {
	Text      *string
	Completed *bool
}

// TodoStore defines the interface for todo data access.
type TodoStore interface {
	// List returns a snapshot of all todos currently in the store, in
	// unspecified order. An empty store yields an empty (non-nil) slice.
	List(ctx context.Context) ([]domain.Todo, error)

	// Save inserts the todo, replacing any existing record with the same ID.
	// Returns ErrInvalidEntity (wrapping the domain validation error) if the
	// todo has no ID.
	Save(ctx context.Context, todo *domain.Todo) error

	// GetByID retrieves a todo by its unique ID.
	// Returns ErrTodoNotFound if the todo does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Todo, error)

	// Update atomically applies the patch to the todo with the given ID and
	// returns the updated record. Only fields set in the patch change; the
	// lookup and the write happen under a single critical section, so a
	// concurrent update or delete can never interleave with them.
	// Returns ErrTodoNotFound, without mutating anything, if the todo does
	// not exist.
	Update(ctx context.Context, id uuid.UUID, patch TodoPatch) (*domain.Todo, error)

	// Delete removes a todo from the store by its ID.
	// Returns ErrTodoNotFound if the todo does not exist; deleting the same
	// ID twice therefore fails the second time.
	Delete(ctx context.Context, id uuid.UUID) error
}
