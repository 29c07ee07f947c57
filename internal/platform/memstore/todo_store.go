package memstore

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/inoUwU/todo-api/internal/domain"
	"github.com/inoUwU/todo-api/internal/store"
)

// TodoStore implements the store.TodoStore interface with an in-memory map.
// The map holds todo values rather than pointers, so callers can never
// alias store state: every read hands out a copy and every write replaces
// the stored value wholesale.
type TodoStore struct {
	mu     sync.RWMutex
	todos  map[uuid.UUID]domain.Todo
	logger *slog.Logger

	mLists   atomic.Uint64
	mSaves   atomic.Uint64
	mGets    atomic.Uint64
	mUpdates atomic.Uint64
	mDeletes atomic.Uint64
	mMisses  atomic.Uint64
}

// Stats is a point-in-time snapshot of the store's operation counters.
// Taking a snapshot never blocks store operations.
type Stats struct {
	Todos   uint64
	Lists   uint64
	Saves   uint64
	Gets    uint64
	Updates uint64
	Deletes uint64
	Misses  uint64
}

// NewTodoStore creates a new empty TodoStore.
func NewTodoStore(logger *slog.Logger) *TodoStore {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TodoStore")
	}

	return &TodoStore{
		todos:  make(map[uuid.UUID]domain.Todo),
		logger: logger.With(slog.String("component", "todo_store")),
	}
}

// List returns a snapshot of all todos currently in the store, in
// unspecified order. An empty store yields an empty, non-nil slice.
func (s *TodoStore) List(ctx context.Context) ([]domain.Todo, error) {
	s.mLists.Add(1)

	s.mu.RLock()
	defer s.mu.RUnlock()

	todos := make([]domain.Todo, 0, len(s.todos))
	for _, todo := range s.todos {
		todos = append(todos, todo)
	}

	return todos, nil
}

// Save inserts the todo, replacing any existing record with the same ID.
func (s *TodoStore) Save(ctx context.Context, todo *domain.Todo) error {
	if err := todo.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mSaves.Add(1)

	s.mu.Lock()
	s.todos[todo.ID] = *todo
	s.mu.Unlock()

	s.logger.Debug("todo saved",
		slog.String("todo_id", todo.ID.String()),
		slog.Bool("completed", todo.Completed))

	return nil
}

// GetByID retrieves a copy of the todo with the given ID, or
// store.ErrTodoNotFound when no such record exists.
func (s *TodoStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Todo, error) {
	s.mGets.Add(1)

	s.mu.RLock()
	todo, ok := s.todos[id]
	s.mu.RUnlock()

	if !ok {
		s.mMisses.Add(1)
		return nil, store.ErrTodoNotFound
	}

	return &todo, nil
}

// Update atomically applies the patch to the todo with the given ID. The
// lookup and the write happen under a single write-lock acquisition, so a
// concurrent update or delete on the same ID can never interleave with the
// read-modify-write and lose an update.
func (s *TodoStore) Update(
	ctx context.Context,
	id uuid.UUID,
	patch store.TodoPatch,
) (*domain.Todo, error) {
	s.mUpdates.Add(1)

	s.mu.Lock()
	defer s.mu.Unlock()

	todo, ok := s.todos[id]
	if !ok {
		s.mMisses.Add(1)
		return nil, store.ErrTodoNotFound
	}

	if patch.Text != nil {
		todo.Text = *patch.Text
	}
	if patch.Completed != nil {
		todo.Completed = *patch.Completed
	}

	s.todos[id] = todo

	s.logger.Debug("todo updated",
		slog.String("todo_id", id.String()),
		slog.Bool("text_changed", patch.Text != nil),
		slog.Bool("completed_changed", patch.Completed != nil))

	return &todo, nil
}

// Delete removes the todo with the given ID, or returns
// store.ErrTodoNotFound when no such record exists.
func (s *TodoStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mDeletes.Add(1)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.todos[id]; !ok {
		s.mMisses.Add(1)
		return store.ErrTodoNotFound
	}

	delete(s.todos, id)

	s.logger.Debug("todo deleted", slog.String("todo_id", id.String()))

	return nil
}

// Stats returns a snapshot of the operation counters and the current
// record count.
func (s *TodoStore) Stats() Stats {
	s.mu.RLock()
	count := uint64(len(s.todos))
	s.mu.RUnlock()

	return Stats{
		Todos:   count,
		Lists:   s.mLists.Load(),
		Saves:   s.mSaves.Load(),
		Gets:    s.mGets.Load(),
		Updates: s.mUpdates.Load(),
		Deletes: s.mDeletes.Load(),
		Misses:  s.mMisses.Load(),
	}
}
