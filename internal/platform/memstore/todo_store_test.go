package memstore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/inoUwU/todo-api/internal/domain"
	"github.com/inoUwU/todo-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time check that TodoStore satisfies the store interface.
var _ store.TodoStore = (*TodoStore)(nil)

// newTestStore creates a TodoStore with a discarding logger for tests.
func newTestStore(t *testing.T) *TodoStore {
	t.Helper()
	return NewTodoStore(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestNewTodoStoreNilLoggerPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		NewTodoStore(nil)
	}, "NewTodoStore should panic when given a nil logger")
}

func TestSaveAndList(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	// An empty store lists as an empty, non-nil slice.
	todos, err := s.List(ctx)
	require.NoError(t, err)
	require.NotNil(t, todos, "List should never return nil")
	assert.Empty(t, todos)

	created := make(map[uuid.UUID]string)
	for i := 0; i < 5; i++ {
		todo := domain.NewTodo(fmt.Sprintf("task %d", i))
		require.NoError(t, s.Save(ctx, todo))
		_, exists := created[todo.ID]
		require.False(t, exists, "IDs must be distinct")
		created[todo.ID] = todo.Text
	}

	todos, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 5)

	// Order is unspecified; compare as a set.
	listed := make(map[uuid.UUID]string)
	for _, todo := range todos {
		listed[todo.ID] = todo.Text
	}
	assert.Equal(t, created, listed, "listing should return exactly the set of created records")
}

func TestSaveReplacesExisting(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	todo := domain.NewTodo("original")
	require.NoError(t, s.Save(ctx, todo))

	todo.Text = "replaced"
	todo.Completed = true
	require.NoError(t, s.Save(ctx, todo))

	got, err := s.GetByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "replaced", got.Text)
	assert.True(t, got.Completed)

	todos, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, todos, 1, "saving at an existing ID should replace, not duplicate")
}

func TestSaveInvalidTodo(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	err := s.Save(ctx, &domain.Todo{Text: "no id"})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.ErrorIs(t, err, domain.ErrTodoIDEmpty)

	todos, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, todos, "failed save should not mutate the store")
}

func TestGetByID(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	todo := domain.NewTodo("buy milk")
	require.NoError(t, s.Save(ctx, todo))

	got, err := s.GetByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, todo.ID, got.ID)
	assert.Equal(t, "buy milk", got.Text)
	assert.False(t, got.Completed)

	// Returned record is a copy; mutating it must not affect the store.
	got.Text = "mutated"
	again, err := s.GetByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "buy milk", again.Text)

	_, err = s.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrTodoNotFound)
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		patch         store.TodoPatch
		wantText      string
		wantCompleted bool
	}{
		{
			name:          "text_only",
			patch:         store.TodoPatch{Text: strPtr("updated")},
			wantText:      "updated",
			wantCompleted: false,
		},
		{
			name:          "completed_only",
			patch:         store.TodoPatch{Completed: boolPtr(true)},
			wantText:      "original",
			wantCompleted: true,
		},
		{
			name: "both_fields",
			patch: store.TodoPatch{
				Text:      strPtr("updated"),
				Completed: boolPtr(true),
			},
			wantText:      "updated",
			wantCompleted: true,
		},
		{
			name:          "empty_patch",
			patch:         store.TodoPatch{},
			wantText:      "original",
			wantCompleted: false,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s := newTestStore(t)
			ctx := context.Background()

			todo := domain.NewTodo("original")
			require.NoError(t, s.Save(ctx, todo))

			updated, err := s.Update(ctx, todo.ID, tc.patch)
			require.NoError(t, err)
			assert.Equal(t, todo.ID, updated.ID, "ID must never change")
			assert.Equal(t, tc.wantText, updated.Text)
			assert.Equal(t, tc.wantCompleted, updated.Completed)

			// The returned record matches what a subsequent read observes.
			got, err := s.GetByID(ctx, todo.ID)
			require.NoError(t, err)
			assert.Equal(t, *updated, *got)
		})
	}
}

func TestUpdateNotFound(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	todo := domain.NewTodo("untouched")
	require.NoError(t, s.Save(ctx, todo))

	_, err := s.Update(ctx, uuid.New(), store.TodoPatch{Text: strPtr("nope")})
	assert.ErrorIs(t, err, store.ErrTodoNotFound)

	// The failed update must not have mutated anything.
	got, err := s.GetByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "untouched", got.Text)

	todos, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, todos, 1)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	todo := domain.NewTodo("short-lived")
	require.NoError(t, s.Save(ctx, todo))

	require.NoError(t, s.Delete(ctx, todo.ID))

	// Deleting the same ID twice fails the second time.
	err := s.Delete(ctx, todo.ID)
	assert.ErrorIs(t, err, store.ErrTodoNotFound)

	todos, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestConcurrentSaves(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	ids := make([]uuid.UUID, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			todo := domain.NewTodo(fmt.Sprintf("task %d", i))
			ids[i] = todo.ID
			_ = s.Save(ctx, todo)
		}(i)
	}
	wg.Wait()

	todos, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, todos, n, "every concurrent save should land")

	seen := make(map[uuid.UUID]bool)
	for _, todo := range todos {
		seen[todo.ID] = true
	}
	for _, id := range ids {
		assert.True(t, seen[id])
	}
}

func TestConcurrentUpdatesNeverTear(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	todo := domain.NewTodo("contended")
	require.NoError(t, s.Save(ctx, todo))

	// Half the goroutines set both fields to the "a" shape, the other half
	// to the "b" shape. Under the whole-operation write lock the record
	// must always be observed in one shape or the other, never a mix.
	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var patch store.TodoPatch
			if i%2 == 0 {
				patch = store.TodoPatch{Text: strPtr("aaa"), Completed: boolPtr(false)}
			} else {
				patch = store.TodoPatch{Text: strPtr("bbb"), Completed: boolPtr(true)}
			}
			updated, err := s.Update(ctx, todo.ID, patch)
			if err != nil {
				t.Errorf("unexpected update error: %v", err)
				return
			}
			if updated.Text == "aaa" && updated.Completed {
				t.Errorf("torn record observed: text=%q completed=%v", updated.Text, updated.Completed)
			}
			if updated.Text == "bbb" && !updated.Completed {
				t.Errorf("torn record observed: text=%q completed=%v", updated.Text, updated.Completed)
			}
		}(i)
	}
	wg.Wait()

	got, err := s.GetByID(ctx, todo.ID)
	require.NoError(t, err)
	if got.Text == "aaa" {
		assert.False(t, got.Completed)
	} else {
		require.Equal(t, "bbb", got.Text)
		assert.True(t, got.Completed)
	}
}

func TestConcurrentUpdateAndDelete(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	// Each round races one update against one delete on the same ID. Both
	// outcomes are legal; what must never happen is an update "succeeding"
	// against a record that was already removed.
	for i := 0; i < 50; i++ {
		todo := domain.NewTodo("racy")
		require.NoError(t, s.Save(ctx, todo))

		var wg sync.WaitGroup
		wg.Add(2)
		var updateErr error
		go func() {
			defer wg.Done()
			_, updateErr = s.Update(ctx, todo.ID, store.TodoPatch{Completed: boolPtr(true)})
		}()
		go func() {
			defer wg.Done()
			_ = s.Delete(ctx, todo.ID)
		}()
		wg.Wait()

		if updateErr == nil {
			// The update won the race; the record may or may not still be
			// present depending on whether the delete ran after it.
			continue
		}
		assert.ErrorIs(t, updateErr, store.ErrTodoNotFound)
	}
}

func TestStats(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	todo := domain.NewTodo("counted")
	require.NoError(t, s.Save(ctx, todo))
	_, err := s.GetByID(ctx, todo.ID)
	require.NoError(t, err)
	_, err = s.GetByID(ctx, uuid.New())
	require.Error(t, err)
	_, err = s.Update(ctx, todo.ID, store.TodoPatch{Completed: boolPtr(true)})
	require.NoError(t, err)
	_, err = s.List(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, todo.ID))

	stats := s.Stats()
	assert.Equal(t, uint64(0), stats.Todos)
	assert.Equal(t, uint64(1), stats.Saves)
	assert.Equal(t, uint64(2), stats.Gets)
	assert.Equal(t, uint64(1), stats.Updates)
	assert.Equal(t, uint64(1), stats.Lists)
	assert.Equal(t, uint64(1), stats.Deletes)
	assert.Equal(t, uint64(1), stats.Misses)
}
