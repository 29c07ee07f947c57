// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/inoUwU/todo-api/internal/api/shared"
	"github.com/inoUwU/todo-api/internal/domain"
	"github.com/inoUwU/todo-api/internal/platform/logger"
	"github.com/inoUwU/todo-api/internal/store"
)

// TodoHandler handles todo-related HTTP requests
type TodoHandler struct {
	todoStore store.TodoStore
	logger    *slog.Logger
}

// NewTodoHandler creates a new TodoHandler
func NewTodoHandler(todoStore store.TodoStore, logger *slog.Logger) *TodoHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TodoHandler")
	}

	return &TodoHandler{
		todoStore: todoStore,
		logger:    logger.With(slog.String("component", "todo_handler")),
	}
}

// ListTodos handles GET /todos requests
// It returns a snapshot of all todos as a JSON array, in unspecified order.
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	// Get logger from context or use default
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	todos, err := h.todoStore.List(r.Context())
	if err != nil {
		h.respondWithMappedError(w, r, err)
		return
	}

	response := make([]TodoResponse, 0, len(todos))
	for i := range todos {
		response = append(response, todoToResponse(&todos[i]))
	}

	log.Debug("listed todos", slog.Int("count", len(response)))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// CreateTodo handles POST /todos requests
// It constructs a todo with a freshly generated ID and Completed false and
// responds with the created record.
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	// Get logger from context or use default
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	// Parse request body. Text itself is not validated; only a body that
	// fails to decode as JSON is rejected.
	var req CreateTodoRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithStatus(w, r, http.StatusBadRequest)
		return
	}

	todo := domain.NewTodo(req.Text)

	if err := h.todoStore.Save(r.Context(), todo); err != nil {
		h.respondWithMappedError(w, r, err)
		return
	}

	log.Debug("todo created", slog.String("todo_id", todo.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, todoToResponse(todo))
}

// UpdateTodo handles PATCH /todos/{id} requests
// It applies a partial update: only the fields present in the body change.
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	// Get logger from context or use default
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.todoIDFromPath(w, r, log)
	if !ok {
		return
	}

	var req UpdateTodoRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", err.Error()),
			slog.String("todo_id", id.String()))
		shared.RespondWithStatus(w, r, http.StatusBadRequest)
		return
	}

	patch := store.TodoPatch{
		Text:      req.Text,
		Completed: req.Completed,
	}

	todo, err := h.todoStore.Update(r.Context(), id, patch)
	if err != nil {
		h.respondWithMappedError(w, r, err)
		return
	}

	log.Debug("todo updated", slog.String("todo_id", id.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, todoToResponse(todo))
}

// DeleteTodo handles DELETE /todos/{id} requests
// It removes the todo permanently; deleting an unknown ID yields 404.
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	// Get logger from context or use default
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.todoIDFromPath(w, r, log)
	if !ok {
		return
	}

	if err := h.todoStore.Delete(r.Context(), id); err != nil {
		h.respondWithMappedError(w, r, err)
		return
	}

	log.Debug("todo deleted", slog.String("todo_id", id.String()))
	shared.RespondWithStatus(w, r, http.StatusNoContent)
}

// todoIDFromPath extracts and parses the {id} path parameter. On failure it
// writes a 400 response and returns ok=false.
func (h *TodoHandler) todoIDFromPath(
	w http.ResponseWriter,
	r *http.Request,
	log *slog.Logger,
) (uuid.UUID, bool) {
	pathID := chi.URLParam(r, "id")
	if pathID == "" {
		log.Warn("todo ID not found in URL path")
		shared.RespondWithStatus(w, r, http.StatusBadRequest)
		return uuid.Nil, false
	}

	id, err := uuid.Parse(pathID)
	if err != nil {
		log.Warn("invalid todo ID format", slog.String("todo_id", pathID))
		shared.RespondWithStatus(w, r, http.StatusBadRequest)
		return uuid.Nil, false
	}

	return id, true
}

// respondWithMappedError translates a store error into the corresponding
// HTTP response. Only the 500 path carries a body; 404 and 408 are
// status-only.
func (h *TodoHandler) respondWithMappedError(w http.ResponseWriter, r *http.Request, err error) {
	statusCode := MapErrorToStatusCode(err)
	if statusCode == http.StatusInternalServerError {
		shared.RespondWithInternalError(w, r, err)
		return
	}
	shared.RespondWithStatusAndLog(w, r, statusCode, err)
}

// todoToResponse converts a domain.Todo to a TodoResponse
func todoToResponse(todo *domain.Todo) TodoResponse {
	return TodoResponse{
		ID:        todo.ID.String(),
		Text:      todo.Text,
		Completed: todo.Completed,
	}
}
