package api

// Common request/response structures

// CreateTodoRequest defines the payload for the todo creation endpoint.
// Text is not validated; an absent or empty text yields a todo with empty
// text.
type CreateTodoRequest struct {
	Text string `json:"text"`
}

// UpdateTodoRequest defines the payload for the todo update endpoint.
// Both fields are optional; a nil field leaves the corresponding record
// field unchanged, and an empty body is a legal no-op update.
type UpdateTodoRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

// TodoResponse represents the response data for a todo
type TodoResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}
