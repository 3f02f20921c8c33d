package api

import (
	"time"

	"github.com/phrazzld/todos-api/internal/domain"
)

// Common request/response structures

// SignupRequest defines the payload for the account signup endpoint.
type SignupRequest struct {
	Name                 string `json:"name"                  validate:"required"`
	Email                string `json:"email"                 validate:"required,email"`
	Password             string `json:"password"              validate:"required,max=72"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignupResponse defines the successful response for the signup endpoint.
type SignupResponse struct {
	Message   string `json:"message"`
	AuthToken string `json:"auth_token"`
}

// AuthResponse defines the successful response for the login endpoint.
type AuthResponse struct {
	AuthToken string `json:"auth_token"`
}

// TodoRequest defines the payload for creating or updating a todo.
type TodoRequest struct {
	Title string `json:"title" validate:"required"`
}

// ItemRequest defines the payload for creating or updating an item.
// Done is optional and defaults to false.
type ItemRequest struct {
	Name string `json:"name" validate:"required"`
	Done bool   `json:"done"`
}

// TodoResponse represents a todo with its items embedded.
type TodoResponse struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"user_id"`
	Title     string         `json:"title"`
	Items     []ItemResponse `json:"items"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// TodoSummaryResponse represents a todo without its items. The lean
// shape is what the v2 listing returns.
type TodoSummaryResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ItemResponse represents a single item in a todo.
type ItemResponse struct {
	ID        int64     `json:"id"`
	TodoID    int64     `json:"todo_id"`
	Name      string    `json:"name"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// toTodoResponse maps a todo and its items to the response shape.
// The items key is always present, empty when the todo has none.
func toTodoResponse(todo *domain.Todo, items []*domain.Item) TodoResponse {
	return TodoResponse{
		ID:        todo.ID,
		UserID:    todo.UserID,
		Title:     todo.Title,
		Items:     toItemResponses(items),
		CreatedAt: todo.CreatedAt,
		UpdatedAt: todo.UpdatedAt,
	}
}

// toTodoSummaryResponse maps a todo to the lean response shape.
func toTodoSummaryResponse(todo *domain.Todo) TodoSummaryResponse {
	return TodoSummaryResponse{
		ID:        todo.ID,
		UserID:    todo.UserID,
		Title:     todo.Title,
		CreatedAt: todo.CreatedAt,
		UpdatedAt: todo.UpdatedAt,
	}
}

// toItemResponse maps an item to the response shape.
func toItemResponse(item *domain.Item) ItemResponse {
	return ItemResponse{
		ID:        item.ID,
		TodoID:    item.TodoID,
		Name:      item.Name,
		Done:      item.Done,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

// toItemResponses maps a slice of items, returning an empty slice, not
// nil, so list responses encode as [] rather than null.
func toItemResponses(items []*domain.Item) []ItemResponse {
	responses := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toItemResponse(item))
	}
	return responses
}
