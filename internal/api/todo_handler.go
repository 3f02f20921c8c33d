package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/todos-api/internal/api/shared"
	"github.com/phrazzld/todos-api/internal/domain"
	"github.com/phrazzld/todos-api/internal/platform/logger"
	"github.com/phrazzld/todos-api/internal/service/auth"
	"github.com/phrazzld/todos-api/internal/store"
)

// TodoHandler handles todo-related HTTP requests. Every operation is
// scoped to the authenticated principal; a todo owned by someone else
// is indistinguishable from one that does not exist.
type TodoHandler struct {
	todos  store.TodoStore
	items  store.ItemStore
	logger *slog.Logger
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(todos store.TodoStore, items store.ItemStore, logger *slog.Logger) *TodoHandler {
	if logger == nil {
		panic("logger cannot be nil for TodoHandler")
	}

	return &TodoHandler{
		todos:  todos,
		items:  items,
		logger: logger.With(slog.String("component", "todo_handler")),
	}
}

// List handles GET /todos requests. It returns one page of the
// principal's todos, newest first, each with its items embedded.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	principal, ok := principalFromRequest(r)
	if !ok {
		log.Warn("principal not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, GetSafeErrorMessage(auth.ErrMissingToken))
		return
	}

	limit, offset := shared.PageWindow(r)

	todos, err := h.todos.ListByUser(r.Context(), principal.ID, limit, offset)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	todoIDs := make([]int64, 0, len(todos))
	for _, todo := range todos {
		todoIDs = append(todoIDs, todo.ID)
	}

	itemsByTodo, err := h.items.ListByTodoIDs(r.Context(), todoIDs)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	responses := make([]TodoResponse, 0, len(todos))
	for _, todo := range todos {
		responses = append(responses, toTodoResponse(todo, itemsByTodo[todo.ID]))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// ListSummaries handles GET /todos requests for clients negotiated onto
// the lean listing. Scope and pagination match List; the embedded items
// are dropped.
func (h *TodoHandler) ListSummaries(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	principal, ok := principalFromRequest(r)
	if !ok {
		log.Warn("principal not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, GetSafeErrorMessage(auth.ErrMissingToken))
		return
	}

	limit, offset := shared.PageWindow(r)

	todos, err := h.todos.ListByUser(r.Context(), principal.ID, limit, offset)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	responses := make([]TodoSummaryResponse, 0, len(todos))
	for _, todo := range todos {
		responses = append(responses, toTodoSummaryResponse(todo))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// Create handles POST /todos requests.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	principal, ok := principalFromRequest(r)
	if !ok {
		log.Warn("principal not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, GetSafeErrorMessage(auth.ErrMissingToken))
		return
	}

	var req TodoRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("failed to decode todo request", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	todo, err := domain.NewTodo(principal.ID, req.Title)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	if err := h.todos.Create(r.Context(), todo); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, toTodoResponse(todo, nil))
}

// Get handles GET /todos/{todoID} requests. The todo is returned with
// all of its items embedded.
func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	principal, ok := principalFromRequest(r)
	if !ok {
		log.Warn("principal not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, GetSafeErrorMessage(auth.ErrMissingToken))
		return
	}

	todoID, err := pathID(r, "todoID")
	if err != nil {
		log.Warn("invalid todo ID in path", slog.String("value", chi.URLParam(r, "todoID")))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid todo ID")
		return
	}

	todo, err := h.todos.GetForUser(r.Context(), todoID, principal.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	itemsByTodo, err := h.items.ListByTodoIDs(r.Context(), []int64{todo.ID})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toTodoResponse(todo, itemsByTodo[todo.ID]))
}

// Update handles PUT /todos/{todoID} requests.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	principal, ok := principalFromRequest(r)
	if !ok {
		log.Warn("principal not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, GetSafeErrorMessage(auth.ErrMissingToken))
		return
	}

	todoID, err := pathID(r, "todoID")
	if err != nil {
		log.Warn("invalid todo ID in path", slog.String("value", chi.URLParam(r, "todoID")))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid todo ID")
		return
	}

	var req TodoRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("failed to decode todo request", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	todo, err := h.todos.GetForUser(r.Context(), todoID, principal.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if err := todo.Rename(req.Title); err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	if err := h.todos.Update(r.Context(), todo); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /todos/{todoID} requests. Items in the todo go
// with it.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	principal, ok := principalFromRequest(r)
	if !ok {
		log.Warn("principal not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, GetSafeErrorMessage(auth.ErrMissingToken))
		return
	}

	todoID, err := pathID(r, "todoID")
	if err != nil {
		log.Warn("invalid todo ID in path", slog.String("value", chi.URLParam(r, "todoID")))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid todo ID")
		return
	}

	if err := h.todos.Delete(r.Context(), todoID, principal.ID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
