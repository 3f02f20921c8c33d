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

// ItemHandler handles item-related HTTP requests. Items are only ever
// reachable through their parent todo, so every operation resolves the
// {todoID} path parameter against the principal's todos first.
type ItemHandler struct {
	todos  store.TodoStore
	items  store.ItemStore
	logger *slog.Logger
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(todos store.TodoStore, items store.ItemStore, logger *slog.Logger) *ItemHandler {
	if logger == nil {
		panic("logger cannot be nil for ItemHandler")
	}

	return &ItemHandler{
		todos:  todos,
		items:  items,
		logger: logger.With(slog.String("component", "item_handler")),
	}
}

// parentTodo resolves the {todoID} path parameter against the
// principal's todos. On failure it writes the error response and
// returns false. A todo owned by another user resolves the same as a
// missing one.
func (h *ItemHandler) parentTodo(w http.ResponseWriter, r *http.Request, log *slog.Logger) (*domain.Todo, bool) {
	principal, ok := principalFromRequest(r)
	if !ok {
		log.Warn("principal not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, GetSafeErrorMessage(auth.ErrMissingToken))
		return nil, false
	}

	todoID, err := pathID(r, "todoID")
	if err != nil {
		log.Warn("invalid todo ID in path", slog.String("value", chi.URLParam(r, "todoID")))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid todo ID")
		return nil, false
	}

	todo, err := h.todos.GetForUser(r.Context(), todoID, principal.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return nil, false
	}

	return todo, true
}

// List handles GET /todos/{todoID}/items requests. It returns one page
// of the todo's items, oldest first.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	todo, ok := h.parentTodo(w, r, log)
	if !ok {
		return
	}

	limit, offset := shared.PageWindow(r)

	items, err := h.items.ListByTodo(r.Context(), todo.ID, limit, offset)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toItemResponses(items))
}

// Create handles POST /todos/{todoID}/items requests.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	todo, ok := h.parentTodo(w, r, log)
	if !ok {
		return
	}

	var req ItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("failed to decode item request", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	item, err := domain.NewItem(todo.ID, req.Name)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}
	if req.Done {
		item.SetDone(true)
	}

	if err := h.items.Create(r.Context(), item); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, toItemResponse(item))
}

// Get handles GET /todos/{todoID}/items/{itemID} requests.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	todo, ok := h.parentTodo(w, r, log)
	if !ok {
		return
	}

	itemID, err := pathID(r, "itemID")
	if err != nil {
		log.Warn("invalid item ID in path", slog.String("value", chi.URLParam(r, "itemID")))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid item ID")
		return
	}

	item, err := h.items.GetForTodo(r.Context(), itemID, todo.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toItemResponse(item))
}

// Update handles PUT /todos/{todoID}/items/{itemID} requests. The body
// replaces both the name and the done state.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	todo, ok := h.parentTodo(w, r, log)
	if !ok {
		return
	}

	itemID, err := pathID(r, "itemID")
	if err != nil {
		log.Warn("invalid item ID in path", slog.String("value", chi.URLParam(r, "itemID")))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid item ID")
		return
	}

	var req ItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("failed to decode item request", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	item, err := h.items.GetForTodo(r.Context(), itemID, todo.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if err := item.Rename(req.Name); err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}
	item.SetDone(req.Done)

	if err := h.items.Update(r.Context(), item); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /todos/{todoID}/items/{itemID} requests.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	todo, ok := h.parentTodo(w, r, log)
	if !ok {
		return
	}

	itemID, err := pathID(r, "itemID")
	if err != nil {
		log.Warn("invalid item ID in path", slog.String("value", chi.URLParam(r, "itemID")))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid item ID")
		return
	}

	if err := h.items.Delete(r.Context(), itemID, todo.ID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
