package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/todos-api/internal/api"
	apiMiddleware "github.com/phrazzld/todos-api/internal/api/middleware"
	"github.com/phrazzld/todos-api/internal/api/version"
)

// setupRouter creates and configures the application router with all
// routes and middleware. It accepts the application dependencies to
// create handlers and register routes. Returns the configured router.
func (app *application) setupRouter() (http.Handler, error) {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(app.authenticator)
	todoHandler := api.NewTodoHandler(app.todoStore, app.itemStore, app.logger)
	itemHandler := api.NewItemHandler(app.todoStore, app.itemStore, app.logger)
	authorizer := apiMiddleware.NewRequestAuthorizer(app.tokens, app.userStore)

	// Authentication endpoints (public)
	r.Post("/signup", authHandler.Signup)
	r.Post("/auth/login", authHandler.Login)

	// The todos surface is versioned: requests select a version with an
	// Accept media type, everything else lands on the default v1.
	v1 := todosRouterV1(authorizer, todoHandler, itemHandler)
	v2 := todosRouterV2(authorizer, todoHandler, v1)

	dispatcher, err := version.NewDispatcher(
		version.Binding{Spec: version.Spec{Label: "v2"}, Handler: v2},
		version.Binding{Spec: version.Spec{Label: "v1", Default: true}, Handler: v1},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble version dispatcher: %w", err)
	}

	r.Mount("/todos", dispatcher)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r, nil
}

// todosRouterV1 builds the full v1 todos surface: todo CRUD with items
// embedded in todo reads, and item CRUD nested under the parent todo.
func todosRouterV1(
	authorizer *apiMiddleware.RequestAuthorizer,
	todos *api.TodoHandler,
	items *api.ItemHandler,
) chi.Router {
	r := chi.NewRouter()
	r.Use(authorizer.Authorize)

	// Todo endpoints
	r.Get("/", todos.List)
	r.Post("/", todos.Create)
	r.Get("/{todoID}", todos.Get)
	r.Put("/{todoID}", todos.Update)
	r.Delete("/{todoID}", todos.Delete)

	// Item endpoints, nested under their parent todo
	r.Get("/{todoID}/items", items.List)
	r.Post("/{todoID}/items", items.Create)
	r.Get("/{todoID}/items/{itemID}", items.Get)
	r.Put("/{todoID}/items/{itemID}", items.Update)
	r.Delete("/{todoID}/items/{itemID}", items.Delete)

	return r
}

// todosRouterV2 serves the lean v2 todo listing. Every other operation
// is unchanged from v1, so unmatched paths and methods delegate to the
// v1 router instead of answering for themselves. The authorizer runs
// again on delegation, but a request that already carries a principal
// passes straight through.
func todosRouterV2(
	authorizer *apiMiddleware.RequestAuthorizer,
	todos *api.TodoHandler,
	v1 chi.Router,
) chi.Router {
	r := chi.NewRouter()
	r.Use(authorizer.Authorize)

	r.Get("/", todos.ListSummaries)
	r.NotFound(v1.ServeHTTP)
	r.MethodNotAllowed(v1.ServeHTTP)

	return r
}
