package version

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// namedHandler responds with its own name so tests can tell which
// binding served the request.
func namedHandler(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(name))
	})
}

func TestNewDispatcherValidation(t *testing.T) {
	t.Parallel()

	v1 := Spec{Label: "v1", Default: true}
	v2 := Spec{Label: "v2"}
	v3 := Spec{Label: "v3"}

	tests := []struct {
		name        string
		bindings    []Binding
		errContains string
	}{
		{
			name:        "no bindings",
			bindings:    nil,
			errContains: "at least one binding",
		},
		{
			name: "no default",
			bindings: []Binding{
				{Spec: v2, Handler: namedHandler("v2")},
				{Spec: v3, Handler: namedHandler("v3")},
			},
			errContains: "exactly one binding must be the default, got 0",
		},
		{
			name: "two defaults",
			bindings: []Binding{
				{Spec: Spec{Label: "v2", Default: true}, Handler: namedHandler("v2")},
				{Spec: v1, Handler: namedHandler("v1")},
			},
			errContains: "exactly one binding must be the default, got 2",
		},
		{
			name: "default registered first",
			bindings: []Binding{
				{Spec: v1, Handler: namedHandler("v1")},
				{Spec: v2, Handler: namedHandler("v2")},
			},
			errContains: "must be registered last",
		},
		{
			name: "missing handler",
			bindings: []Binding{
				{Spec: v1},
			},
			errContains: `binding "v1" has no handler`,
		},
		{
			name: "missing label",
			bindings: []Binding{
				{Spec: Spec{Default: true}, Handler: namedHandler("v1")},
			},
			errContains: "binding 0 has no label",
		},
		{
			name: "single default binding",
			bindings: []Binding{
				{Spec: v1, Handler: namedHandler("v1")},
			},
		},
		{
			name: "non-defaults before the default",
			bindings: []Binding{
				{Spec: v3, Handler: namedHandler("v3")},
				{Spec: v2, Handler: namedHandler("v2")},
				{Spec: v1, Handler: namedHandler("v1")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDispatcher(tt.bindings...)

			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				assert.Nil(t, d)
				return
			}

			require.NoError(t, err)
			assert.NotNil(t, d)
		})
	}
}

func TestDispatcherServeHTTP(t *testing.T) {
	t.Parallel()

	dispatcher, err := NewDispatcher(
		Binding{Spec: Spec{Label: "v2"}, Handler: namedHandler("v2")},
		Binding{Spec: Spec{Label: "v1", Default: true}, Handler: namedHandler("v1")},
	)
	require.NoError(t, err)

	tests := []struct {
		name        string
		accept      string
		wantHandler string
	}{
		{
			name:        "v2 requested",
			accept:      "application/vnd.todos.v2+json",
			wantHandler: "v2",
		},
		{
			name:        "v1 requested",
			accept:      "application/vnd.todos.v1+json",
			wantHandler: "v1",
		},
		{
			name:        "no accept header falls to the default",
			accept:      "",
			wantHandler: "v1",
		},
		{
			name:        "unknown version falls to the default",
			accept:      "application/vnd.todos.v9+json",
			wantHandler: "v1",
		},
		{
			name:        "plain json falls to the default",
			accept:      "application/json",
			wantHandler: "v1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/todos", nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			recorder := httptest.NewRecorder()

			dispatcher.ServeHTTP(recorder, req)

			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.Equal(t, tt.wantHandler, recorder.Body.String())
		})
	}
}

func TestDispatcherFirstMatchWins(t *testing.T) {
	t.Parallel()

	dispatcher, err := NewDispatcher(
		Binding{Spec: Spec{Label: "v3"}, Handler: namedHandler("v3")},
		Binding{Spec: Spec{Label: "v2"}, Handler: namedHandler("v2")},
		Binding{Spec: Spec{Label: "v1", Default: true}, Handler: namedHandler("v1")},
	)
	require.NoError(t, err)

	// The Accept header names two bound versions; registration order
	// decides between them.
	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.Header.Set("Accept", "application/vnd.todos.v2+json, application/vnd.todos.v3+json")
	recorder := httptest.NewRecorder()

	dispatcher.ServeHTTP(recorder, req)

	assert.Equal(t, "v3", recorder.Body.String())
}
