package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/todos-api/internal/api/shared"
	"github.com/phrazzld/todos-api/internal/domain"
	"github.com/phrazzld/todos-api/internal/service/auth"
)

// principalFromRequest extracts the authenticated principal from the
// request context. The principal is placed there by the authorization
// middleware; the boolean reports whether one was present.
func principalFromRequest(r *http.Request) (auth.Principal, bool) {
	principal, ok := r.Context().Value(shared.PrincipalContextKey).(auth.Principal)
	return principal, ok
}

// pathID extracts a positive numeric identifier from the URL path
// parameters. Returns an error for a missing, non-numeric, or
// non-positive value.
func pathID(r *http.Request, paramName string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, paramName), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: %s", domain.ErrInvalidID, paramName)
	}
	return id, nil
}
