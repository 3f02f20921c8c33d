package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/todos-api/internal/api"
	"github.com/phrazzld/todos-api/internal/api/shared"
	"github.com/phrazzld/todos-api/internal/platform/logger"
	"github.com/phrazzld/todos-api/internal/service/auth"
	"github.com/phrazzld/todos-api/internal/store"
)

// RequestAuthorizer guards routes behind bearer-token authentication.
// It decodes the token, loads the account it names, and stores the
// resulting principal in the request context for handlers to use.
type RequestAuthorizer struct {
	tokens auth.TokenCodec
	users  store.UserStore
}

// NewRequestAuthorizer creates a new RequestAuthorizer with the given dependencies.
func NewRequestAuthorizer(tokens auth.TokenCodec, users store.UserStore) *RequestAuthorizer {
	return &RequestAuthorizer{
		tokens: tokens,
		users:  users,
	}
}

// Authorize validates the bearer token on the request and attaches the
// authenticated principal to the request context. Failures translate
// through the same catalog the handlers use.
//
// A request that already carries a principal passes through untouched, so
// a request routed across two authorized routers is only resolved once.
func (m *RequestAuthorizer) Authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := PrincipalFrom(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r,
				api.MapErrorToStatusCode(auth.ErrMissingToken),
				api.GetSafeErrorMessage(auth.ErrMissingToken))
			return
		}

		// The token is the last whitespace-separated field, so a bare
		// token works as well as the usual "Bearer <token>" form.
		token := ""
		if fields := strings.Fields(authHeader); len(fields) > 0 {
			token = fields[len(fields)-1]
		}

		claims, err := m.tokens.Decode(r.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				shared.RespondWithError(w, r,
					api.MapErrorToStatusCode(err), api.GetSafeErrorMessage(err))
				return
			}
			shared.RespondWithErrorAndLog(w, r,
				api.MapErrorToStatusCode(err), api.GetSafeErrorMessage(err), err,
				shared.WithElevatedLogLevel())
			return
		}

		user, err := m.users.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				// A well-signed token for a deleted account reads the
				// same as a forged one from the outside.
				shared.RespondWithError(w, r,
					api.MapErrorToStatusCode(auth.ErrInvalidToken),
					api.GetSafeErrorMessage(auth.ErrInvalidToken))
				return
			}

			log := logger.FromContextOrDefault(r.Context(), slog.Default())
			log.Error("failed to load user for authenticated request",
				"error", err,
				"user_id", claims.UserID)
			shared.RespondWithError(w, r,
				api.MapErrorToStatusCode(err), api.GetSafeErrorMessage(err))
			return
		}

		ctx := context.WithValue(r.Context(), shared.PrincipalContextKey, auth.NewPrincipal(user))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// PrincipalFrom extracts the authenticated principal from the context.
// The boolean reports whether one was present.
func PrincipalFrom(ctx context.Context) (auth.Principal, bool) {
	principal, ok := ctx.Value(shared.PrincipalContextKey).(auth.Principal)
	return principal, ok
}
