package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/todos-api/internal/api/shared"
	"github.com/phrazzld/todos-api/internal/platform/logger"
	"github.com/phrazzld/todos-api/internal/service/auth"
)

// AuthHandler handles the signup and login endpoints.
type AuthHandler struct {
	authenticator auth.Authenticator
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authenticator auth.Authenticator) *AuthHandler {
	if authenticator == nil {
		panic("authenticator cannot be nil")
	}

	return &AuthHandler{authenticator: authenticator}
}

// Signup handles POST /signup requests. It registers a new account and
// returns its first token, so a fresh signup is already logged in.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req SignupRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("failed to decode signup request", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	_, token, err := h.authenticator.Signup(
		r.Context(),
		req.Name,
		req.Email,
		req.Password,
		req.PasswordConfirmation,
	)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, SignupResponse{
		Message:   "Account created successfully",
		AuthToken: token,
	})
}

// Login handles POST /auth/login requests. Credential failures all read
// the same from the outside, whatever the underlying cause.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("failed to decode login request", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	token, err := h.authenticator.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{AuthToken: token})
}
