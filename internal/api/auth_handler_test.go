package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/todos-api/internal/api/shared"
	"github.com/phrazzld/todos-api/internal/domain"
	"github.com/phrazzld/todos-api/internal/mocks"
	"github.com/phrazzld/todos-api/internal/service/auth"
	"github.com/phrazzld/todos-api/internal/store"
)

func TestSignup(t *testing.T) {
	t.Parallel()

	validPayload := map[string]interface{}{
		"name":                  "Jane Doe",
		"email":                 "jane@example.com",
		"password":              "secret123",
		"password_confirmation": "secret123",
	}

	tests := []struct {
		name         string
		payload      interface{}
		signupErr    error
		wantStatus   int
		wantMessage  string
		wantSignedUp bool
	}{
		{
			name:         "valid signup",
			payload:      validPayload,
			wantStatus:   http.StatusCreated,
			wantSignedUp: true,
		},
		{
			name: "duplicate email",
			payload: map[string]interface{}{
				"name":                  "Jane Doe",
				"email":                 "taken@example.com",
				"password":              "secret123",
				"password_confirmation": "secret123",
			},
			signupErr:   store.ErrEmailExists,
			wantStatus:  http.StatusUnprocessableEntity,
			wantMessage: "Validation failed: Email has already been taken",
		},
		{
			name: "missing name",
			payload: map[string]interface{}{
				"email":                 "jane@example.com",
				"password":              "secret123",
				"password_confirmation": "secret123",
			},
			wantStatus:  http.StatusUnprocessableEntity,
			wantMessage: "Validation failed: Name can't be blank",
		},
		{
			name: "malformed email",
			payload: map[string]interface{}{
				"name":                  "Jane Doe",
				"email":                 "not-an-email",
				"password":              "secret123",
				"password_confirmation": "secret123",
			},
			wantStatus:  http.StatusUnprocessableEntity,
			wantMessage: "Validation failed: Email is invalid",
		},
		{
			name: "confirmation mismatch",
			payload: map[string]interface{}{
				"name":                  "Jane Doe",
				"email":                 "jane@example.com",
				"password":              "secret123",
				"password_confirmation": "something-else",
			},
			wantStatus:  http.StatusUnprocessableEntity,
			wantMessage: "Validation failed: Password confirmation doesn't match Password",
		},
		{
			name:        "malformed JSON",
			payload:     `{"name": "Jane Doe",`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid request format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signupCalls := 0
			authenticator := &mocks.MockAuthenticator{
				SignupFn: func(ctx context.Context, name, email, password, confirmation string) (*domain.User, string, error) {
					signupCalls++
					if tt.signupErr != nil {
						return nil, "", tt.signupErr
					}
					return &domain.User{ID: 1, Name: name, Email: email}, "signup-token", nil
				},
			}
			handler := NewAuthHandler(authenticator)

			var body []byte
			switch payload := tt.payload.(type) {
			case string:
				body = []byte(payload)
			default:
				var err error
				body, err = json.Marshal(payload)
				require.NoError(t, err)
			}

			req := httptest.NewRequest("POST", "/signup", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			recorder := httptest.NewRecorder()

			handler.Signup(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantSignedUp {
				var resp SignupResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.Equal(t, "Account created successfully", resp.Message)
				assert.Equal(t, "signup-token", resp.AuthToken)
				assert.Equal(t, 1, signupCalls)
				return
			}

			var errResp shared.ErrorResponse
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&errResp))
			assert.Equal(t, tt.wantMessage, errResp.Message)

			if tt.signupErr == nil {
				// Requests rejected before the service is reached must
				// not create anything.
				assert.Zero(t, signupCalls)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		payload     interface{}
		loginErr    error
		wantStatus  int
		wantMessage string
		wantToken   bool
	}{
		{
			name: "valid login",
			payload: map[string]interface{}{
				"email":    "jane@example.com",
				"password": "secret123",
			},
			wantStatus: http.StatusOK,
			wantToken:  true,
		},
		{
			name: "wrong password",
			payload: map[string]interface{}{
				"email":    "jane@example.com",
				"password": "wrong-password",
			},
			loginErr:    auth.ErrInvalidCredentials,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid credentials",
		},
		{
			name: "unknown email",
			payload: map[string]interface{}{
				"email":    "ghost@example.com",
				"password": "secret123",
			},
			loginErr:    auth.ErrInvalidCredentials,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid credentials",
		},
		{
			name: "missing password",
			payload: map[string]interface{}{
				"email": "jane@example.com",
			},
			wantStatus:  http.StatusUnprocessableEntity,
			wantMessage: "Validation failed: Password can't be blank",
		},
		{
			name: "malformed email",
			payload: map[string]interface{}{
				"email":    "not-an-email",
				"password": "secret123",
			},
			wantStatus:  http.StatusUnprocessableEntity,
			wantMessage: "Validation failed: Email is invalid",
		},
		{
			name:        "malformed JSON",
			payload:     `{"email":`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid request format",
		},
		{
			name: "authenticator failure",
			payload: map[string]interface{}{
				"email":    "jane@example.com",
				"password": "secret123",
			},
			loginErr:    errors.New("database down"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authenticator := &mocks.MockAuthenticator{
				Token:    "login-token",
				LoginErr: tt.loginErr,
			}
			handler := NewAuthHandler(authenticator)

			var body []byte
			switch payload := tt.payload.(type) {
			case string:
				body = []byte(payload)
			default:
				var err error
				body, err = json.Marshal(payload)
				require.NoError(t, err)
			}

			req := httptest.NewRequest("POST", "/auth/login", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			recorder := httptest.NewRecorder()

			handler.Login(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantToken {
				var resp AuthResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.Equal(t, "login-token", resp.AuthToken)
				return
			}

			var errResp shared.ErrorResponse
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&errResp))
			assert.Equal(t, tt.wantMessage, errResp.Message)
		})
	}
}

// An unknown email and a wrong password must be indistinguishable from
// the outside.
func TestLoginFailuresReadTheSame(t *testing.T) {
	t.Parallel()

	authenticator := &mocks.MockAuthenticator{LoginErr: auth.ErrInvalidCredentials}
	handler := NewAuthHandler(authenticator)

	respond := func(payload map[string]interface{}) *httptest.ResponseRecorder {
		body, err := json.Marshal(payload)
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/auth/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()
		handler.Login(recorder, req)
		return recorder
	}

	unknownEmail := respond(map[string]interface{}{
		"email":    "ghost@example.com",
		"password": "secret123",
	})
	wrongPassword := respond(map[string]interface{}{
		"email":    "jane@example.com",
		"password": "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, unknownEmail.Code, wrongPassword.Code)
	assert.Equal(t, unknownEmail.Body.String(), wrongPassword.Body.String())
}

func TestNewAuthHandlerRequiresAuthenticator(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		NewAuthHandler(nil)
	})
}
