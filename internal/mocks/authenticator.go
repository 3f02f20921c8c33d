package mocks

import (
	"context"

	"github.com/phrazzld/todos-api/internal/domain"
)

// MockAuthenticator implements auth.Authenticator for testing
type MockAuthenticator struct {
	// LoginFn allows test cases to mock the Login behavior
	LoginFn func(ctx context.Context, email, password string) (string, error)

	// SignupFn allows test cases to mock the Signup behavior
	SignupFn func(ctx context.Context, name, email, password, confirmation string) (*domain.User, string, error)

	// Default values used when functions aren't explicitly defined
	Token     string
	User      *domain.User
	LoginErr  error
	SignupErr error
}

// Login implements the auth.Authenticator interface
func (m *MockAuthenticator) Login(ctx context.Context, email, password string) (string, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, email, password)
	}

	return m.Token, m.LoginErr
}

// Signup implements the auth.Authenticator interface
func (m *MockAuthenticator) Signup(
	ctx context.Context,
	name, email, password, confirmation string,
) (*domain.User, string, error) {
	if m.SignupFn != nil {
		return m.SignupFn(ctx, name, email, password, confirmation)
	}

	if m.SignupErr != nil {
		return nil, "", m.SignupErr
	}

	return m.User, m.Token, nil
}
