package mocks

import (
	"context"

	"github.com/phrazzld/todos-api/internal/service/auth"
)

// MockTokenCodec implements auth.TokenCodec for testing
type MockTokenCodec struct {
	// EncodeFn allows test cases to mock the Encode behavior
	EncodeFn func(ctx context.Context, userID int64) (string, error)

	// DecodeFn allows test cases to mock the Decode behavior
	DecodeFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Default values used when functions aren't explicitly defined
	Token     string
	EncodeErr error
	Claims    *auth.Claims
	DecodeErr error
}

// Encode implements the auth.TokenCodec interface
func (m *MockTokenCodec) Encode(ctx context.Context, userID int64) (string, error) {
	if m.EncodeFn != nil {
		return m.EncodeFn(ctx, userID)
	}

	return m.Token, m.EncodeErr
}

// Decode implements the auth.TokenCodec interface
func (m *MockTokenCodec) Decode(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.DecodeFn != nil {
		return m.DecodeFn(ctx, tokenString)
	}

	return m.Claims, m.DecodeErr
}
