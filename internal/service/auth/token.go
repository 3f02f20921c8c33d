package auth

import (
	"context"
	"time"
)

// TokenCodec defines operations for issuing and verifying bearer tokens.
type TokenCodec interface {
	// Encode creates a signed token carrying the user's identity.
	// Returns the token string or an error if signing fails.
	Encode(ctx context.Context, userID int64) (string, error)

	// Decode verifies the provided token string and extracts the claims.
	// Returns ErrExpiredToken if the token's lifetime has elapsed and
	// ErrInvalidToken for any other validation failure (malformed input,
	// bad signature, unexpected signing method). Claims are never returned
	// alongside an error.
	Decode(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the verified payload of a token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID int64

	// Standard registered JWT claims
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
