package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/todos-api/internal/domain"
	"github.com/phrazzld/todos-api/internal/platform/logger"
	"github.com/phrazzld/todos-api/internal/store"
)

// CredentialVerifier checks a user's login credentials.
type CredentialVerifier interface {
	// Verify looks up the account for the given email and compares the
	// password against its stored digest. Returns the stored user on
	// success. Unknown email and wrong password both return
	// ErrInvalidCredentials.
	Verify(ctx context.Context, email, password string) (*domain.User, error)
}

// StoreCredentialVerifier implements CredentialVerifier against a UserStore.
type StoreCredentialVerifier struct {
	users     store.UserStore
	passwords PasswordVerifier
	logger    *slog.Logger
}

// Ensure StoreCredentialVerifier implements CredentialVerifier interface
var _ CredentialVerifier = (*StoreCredentialVerifier)(nil)

// NewCredentialVerifier creates a CredentialVerifier backed by the given
// user store and password verifier. If logger is nil, a default logger will
// be used.
func NewCredentialVerifier(
	users store.UserStore,
	passwords PasswordVerifier,
	logger *slog.Logger,
) *StoreCredentialVerifier {
	if users == nil {
		panic("users store cannot be nil")
	}
	if passwords == nil {
		panic("password verifier cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &StoreCredentialVerifier{
		users:     users,
		passwords: passwords,
		logger:    logger.With("component", "credential_verifier"),
	}
}

// Verify implements the CredentialVerifier interface.
func (v *StoreCredentialVerifier) Verify(
	ctx context.Context,
	email, password string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, v.logger)

	user, err := v.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login attempt for unknown email",
				"email", email)
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to look up user for login",
			"error", err,
			"email", email)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := v.passwords.Compare(user.PasswordDigest, password); err != nil {
		log.Debug("login attempt with wrong password",
			"user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
