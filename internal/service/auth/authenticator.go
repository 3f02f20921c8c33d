package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/todos-api/internal/domain"
	"github.com/phrazzld/todos-api/internal/platform/logger"
	"github.com/phrazzld/todos-api/internal/store"
)

// Authenticator orchestrates the signup and login flows. It is the only
// entry point the HTTP handlers use for authentication.
type Authenticator interface {
	// Login verifies the credentials and issues a token for the account.
	// Returns ErrInvalidCredentials for an unknown email or wrong password.
	Login(ctx context.Context, email, password string) (string, error)

	// Signup registers a new account and issues its first token by logging
	// the account in with the same credentials. Returns the created user
	// and the token. A password/confirmation mismatch fails with
	// domain.ErrPasswordConfirmation before anything is stored.
	Signup(ctx context.Context, name, email, password, confirmation string) (*domain.User, string, error)
}

// AuthenticatorImpl implements the Authenticator interface
type AuthenticatorImpl struct {
	credentials CredentialVerifier
	tokens      TokenCodec
	users       store.UserStore
	db          *sql.DB
	logger      *slog.Logger
}

// Ensure AuthenticatorImpl implements Authenticator interface
var _ Authenticator = (*AuthenticatorImpl)(nil)

// NewAuthenticator creates a new Authenticator. The db handle is used to
// wrap user creation in a transaction. If logger is nil, a default logger
// will be used.
func NewAuthenticator(
	credentials CredentialVerifier,
	tokens TokenCodec,
	users store.UserStore,
	db *sql.DB,
	logger *slog.Logger,
) *AuthenticatorImpl {
	if credentials == nil {
		panic("credential verifier cannot be nil")
	}
	if tokens == nil {
		panic("token codec cannot be nil")
	}
	if users == nil {
		panic("users store cannot be nil")
	}
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthenticatorImpl{
		credentials: credentials,
		tokens:      tokens,
		users:       users,
		db:          db,
		logger:      logger.With("component", "authenticator"),
	}
}

// Login implements the Authenticator interface.
func (a *AuthenticatorImpl) Login(ctx context.Context, email, password string) (string, error) {
	log := logger.FromContextOrDefault(ctx, a.logger)

	user, err := a.credentials.Verify(ctx, email, password)
	if err != nil {
		return "", err
	}

	token, err := a.tokens.Encode(ctx, user.ID)
	if err != nil {
		log.Error("failed to issue token",
			"error", err,
			"user_id", user.ID)
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	log.Info("user logged in",
		"user_id", user.ID)

	return token, nil
}

// Signup implements the Authenticator interface.
// User creation runs in a transaction; the follow-up login reuses the
// credentials the caller supplied, so a signup response always carries a
// token that the login endpoint would also have issued.
func (a *AuthenticatorImpl) Signup(
	ctx context.Context,
	name, email, password, confirmation string,
) (*domain.User, string, error) {
	log := logger.FromContextOrDefault(ctx, a.logger)

	if password != confirmation {
		log.Debug("signup with mismatched password confirmation",
			"email", email)
		return nil, "", domain.ErrPasswordConfirmation
	}

	user, err := domain.NewUser(name, email, password)
	if err != nil {
		log.Debug("signup with invalid user data",
			"error", err,
			"email", email)
		return nil, "", err
	}

	err = store.RunInTransaction(ctx, a.db, func(ctx context.Context, tx *sql.Tx) error {
		return a.users.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("signup with existing email",
				"email", email)
		} else {
			log.Error("failed to create user",
				"error", err,
				"email", email)
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := a.Login(ctx, email, password)
	if err != nil {
		log.Error("failed to log in newly created user",
			"error", err,
			"user_id", user.ID)
		return nil, "", fmt.Errorf("account created but login failed: %w", err)
	}

	log.Info("user signed up",
		"user_id", user.ID,
		"email", user.Email)

	return user, token, nil
}
