package auth

import "github.com/phrazzld/todos-api/internal/domain"

// Principal is the authenticated identity attached to a request after its
// token has been verified and the account resolved. It lives in the request
// context for the duration of one request and is never persisted.
type Principal struct {
	ID    int64
	Name  string
	Email string
}

// NewPrincipal derives a Principal from a stored user.
func NewPrincipal(user *domain.User) Principal {
	return Principal{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}
