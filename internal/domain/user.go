package domain

import (
	"fmt"
	"strings"
	"time"
)

// Common validation errors for User
var (
	ErrEmptyUserName        = fmt.Errorf("%w: name cannot be empty", ErrValidation)
	ErrEmptyEmail           = fmt.Errorf("%w: email cannot be empty", ErrValidation)
	ErrInvalidEmail         = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrEmptyPassword        = fmt.Errorf("%w: password cannot be empty", ErrValidation)
	ErrPasswordTooLong      = fmt.Errorf("%w: password must be at most 72 characters long", ErrValidation)
	ErrPasswordConfirmation = fmt.Errorf("%w: password confirmation does not match password", ErrValidation)
	ErrEmptyPasswordDigest  = fmt.Errorf("%w: password digest cannot be empty", ErrValidation)
)

// maxPasswordLength is bcrypt's practical input limit in bytes.
const maxPasswordLength = 72

// User represents a registered account. It carries authentication details
// alongside profile information.
type User struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext password, held only between signup and hashing
	PasswordDigest string    `json:"-"` // Never expose the bcrypt digest in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given name, email, and plaintext
// password and sets the creation/update timestamps. The ID is assigned by
// the database on insert. Returns an error if validation fails.
//
// NOTE: This function only sets up the user structure with the plaintext
// password. The caller is responsible for hashing it before storage.
func NewUser(name, email, password string) (*User, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}

	now := time.Now().UTC()
	user := &User{
		Name:      name,
		Email:     email,
		Password:  password, // Plaintext password - must be hashed before storage
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
//
// The ID is deliberately not checked: it is zero until the database assigns
// one on insert.
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrEmptyUserName
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if u.Password != "" {
		// A plaintext password is present during signup; bcrypt silently
		// truncates inputs past 72 bytes, so reject them up front.
		if len(u.Password) > maxPasswordLength {
			return ErrPasswordTooLong
		}
	} else {
		// Without a plaintext password the user must already carry a
		// digest (the case for users loaded from the database).
		if u.PasswordDigest == "" {
			return ErrEmptyPasswordDigest
		}
	}

	return nil
}

// validEmailFormat performs a basic structural check of an email address:
// a non-empty local part, an @, and a domain containing an interior dot.
// Request-level validation applies stricter rules; this is a backstop for
// entities constructed outside the HTTP layer.
func validEmailFormat(email string) bool {
	at := strings.LastIndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}
