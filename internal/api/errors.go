package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/todos-api/internal/domain"
	"github.com/phrazzld/todos-api/internal/service/auth"
	"github.com/phrazzld/todos-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error kind. Every failure the token layer, the
// authenticator, or the stores can raise translates here, so no layer
// below this one picks status codes on its own.
func MapErrorToStatusCode(err error) int {
	var fieldErrs validator.ValidationErrors

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Validation errors, including uniqueness and referential violations
	case errors.As(err, &fieldErrs),
		domain.IsValidationError(err),
		errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusUnprocessableEntity

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the fixed client-facing message for the
// error kind. The message never reveals whether a given email, token,
// or record exists; the raw error stays in the logs.
func GetSafeErrorMessage(err error) string {
	// Handle nil error
	if err == nil {
		return "An unexpected error occurred"
	}

	var fieldErrs validator.ValidationErrors

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrMissingToken):
		return "Missing token"

	case errors.Is(err, auth.ErrExpiredToken):
		return "Sorry, your token has expired. Please login to continue."

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	// Not found errors
	case errors.Is(err, store.ErrTodoNotFound):
		return "Sorry, Todo not found"

	case errors.Is(err, store.ErrItemNotFound):
		return "Sorry, Item not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "Sorry, User not found"

	case errors.Is(err, store.ErrNotFound):
		return "Sorry, record not found"

	// Validation errors. ErrEmailExists wraps ErrDuplicate, so it has
	// to be matched before the generic duplicate case.
	case errors.Is(err, store.ErrEmailExists):
		return "Validation failed: Email has already been taken"

	case errors.As(err, &fieldErrs):
		return validationFailedMessage(fieldErrs)

	case domain.IsValidationError(err):
		return "Validation failed: " + domainValidationClause(err)

	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrInvalidEntity):
		return "Validation failed"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}

// validationFailedMessage renders field-level validation failures as a
// single sentence, one clause per failed field.
func validationFailedMessage(fieldErrs validator.ValidationErrors) string {
	clauses := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		clauses = append(clauses, humanizeFieldName(fieldErr.Field())+" "+validationTagClause(fieldErr))
	}
	return "Validation failed: " + strings.Join(clauses, ", ")
}

// validationTagClause maps a failed validation tag to its message clause.
func validationTagClause(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "can't be blank"
	case "email":
		return "is invalid"
	case "max":
		return fmt.Sprintf("is too long (maximum is %s characters)", fieldErr.Param())
	case "min":
		return fmt.Sprintf("is too short (minimum is %s characters)", fieldErr.Param())
	case "eqfield":
		return "doesn't match " + humanizeFieldName(fieldErr.Param())
	default:
		return "is invalid"
	}
}

// domainValidationClause maps entity validation sentinels to the clause
// that names the offending attribute.
func domainValidationClause(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyUserName):
		return "Name can't be blank"
	case errors.Is(err, domain.ErrEmptyEmail):
		return "Email can't be blank"
	case errors.Is(err, domain.ErrInvalidEmail):
		return "Email is invalid"
	case errors.Is(err, domain.ErrEmptyPassword):
		return "Password can't be blank"
	case errors.Is(err, domain.ErrPasswordTooLong):
		return "Password is too long (maximum is 72 characters)"
	case errors.Is(err, domain.ErrPasswordConfirmation):
		return "Password confirmation doesn't match Password"
	case errors.Is(err, domain.ErrEmptyTodoTitle):
		return "Title can't be blank"
	case errors.Is(err, domain.ErrEmptyItemName):
		return "Name can't be blank"
	default:
		return "Record is invalid"
	}
}

// humanizeFieldName turns a struct field name like "PasswordConfirmation"
// into the sentence form "Password confirmation".
func humanizeFieldName(field string) string {
	var b strings.Builder
	for i, r := range field {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
