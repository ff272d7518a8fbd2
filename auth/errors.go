package auth

import (
	"strings"

	"github.com/goliatone/go-errors"
)

const (
	TextCodeInvalidCredentials  = "auth_invalid_credentials"
	TextCodeDuplicateHandle     = "auth_duplicate_username"
	TextCodeDuplicateIdentifier = "auth_duplicate_email"
	TextCodeTokenExpired        = "auth_token_expired"
	TextCodeTokenMalformed      = "auth_token_malformed"
	TextCodeUnauthorized        = "auth_unauthorized"
	TextCodeUnknownRole         = "auth_unknown_role"
)

// ErrInvalidCredentials is returned for both an unknown identifier and a
// password mismatch so callers cannot enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid email or password", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrDuplicateHandle is returned when the username is already taken.
var ErrDuplicateHandle = errors.New("username is already taken", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicateHandle).
	WithCode(errors.CodeConflict)

// ErrDuplicateIdentifier is returned when the email is already in use.
var ErrDuplicateIdentifier = errors.New("email is already in use", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicateIdentifier).
	WithCode(errors.CodeConflict)

// ErrTokenExpired is returned when a token's embedded deadline has passed.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed covers every other token validation failure: bad
// signature, wrong signing method, undecodable claims.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrUnauthorized is emitted by route policy enforcement when an
// identity-requiring route is hit without a resolved subject.
var ErrUnauthorized = errors.New("authentication required", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthorized).
	WithCode(errors.CodeUnauthorized)

// ErrUnknownRole is returned when a registration payload carries a role
// outside the closed USER/ADMIN set.
var ErrUnknownRole = errors.New("unknown role", errors.CategoryValidation).
	WithTextCode(TextCodeUnknownRole).
	WithCode(errors.CodeBadRequest)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound)

// ErrMismatchedHashAndPassword signals a bcrypt comparison failure. The
// authenticator collapses it into ErrInvalidCredentials before it reaches
// a caller.
var ErrMismatchedHashAndPassword = errors.New("mismatched hash and password", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString rejects empty passwords before hashing.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithCode(errors.CodeBadRequest)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenMalformed) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed")
}
