package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// DefaultContextKey is the fiber locals key the guard stores the Subject under.
const DefaultContextKey = "auth_subject"

// DefaultAuthScheme is the expected authorization header scheme.
const DefaultAuthScheme = "Bearer"

// GuardConfig configures the token guard middleware.
type GuardConfig struct {
	// Validator checks signature and expiry; it is the only collaborator the
	// guard talks to. No store lookups happen per request.
	Validator TokenValidator
	// ContextKey is the fiber locals key for the resolved Subject.
	// Defaults to DefaultContextKey.
	ContextKey string
	// AuthScheme defaults to DefaultAuthScheme.
	AuthScheme string
	Logger     Logger
}

// TokenGuard returns the per-request middleware. It resolves an identity
// from the Authorization header when it can and continues the request either
// way: a missing header, a wrong scheme, an expired token, or a tampered
// signature all yield an anonymous request, never an abort. Rejection is the
// route policy's job, not the guard's.
func TokenGuard(cfg GuardConfig) fiber.Handler {
	contextKey := cfg.ContextKey
	if contextKey == "" {
		contextKey = DefaultContextKey
	}
	scheme := cfg.AuthScheme
	if scheme == "" {
		scheme = DefaultAuthScheme
	}
	logger := cfg.Logger
	if logger == nil {
		logger = defLogger{}
	}

	return func(c *fiber.Ctx) error {
		raw, ok := extractBearerToken(c.Get(fiber.HeaderAuthorization), scheme)
		if !ok {
			return c.Next()
		}

		claims, err := cfg.Validator.Validate(raw)
		if err != nil {
			logger.Debug("TokenGuard treating request as unauthenticated: %v", err)
			return c.Next()
		}

		subject := &Subject{ID: claims.Subject()}
		c.Locals(contextKey, subject)
		c.SetUserContext(WithSubject(c.UserContext(), subject))

		return c.Next()
	}
}

// SubjectFromFiber reads the Subject attached by TokenGuard. The boolean is
// false for anonymous requests.
func SubjectFromFiber(c *fiber.Ctx, key string) (*Subject, bool) {
	if key == "" {
		key = DefaultContextKey
	}
	subject, ok := c.Locals(key).(*Subject)
	if !ok || !subject.Authenticated() {
		return nil, false
	}
	return subject, true
}

func extractBearerToken(header, scheme string) (string, bool) {
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], scheme) {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
