package auth

import (
	"context"
	"reflect"

	"github.com/goliatone/go-errors"
)

// Auther is the credential verifier. It delegates hash comparison to an
// IdentityProvider and mints tokens through its TokenService on success.
type Auther struct {
	provider     IdentityProvider
	tokenService TokenService
	logger       Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(provider IdentityProvider, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenExpiration(),
		opts.GetIssuer(),
		opts.GetAudience(),
		defLogger{},
	)

	return &Auther{
		provider:     provider,
		tokenService: tokenService,
		logger:       defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithTokenService overrides the token service used for minting.
func (s *Auther) WithTokenService(ts TokenService) *Auther {
	if ts != nil {
		s.tokenService = ts
	}
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login verifies the identifier/password pair and mints a token bound to the
// identity's email. Unknown identifiers and password mismatches both come
// back as ErrInvalidCredentials.
func (s *Auther) Login(ctx context.Context, identifier, password string) (string, Identity, error) {
	identity, err := s.provider.VerifyIdentity(ctx, identifier, password)
	if err != nil {
		s.logger.Debug("Login verify identity error: %v", err)
		if errors.Is(err, ErrIdentityNotFound) || errors.Is(err, ErrMismatchedHashAndPassword) {
			return "", nil, ErrInvalidCredentials
		}
		// Wrap keeps the source's category; provider failures must come
		// back as internal.
		rich := errors.New("failed to verify identity", errors.CategoryInternal).
			WithCode(errors.CodeInternal)
		rich.Source = err
		return "", nil, rich.WithMetadata(map[string]any{"cause": err.Error()})
	}

	if identity == nil || reflect.ValueOf(identity).IsZero() {
		s.logger.Error("Login identity is nil or zero value")
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokenService.Generate(identity.Email())
	if err != nil {
		s.logger.Error("Login token generation failed: %v", err)
		return "", nil, err
	}

	return token, identity, nil
}
