package store

import (
	"context"

	"github.com/goliatone/go-errors"

	"github.com/shopnest/backend/auth"
)

type authIdentity struct {
	id       string
	username string
	email    string
	role     auth.UserRole
}

func (a authIdentity) ID() string          { return a.id }
func (a authIdentity) Username() string    { return a.username }
func (a authIdentity) Email() string       { return a.email }
func (a authIdentity) Role() auth.UserRole { return a.role }

// IdentityAdapter exposes the users repository through auth.IdentityProvider,
// so the authenticator never sees Bun models.
type IdentityAdapter struct {
	users  *UsersRepository
	logger auth.Logger
}

var _ auth.IdentityProvider = (*IdentityAdapter)(nil)

// NewIdentityAdapter creates the provider backed by the users repository.
func NewIdentityAdapter(users *UsersRepository) *IdentityAdapter {
	return &IdentityAdapter{users: users}
}

func (p *IdentityAdapter) WithLogger(logger auth.Logger) *IdentityAdapter {
	if logger != nil {
		p.logger = logger
	}
	return p
}

// VerifyIdentity will find the user by email and compare the password
// against the stored hash. An unknown email and a mismatched password return
// the same class of error, which the authenticator collapses into a uniform
// invalid-credentials response.
func (p *IdentityAdapter) VerifyIdentity(ctx context.Context, identifier, password string) (auth.Identity, error) {
	user, err := p.users.GetByEmail(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, auth.ErrIdentityNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	if err := auth.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, auth.ErrMismatchedHashAndPassword
	}

	return identityFromUser(user), nil
}

// FindIdentityByIdentifier resolves an identity without touching credentials.
func (p *IdentityAdapter) FindIdentityByIdentifier(ctx context.Context, identifier string) (auth.Identity, error) {
	user, err := p.users.GetByEmail(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, auth.ErrIdentityNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user")
	}
	return identityFromUser(user), nil
}

func identityFromUser(user *User) auth.Identity {
	return authIdentity{
		id:       user.ID.String(),
		username: user.Username,
		email:    user.Email,
		role:     user.Role,
	}
}
