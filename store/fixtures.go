package store

import (
	"context"
	"embed"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dbfixture"

	"github.com/shopnest/backend/auth"
)

//go:embed fixtures/*.yml
var fixturesFS embed.FS

// DefaultAdminSeed matches the account the storefront expects on a fresh
// install. Override it through configuration before going anywhere public.
var DefaultAdminSeed = AdminSeed{
	Username: "admin",
	FullName: "ShopNest Administrator",
	Email:    "admin@shopnest.com",
	Password: "admin1234",
}

// AdminSeed describes the bootstrap administrator account.
type AdminSeed struct {
	Username string
	FullName string
	Email    string
	Password string
}

// SeedProducts loads the starter catalog from the bundled fixtures. It is a
// no-op when the catalog already has rows.
func SeedProducts(ctx context.Context, db *bun.DB) error {
	count, err := db.NewSelect().Model((*Product)(nil)).Count(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to count products before seeding")
	}
	if count > 0 {
		return nil
	}

	db.RegisterModel((*Product)(nil))

	fixture := dbfixture.New(db)
	if err := fixture.Load(ctx, fixturesFS, "fixtures/products.yml"); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to load product fixtures")
	}
	return nil
}

// SeedAdmin creates the bootstrap administrator unless an account with the
// seed email already exists. The password is hashed at seed time so no
// credential ever sits in the database in the clear.
func SeedAdmin(ctx context.Context, users *UsersRepository, seed AdminSeed) error {
	exists, err := users.ExistsByEmail(ctx, seed.Email)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to check for existing admin")
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword(seed.Password)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to hash admin password")
	}

	admin := &User{
		Username:     seed.Username,
		FullName:     seed.FullName,
		Email:        seed.Email,
		PasswordHash: hash,
		Role:         auth.RoleAdmin,
	}
	if id, err := hashid.NewUUID(seed.Email); err == nil {
		admin.ID = id
	}

	if _, err := users.Create(ctx, admin); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to create admin account")
	}
	return nil
}
