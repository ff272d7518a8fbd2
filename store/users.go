package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UsersRepository persists account records with Bun.
type UsersRepository struct {
	db *bun.DB
}

// NewUsersRepository creates a new repository.
func NewUsersRepository(db *bun.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

func (r *UsersRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.getBy(ctx, r.db, "id = ?", id)
}

func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getBy(ctx, r.db, "email = ?", email)
}

func (r *UsersRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.getBy(ctx, r.db, "username = ?", username)
}

func (r *UsersRepository) getBy(ctx context.Context, tx bun.IDB, where string, arg any) (*User, error) {
	user := &User{}
	err := tx.NewSelect().
		Model(user).
		Where(where, arg).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("user not found", errors.CategoryNotFound).
				WithCode(errors.CodeNotFound)
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load user")
	}
	return user, nil
}

func (r *UsersRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.ExistsByEmailTx(ctx, r.db, email)
}

func (r *UsersRepository) ExistsByEmailTx(ctx context.Context, tx bun.IDB, email string) (bool, error) {
	return r.exists(ctx, tx, "email = ?", email)
}

func (r *UsersRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.ExistsByUsernameTx(ctx, r.db, username)
}

func (r *UsersRepository) ExistsByUsernameTx(ctx context.Context, tx bun.IDB, username string) (bool, error) {
	return r.exists(ctx, tx, "username = ?", username)
}

func (r *UsersRepository) exists(ctx context.Context, tx bun.IDB, where string, arg any) (bool, error) {
	exists, err := tx.NewSelect().
		Model((*User)(nil)).
		Where(where, arg).
		Exists(ctx)
	if err != nil {
		return false, errors.Wrap(err, errors.CategoryInternal, "failed to check user existence")
	}
	return exists, nil
}

func (r *UsersRepository) Create(ctx context.Context, user *User) (*User, error) {
	return r.CreateTx(ctx, r.db, user)
}

func (r *UsersRepository) CreateTx(ctx context.Context, tx bun.IDB, user *User) (*User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := tx.NewInsert().Model(user).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create user")
	}
	return user, nil
}

// Update rewrites the mutable profile and document columns. The password
// hash has its own narrower write path.
func (r *UsersRepository) Update(ctx context.Context, user *User) (*User, error) {
	user.UpdatedAt = time.Now()

	res, err := r.db.NewUpdate().
		Model(user).
		Column("username", "full_name", "email", "phone", "address", "cart", "wishlist", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update user")
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, errors.New("user not found", errors.CategoryNotFound).
			WithCode(errors.CodeNotFound)
	}
	return user, nil
}

func (r *UsersRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	res, err := r.db.NewUpdate().
		Model((*User)(nil)).
		Set("password_hash = ?", passwordHash).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to update password hash")
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return errors.New("user not found", errors.CategoryNotFound).
			WithCode(errors.CodeNotFound)
	}
	return nil
}

func (r *UsersRepository) List(ctx context.Context) ([]User, error) {
	var users []User
	err := r.db.NewSelect().
		Model(&users).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list users")
	}
	return users, nil
}

func (r *UsersRepository) Count(ctx context.Context) (int, error) {
	count, err := r.db.NewSelect().Model((*User)(nil)).Count(ctx)
	if err != nil {
		return 0, errors.Wrap(err, errors.CategoryInternal, "failed to count users")
	}
	return count, nil
}
