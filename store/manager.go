package store

import (
	"context"
	"database/sql"
	"log"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	Users() *UsersRepository
	Products() *ProductsRepository
	Orders() *OrdersRepository
	RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error
	Validate() error
	MustValidate()
}

type mngr struct {
	db       *bun.DB
	users    *UsersRepository
	products *ProductsRepository
	orders   *OrdersRepository
}

// NewRepositoryManager wires every repository over a shared Bun handle.
func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:       db,
		users:    NewUsersRepository(db),
		products: NewProductsRepository(db),
		orders:   NewOrdersRepository(db),
	}
}

func (m mngr) Users() *UsersRepository {
	return m.users
}

func (m mngr) Products() *ProductsRepository {
	return m.products
}

func (m mngr) Orders() *OrdersRepository {
	return m.orders
}

func (m mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized", errors.CategoryInternal)
	}

	if m.products == nil {
		return errors.New("repository products should be initialized", errors.CategoryInternal)
	}

	if m.orders == nil {
		return errors.New("repository orders should be initialized", errors.CategoryInternal)
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}
