package store

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ProductsRepository persists catalog entries with Bun.
type ProductsRepository struct {
	db *bun.DB
}

// NewProductsRepository creates a new repository.
func NewProductsRepository(db *bun.DB) *ProductsRepository {
	return &ProductsRepository{db: db}
}

func (r *ProductsRepository) List(ctx context.Context) ([]Product, error) {
	var products []Product
	err := r.db.NewSelect().
		Model(&products).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list products")
	}
	return products, nil
}

func (r *ProductsRepository) ListByCategory(ctx context.Context, category string) ([]Product, error) {
	var products []Product
	err := r.db.NewSelect().
		Model(&products).
		Where("category = ?", category).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list products by category")
	}
	return products, nil
}

func (r *ProductsRepository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	product := &Product{}
	err := r.db.NewSelect().
		Model(product).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("product not found", errors.CategoryNotFound).
				WithCode(errors.CodeNotFound)
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load product")
	}
	return product, nil
}

func (r *ProductsRepository) Create(ctx context.Context, product *Product) (*Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if _, err := r.db.NewInsert().Model(product).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create product")
	}
	return product, nil
}

func (r *ProductsRepository) Update(ctx context.Context, product *Product) (*Product, error) {
	res, err := r.db.NewUpdate().
		Model(product).
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update product")
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, errors.New("product not found", errors.CategoryNotFound).
			WithCode(errors.CodeNotFound)
	}
	return product, nil
}

func (r *ProductsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*Product)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete product")
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return errors.New("product not found", errors.CategoryNotFound).
			WithCode(errors.CodeNotFound)
	}
	return nil
}

func (r *ProductsRepository) Count(ctx context.Context) (int, error) {
	count, err := r.db.NewSelect().Model((*Product)(nil)).Count(ctx)
	if err != nil {
		return 0, errors.Wrap(err, errors.CategoryInternal, "failed to count products")
	}
	return count, nil
}
