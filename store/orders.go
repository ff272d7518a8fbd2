package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// OrdersRepository persists orders with Bun.
type OrdersRepository struct {
	db *bun.DB
}

// NewOrdersRepository creates a new repository.
func NewOrdersRepository(db *bun.DB) *OrdersRepository {
	return &OrdersRepository{db: db}
}

// Create stamps the order date and PENDING status before inserting.
func (r *OrdersRepository) Create(ctx context.Context, order *Order) (*Order, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.Status = OrderPending
	order.OrderDate = time.Now()

	if _, err := r.db.NewInsert().Model(order).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create order")
	}
	return order, nil
}

func (r *OrdersRepository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	order := &Order{}
	err := r.db.NewSelect().
		Model(order).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("order not found", errors.CategoryNotFound).
				WithCode(errors.CodeNotFound)
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load order")
	}
	return order, nil
}

func (r *OrdersRepository) List(ctx context.Context) ([]Order, error) {
	var orders []Order
	err := r.db.NewSelect().
		Model(&orders).
		Order("order_date DESC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list orders")
	}
	return orders, nil
}

func (r *OrdersRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Order, error) {
	var orders []Order
	err := r.db.NewSelect().
		Model(&orders).
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list user orders")
	}
	return orders, nil
}

// ListRecent returns the latest orders for the admin activity feed.
func (r *OrdersRepository) ListRecent(ctx context.Context, limit int) ([]Order, error) {
	var orders []Order
	err := r.db.NewSelect().
		Model(&orders).
		Order("order_date DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list recent orders")
	}
	return orders, nil
}

func (r *OrdersRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus) (*Order, error) {
	res, err := r.db.NewUpdate().
		Model((*Order)(nil)).
		Set("status = ?", status).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update order status")
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, errors.New("order not found", errors.CategoryNotFound).
			WithCode(errors.CodeNotFound)
	}
	return r.GetByID(ctx, id)
}

func (r *OrdersRepository) CountByStatus(ctx context.Context, status OrderStatus) (int, error) {
	count, err := r.db.NewSelect().
		Model((*Order)(nil)).
		Where("status = ?", status).
		Count(ctx)
	if err != nil {
		return 0, errors.Wrap(err, errors.CategoryInternal, "failed to count orders")
	}
	return count, nil
}

// TotalSales sums completed revenue: every order that is not cancelled.
func (r *OrdersRepository) TotalSales(ctx context.Context) (float64, error) {
	var total sql.NullFloat64
	err := r.db.NewSelect().
		Model((*Order)(nil)).
		ColumnExpr("SUM(total_amount)").
		Where("status != ?", OrderCancelled).
		Scan(ctx, &total)
	if err != nil {
		return 0, errors.Wrap(err, errors.CategoryInternal, "failed to sum sales")
	}
	return total.Float64, nil
}

// DeleteNonCancelled clears the sales history: every order except cancelled
// ones is removed.
func (r *OrdersRepository) DeleteNonCancelled(ctx context.Context) (int64, error) {
	res, err := r.db.NewDelete().
		Model((*Order)(nil)).
		Where("status != ?", OrderCancelled).
		Exec(ctx)
	if err != nil {
		return 0, errors.Wrap(err, errors.CategoryInternal, "failed to reset sales")
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}

// DeletePending clears the open order queue.
func (r *OrdersRepository) DeletePending(ctx context.Context) (int64, error) {
	res, err := r.db.NewDelete().
		Model((*Order)(nil)).
		Where("status = ?", OrderPending).
		Exec(ctx)
	if err != nil {
		return 0, errors.Wrap(err, errors.CategoryInternal, "failed to reset orders")
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}
