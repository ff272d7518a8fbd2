package store_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopnest/backend/store"
)

func seedOrder(t *testing.T, orders *store.OrdersRepository, userID uuid.UUID, total float64) *store.Order {
	t.Helper()

	order, err := orders.Create(context.Background(), &store.Order{
		UserID:      userID,
		Username:    "shopper",
		TotalAmount: total,
		Items: []store.OrderItem{
			{ProductID: uuid.NewString(), ProductName: "Urban Sneakers", Quantity: 1, Price: total},
		},
	})
	require.NoError(t, err)
	return order
}

func TestOrdersRepository_Create(t *testing.T) {
	repo := newTestRepos(t)
	userID := uuid.New()

	order := seedOrder(t, repo.Orders(), userID, 110)

	assert.NotEqual(t, uuid.Nil, order.ID)
	assert.Equal(t, store.OrderPending, order.Status)
	assert.False(t, order.OrderDate.IsZero())

	got, err := repo.Orders().GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, store.OrderPending, got.Status)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Urban Sneakers", got.Items[0].ProductName)
}

func TestOrdersRepository_ListByUser(t *testing.T) {
	repo := newTestRepos(t)
	ctx := context.Background()

	mine := uuid.New()
	theirs := uuid.New()

	seedOrder(t, repo.Orders(), mine, 110)
	seedOrder(t, repo.Orders(), mine, 45)
	seedOrder(t, repo.Orders(), theirs, 200)

	orders, err := repo.Orders().ListByUser(ctx, mine)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	all, err := repo.Orders().List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestOrdersRepository_UpdateStatus(t *testing.T) {
	repo := newTestRepos(t)
	ctx := context.Background()

	order := seedOrder(t, repo.Orders(), uuid.New(), 110)

	updated, err := repo.Orders().UpdateStatus(ctx, order.ID, store.OrderShipped)
	require.NoError(t, err)
	assert.Equal(t, store.OrderShipped, updated.Status)

	t.Run("unknown order errors", func(t *testing.T) {
		_, err := repo.Orders().UpdateStatus(ctx, uuid.New(), store.OrderShipped)
		assert.Error(t, err)
	})
}

func TestOrdersRepository_Stats(t *testing.T) {
	repo := newTestRepos(t)
	ctx := context.Background()

	first := seedOrder(t, repo.Orders(), uuid.New(), 100)
	seedOrder(t, repo.Orders(), uuid.New(), 50)
	cancelled := seedOrder(t, repo.Orders(), uuid.New(), 999)

	_, err := repo.Orders().UpdateStatus(ctx, first.ID, store.OrderDelivered)
	require.NoError(t, err)
	_, err = repo.Orders().UpdateStatus(ctx, cancelled.ID, store.OrderCancelled)
	require.NoError(t, err)

	t.Run("pending count excludes moved orders", func(t *testing.T) {
		pending, err := repo.Orders().CountByStatus(ctx, store.OrderPending)
		require.NoError(t, err)
		assert.Equal(t, 1, pending)
	})

	t.Run("total sales excludes cancelled orders", func(t *testing.T) {
		total, err := repo.Orders().TotalSales(ctx)
		require.NoError(t, err)
		assert.InDelta(t, 150, total, 0.001)
	})

	t.Run("recent activity honors the limit", func(t *testing.T) {
		recent, err := repo.Orders().ListRecent(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, recent, 2)
	})
}

func TestOrdersRepository_Resets(t *testing.T) {
	repo := newTestRepos(t)
	ctx := context.Background()

	delivered := seedOrder(t, repo.Orders(), uuid.New(), 100)
	seedOrder(t, repo.Orders(), uuid.New(), 50)
	cancelled := seedOrder(t, repo.Orders(), uuid.New(), 999)

	_, err := repo.Orders().UpdateStatus(ctx, delivered.ID, store.OrderDelivered)
	require.NoError(t, err)
	_, err = repo.Orders().UpdateStatus(ctx, cancelled.ID, store.OrderCancelled)
	require.NoError(t, err)

	t.Run("delete pending clears the new order queue", func(t *testing.T) {
		deleted, err := repo.Orders().DeletePending(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, deleted)

		pending, err := repo.Orders().CountByStatus(ctx, store.OrderPending)
		require.NoError(t, err)
		assert.Zero(t, pending)
	})

	t.Run("delete non cancelled keeps cancelled history", func(t *testing.T) {
		deleted, err := repo.Orders().DeleteNonCancelled(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, deleted)

		total, err := repo.Orders().TotalSales(ctx)
		require.NoError(t, err)
		assert.Zero(t, total)

		remaining, err := repo.Orders().List(ctx)
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		assert.Equal(t, store.OrderCancelled, remaining[0].Status)
	})
}

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, store.OrderPending.IsValid())
	assert.True(t, store.OrderCancelled.IsValid())
	assert.False(t, store.OrderStatus("RETURNED").IsValid())
}
