package httpapi_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminEnv(t *testing.T) (*testEnv, string, string) {
	t.Helper()

	env := newTestEnv(t)
	created := env.register(t, "boss", "boss@shopnest.com", "admin-password")
	token, _ := env.login(t, "boss@shopnest.com", "admin-password")
	return env, token, created["id"].(string)
}

func TestAdminProducts(t *testing.T) {
	env, token, _ := adminEnv(t)

	var productID string

	t.Run("create", func(t *testing.T) {
		resp, body := env.request(t, http.MethodPost, "/api/admin/products", token, map[string]any{
			"name":     "Linen Shirt",
			"price":    65.0,
			"category": "Men",
			"sizes":    []string{"M", "L"},
			"stock":    12,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		productID = body["id"].(string)
		require.NotEmpty(t, productID)
	})

	t.Run("created product shows up in the public catalog", func(t *testing.T) {
		resp, _ := env.request(t, http.MethodGet, "/api/products/"+productID, "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("management listing shows the product", func(t *testing.T) {
		resp, _ := env.request(t, http.MethodGet, "/api/admin/products", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, decodeList(t, resp), 1)
	})

	t.Run("update", func(t *testing.T) {
		resp, body := env.request(t, http.MethodPut, "/api/admin/products/"+productID, token, map[string]any{
			"name":     "Linen Shirt",
			"price":    55.0,
			"category": "Men",
			"stock":    8,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.EqualValues(t, 55.0, body["price"])
		assert.EqualValues(t, 8, body["stock"])
	})

	t.Run("invalid payload is rejected", func(t *testing.T) {
		resp, _ := env.request(t, http.MethodPost, "/api/admin/products", token, map[string]any{
			"name":  "",
			"price": -1,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("delete", func(t *testing.T) {
		resp, _ := env.request(t, http.MethodDelete, "/api/admin/products/"+productID, token, nil)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp, _ = env.request(t, http.MethodGet, "/api/products/"+productID, "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestAdminOrdersAndStats(t *testing.T) {
	env, token, userID := adminEnv(t)

	placeOrder := func(total float64) string {
		resp, body := env.request(t, http.MethodPost, "/api/orders", "", map[string]any{
			"userId": userID,
			"items": []map[string]any{
				{"productId": "p-1", "productName": "Urban Sneakers", "quantity": 1, "price": total},
			},
			"totalAmount": total,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		return body["id"].(string)
	}

	firstOrder := placeOrder(100)
	placeOrder(50)
	cancelledOrder := placeOrder(999)

	t.Run("update order status", func(t *testing.T) {
		resp, body := env.request(t, http.MethodPut, "/api/admin/orders/"+firstOrder+"/status", token, map[string]any{
			"status": "DELIVERED",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "DELIVERED", body["status"])

		resp, _ = env.request(t, http.MethodPut, "/api/admin/orders/"+cancelledOrder+"/status", token, map[string]any{
			"status": "CANCELLED",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		resp, _ := env.request(t, http.MethodPut, "/api/admin/orders/"+firstOrder+"/status", token, map[string]any{
			"status": "RETURNED",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("lists every order", func(t *testing.T) {
		resp, _ := env.request(t, http.MethodGet, "/api/admin/orders", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, decodeList(t, resp), 3)

		resp, _ = env.request(t, http.MethodGet, "/api/orders", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, decodeList(t, resp), 3)
	})

	t.Run("stats aggregate the dashboard counters", func(t *testing.T) {
		resp, body := env.request(t, http.MethodGet, "/api/admin/stats", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		assert.EqualValues(t, 1, body["totalUsers"])
		assert.EqualValues(t, 1, body["newOrders"])
		assert.InDelta(t, 150, body["totalSales"].(float64), 0.001)

		recent, ok := body["recentActivity"].([]any)
		require.True(t, ok)
		assert.Len(t, recent, 3)
	})

	t.Run("reset new orders clears the pending queue", func(t *testing.T) {
		resp, _ := env.request(t, http.MethodDelete, "/api/admin/stats/orders", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		_, body := env.request(t, http.MethodGet, "/api/admin/stats", token, nil)
		assert.EqualValues(t, 0, body["newOrders"])
	})

	t.Run("reset sales keeps cancelled history", func(t *testing.T) {
		resp, _ := env.request(t, http.MethodDelete, "/api/admin/stats/sales", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		_, body := env.request(t, http.MethodGet, "/api/admin/stats", token, nil)
		assert.EqualValues(t, 0, body["totalSales"])

		resp, _ = env.request(t, http.MethodGet, "/api/admin/orders", token, nil)
		orders := decodeList(t, resp)
		require.Len(t, orders, 1)
		assert.Equal(t, "CANCELLED", orders[0]["status"])
	})

	t.Run("lists accounts without password hashes", func(t *testing.T) {
		resp, _ := env.request(t, http.MethodGet, "/api/admin/users", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		users := decodeList(t, resp)
		require.Len(t, users, 1)
		assert.NotContains(t, users[0], "passwordHash")
	})

	t.Run("diagnostics listing mirrors the accounts", func(t *testing.T) {
		resp, _ := env.request(t, http.MethodGet, "/api/test/users", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, decodeList(t, resp), 1)
	})
}
