package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopnest/backend/auth"
)

func newGuardedApp(service *auth.TokenServiceImpl) *fiber.App {
	app := fiber.New()
	app.Use(auth.TokenGuard(auth.GuardConfig{Validator: service}))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		subject, ok := auth.SubjectFromFiber(c, auth.DefaultContextKey)
		if !ok {
			return c.JSON(fiber.Map{"authenticated": false})
		}
		return c.JSON(fiber.Map{"authenticated": true, "subject": subject.ID})
	})
	return app
}

func TestTokenGuard(t *testing.T) {
	service := newTestTokenService()
	app := newGuardedApp(service)

	t.Run("attaches subject for a valid token", func(t *testing.T) {
		token, err := service.Generate("shopper@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), "shopper@example.com")
	})

	t.Run("missing header continues as anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), `"authenticated":false`)
	})

	t.Run("wrong scheme continues as anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), `"authenticated":false`)
	})

	t.Run("tampered token continues as anonymous", func(t *testing.T) {
		token, err := service.Generate("shopper@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token+"junk")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), `"authenticated":false`)
	})

	t.Run("expired token continues as anonymous", func(t *testing.T) {
		past := auth.NewTokenService(testSigningKey, 1, testIssuer, testAudience, nil).
			WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })

		token, err := past.Generate("shopper@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), `"authenticated":false`)
	})

	t.Run("scheme comparison is case insensitive", func(t *testing.T) {
		token, err := service.Generate("shopper@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Contains(t, readBody(t, resp), `"authenticated":true`)
	})
}

func TestSubjectContext(t *testing.T) {
	t.Run("round trips through a context", func(t *testing.T) {
		subject := &auth.Subject{ID: "shopper@example.com"}

		ctx := auth.WithSubject(context.Background(), subject)

		got, ok := auth.SubjectFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, subject, got)
		assert.True(t, got.Authenticated())
	})

	t.Run("absent subject reports not ok", func(t *testing.T) {
		_, ok := auth.SubjectFromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("nil and empty subjects are unauthenticated", func(t *testing.T) {
		var subject *auth.Subject
		assert.False(t, subject.Authenticated())
		assert.False(t, (&auth.Subject{}).Authenticated())
	})
}
