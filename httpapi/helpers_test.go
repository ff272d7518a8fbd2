package httpapi_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/shopnest/backend/auth"
	"github.com/shopnest/backend/config"
	"github.com/shopnest/backend/httpapi"
	"github.com/shopnest/backend/store"
)

const testSigningKey = "test-signing-key"

func testAppConfig() *config.Config {
	return &config.Config{
		Env: "local",
		HTTPServer: config.HTTPServer{
			Address:      ":0",
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Auth: config.Auth{
			SigningKey:      testSigningKey,
			TokenExpiration: 24,
			Issuer:          "shopnest",
			Audience:        "shopnest",
			ContextKey:      auth.DefaultContextKey,
			AuthScheme:      auth.DefaultAuthScheme,
		},
	}
}

type testEnv struct {
	app  *fiber.App
	repo store.RepositoryManager
	cfg  *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, store.CreateTables(ctx, db))

	repo := store.NewRepositoryManager(db)
	cfg := testAppConfig()

	provider := store.NewIdentityAdapter(repo.Users())
	auther := auth.NewAuthenticator(provider, cfg.Auth)

	srv := httpapi.New(httpapi.Options{
		Config: cfg,
		Repo:   repo,
		Auther: auther,
	})

	return &testEnv{app: srv.App(), repo: repo, cfg: cfg}
}

func (e *testEnv) request(t *testing.T, method, path, token string, payload any) (*http.Response, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	// Keep the raw body reachable for list responses.
	resp.Body = io.NopCloser(bytes.NewReader(raw))

	return resp, decoded
}

func (e *testEnv) register(t *testing.T, username, email, password string) map[string]any {
	t.Helper()

	resp, body := e.request(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return body
}

func (e *testEnv) login(t *testing.T, email, password string) (string, map[string]any) {
	t.Helper()

	resp, body := e.request(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token, body
}

func decodeList(t *testing.T, resp *http.Response) []map[string]any {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(raw, &list))
	return list
}
