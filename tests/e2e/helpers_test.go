//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/sahildmk/intention-app/internal/adapter/gormstore"
	"github.com/sahildmk/intention-app/internal/adapter/postgres"
	"github.com/sahildmk/intention-app/internal/adapter/postgres/collectionitem"
	"github.com/sahildmk/intention-app/internal/adapter/postgres/testhelper"
	tokenrepo "github.com/sahildmk/intention-app/internal/adapter/postgres/token"
	userrepo "github.com/sahildmk/intention-app/internal/adapter/postgres/user"
	"github.com/sahildmk/intention-app/internal/app"
	authpkg "github.com/sahildmk/intention-app/internal/auth"
	"github.com/sahildmk/intention-app/internal/config"
	authsvc "github.com/sahildmk/intention-app/internal/service/auth"
	"github.com/sahildmk/intention-app/internal/service/collection"
	"github.com/sahildmk/intention-app/internal/transport/rest"
	"github.com/sahildmk/intention-app/internal/transport/rpc"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	Log    *slog.Logger
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// ---------------------------------------------------------------------------
// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper).
// ---------------------------------------------------------------------------

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	return setupTestServerWithDriver(t, config.DriverPgx)
}

func setupTestServerWithDriver(t *testing.T, driver string) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	jwtSecret := "test-secret-at-least-32-chars-long!!"
	authCfg := config.AuthConfig{
		JWTSecret:       jwtSecret,
		JWTIssuer:       "test-issuer",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 720 * time.Hour,
		BcryptCost:      4,
	}
	jwtMgr := authpkg.NewJWTManager(authCfg.JWTSecret, authCfg.JWTIssuer, authCfg.AccessTokenTTL)
	authService := authsvc.NewService(logger,
		userrepo.New(pool),
		tokenrepo.New(pool),
		postgres.NewTxManager(pool),
		jwtMgr,
		authCfg,
	)

	var collectionService *collection.Service
	switch driver {
	case config.DriverGorm:
		store, err := gormstore.Open(pool)
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })
		collectionService = collection.NewService(logger, store, nil)
	default:
		collectionService = collection.NewService(logger, collectionitem.New(pool), nil)
	}

	registry := rpc.NewRegistry(logger)
	rpc.RegisterCollection(registry, collectionService)

	router := app.NewRouter(app.RouterDeps{
		Log: logger,
		CORS: config.CORSConfig{
			AllowedOrigins:   "*",
			AllowedMethods:   "GET,POST,OPTIONS",
			AllowedHeaders:   "Authorization,Content-Type",
			AllowCredentials: false,
			MaxAge:           86400,
		},
		RPC: config.RPCConfig{
			WebSocketEnabled: true,
			MaxBodyBytes:     1 << 16,
			ReadLimit:        1 << 16,
			PingInterval:     30 * time.Second,
		},
		Tokens:     authService,
		Auth:       rest.NewAuthHandler(authService, logger),
		Health:     rest.NewHealthHandler("test-version", rest.Check{Name: "database", Ping: pool.Ping}),
		Procedures: registry,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		Log:    logger,
	}
}

// ---------------------------------------------------------------------------
// Request helpers
// ---------------------------------------------------------------------------

func restRequest(t *testing.T, ts *testServer, method, path, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	return resp
}

// rpcCall posts input to /rpc/{procedure} and decodes the envelope.
func rpcCall(t *testing.T, ts *testServer, procedure, token string, input any) (int, map[string]any) {
	t.Helper()

	resp := restRequest(t, ts, http.MethodPost, "/rpc/"+procedure, token, input)
	defer resp.Body.Close()

	var env map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func requireOK(t *testing.T, env map[string]any) any {
	t.Helper()
	require.Equal(t, true, env["ok"], "envelope: %v", env)
	return env["value"]
}

func errorCode(t *testing.T, env map[string]any) string {
	t.Helper()
	require.Equal(t, false, env["ok"], "envelope: %v", env)
	e, ok := env["error"].(map[string]any)
	require.True(t, ok, "expected error object, got %v", env)
	code, _ := e["code"].(string)
	return code
}

var userSeq atomic.Int64

// registerUser creates a fresh account and returns its tokens.
func registerUser(t *testing.T, ts *testServer) (access, refresh, email string) {
	t.Helper()

	email = fmt.Sprintf("e2e-%d-%s@example.com", userSeq.Add(1), uuid.NewString()[:8])
	resp := restRequest(t, ts, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    email,
		"name":     "E2E User",
		"password": testPassword,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.AccessToken, body.RefreshToken, email
}

const testPassword = "securepassword123"
