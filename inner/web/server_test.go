package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"workers/inner/common"
	"workers/inner/testutils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func SetupTestConfig() common.Config {
	return common.Config{
		DbDriverName:   "postgres",
		Dsn:            "localhost port=5432 user=wronguser password=wrongpass dbname=postgres sslmode=disable",
		AppName:        "test_app",
		AppVersion:     "1.0.0",
		LogLevel:       "DEBUG",
		LogDevelopMode: true,
		HttpAddr:       ":0",
		JwtSecret:      testutils.TestJwtSecret,
	}
}

func SetupTestServer(t *testing.T) *Server {
	cfg := SetupTestConfig()
	logger := &common.Logger{Logger: zaptest.NewLogger(t)}
	return NewServer(cfg, logger)
}

func TestRecoverMiddleware(t *testing.T) {
	server := SetupTestServer(t)
	server.App.Get("/panic", func(c *fiber.Ctx) error {
		panic("test panic")
	})

	req := httptest.NewRequest("GET", "/panic", nil)
	resp, err := server.App.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestRequestIDMiddleware(t *testing.T) {
	server := SetupTestServer(t)
	server.App.Get("/id", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/id", nil)
	resp, err := server.App.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestInternalGroupMiddleware(t *testing.T) {
	server := SetupTestServer(t)
	server.GroupInternal.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString("internal ok")
	})

	req := httptest.NewRequest("GET", "/internal/test", nil)
	resp, err := server.App.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "true", resp.Header.Get("X-Internal-API"))
}

func TestApiV1GroupMiddleware(t *testing.T) {
	server := SetupTestServer(t)
	server.GroupApiV1.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString("api v1 ok")
	})

	// публичная группа не требует токена
	req := httptest.NewRequest("GET", "/api/v1/test", nil)
	resp, err := server.App.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "v1", resp.Header.Get("X-API-Version"))
}

func TestProtectedGroup(t *testing.T) {
	server := SetupTestServer(t)
	server.GroupApiV1Protected.Get("/", func(c *fiber.Ctx) error {
		claims, ok := GetClaims(c)
		require.True(t, ok)
		return c.SendString(claims.Email)
	})

	t.Run("no token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/me", nil)
		resp, err := server.App.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/me", nil)
		req.Header.Set("Authorization", "Bearer "+testutils.GenerateExpiredToken(testutils.TestJwtSecret))
		resp, err := server.App.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/me", nil)
		token := testutils.GenerateToken("another-secret-0123456789", "anna@example.com", []string{"ROLE_USER"})
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := server.App.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/me", nil)
		token := testutils.GenerateToken(testutils.TestJwtSecret, "anna@example.com", []string{"ROLE_USER"})
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := server.App.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestRequireAnyRole(t *testing.T) {
	server := SetupTestServer(t)
	logger := &common.Logger{Logger: zaptest.NewLogger(t)}
	server.GroupApiV1Protected.Get("/admin", RequireAnyRole([]string{"ROLE_ADMIN"}, logger), func(c *fiber.Ctx) error {
		return c.SendString("admin ok")
	})

	t.Run("missing role", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/me/admin", nil)
		token := testutils.GenerateToken(testutils.TestJwtSecret, "anna@example.com", []string{"ROLE_USER"})
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := server.App.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("has role", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/me/admin", nil)
		token := testutils.GenerateToken(testutils.TestJwtSecret, "root@example.com", []string{"ROLE_ADMIN", "ROLE_USER"})
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := server.App.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestCustomMiddleware_LogsSafeBodyFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := &common.Logger{Logger: zap.New(core)}

	app := fiber.New()
	app.Use(CustomMiddleware(logger))
	app.Post("/log", func(c *fiber.Ctx) error {
		return c.SendString("logged")
	})

	body := `{"name":"Anna","email":"anna@example.com","password":"Secret123","repassword":"Secret123"}`
	req := httptest.NewRequest("POST", "/log", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	started := logs.FilterMessage("Request started").All()
	require.Len(t, started, 1)
	fields := started[0].ContextMap()
	assert.Equal(t, "anna@example.com", fields["email"])
	assert.NotContains(t, fields, "password")
	assert.NotContains(t, fields, "repassword")

	completed := logs.FilterMessage("Request completed").All()
	require.Len(t, completed, 1)
	assert.Equal(t, int64(http.StatusOK), completed[0].ContextMap()["status"])
}
