package main

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"workers/inner/common"
	"workers/inner/gender"
	"workers/inner/testutils"
	"workers/inner/validator"
	"workers/inner/worker"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
)

func setupApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	db, sqlMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	sqlxDB := sqlx.NewDb(db, "postgres")

	cfg := common.Config{
		AppName:    "workers",
		AppVersion: "1.0.0",
		HttpAddr:   ":0",
		JwtSecret:  testutils.TestJwtSecret,
	}
	logger := &common.Logger{Logger: zaptest.NewLogger(t)}
	requestValidator := validator.New()
	genderRepo := gender.NewRepository(sqlxDB)
	workerRepo := worker.NewRepository(sqlxDB)
	workerService := worker.NewService(workerRepo, genderRepo, worker.NewValidationService(requestValidator),
		worker.NewRecordBuilder(bcrypt.MinCost), logger)

	server := build(cfg, logger, sqlxDB, workerService, genderRepo, workerRepo, requestValidator)
	return server.App, sqlMock
}

func TestBuild_Routes(t *testing.T) {
	app, sqlMock := setupApp(t)

	t.Run("worker list is public", func(t *testing.T) {
		sqlMock.ExpectQuery(regexp.QuoteMeta("FROM worker w LEFT JOIN gender g ON g.id = w.gender_id LIMIT 10 OFFSET 0")).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/workers", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "v1", resp.Header.Get("X-API-Version"))
	})

	t.Run("me requires token", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("health", func(t *testing.T) {
		sqlMock.ExpectPing()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/internal/health", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("swagger document", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
