package gender

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"workers/inner/common"
	"workers/inner/web"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) FindAll(ctx context.Context) ([]Entity, error) {
	args := m.Called()
	return args.Get(0).([]Entity), args.Error(1)
}

func setupTestApp() (*fiber.App, *MockRepo) {
	app := fiber.New()
	mockRepo := &MockRepo{}

	server := &web.Server{
		GroupApiV1: app.Group("/api/v1"),
	}
	logger := common.NewLogger(common.Config{
		AppName:    "test_app",
		AppVersion: "1.0.0",
		LogLevel:   "DEBUG",
	})

	controller := NewController(server, mockRepo, logger)
	controller.RegisterRoutes()
	return app, mockRepo
}

func TestController_FindAll(t *testing.T) {
	t.Run("reference data", func(t *testing.T) {
		app, mockRepo := setupTestApp()
		mockRepo.On("FindAll").Return([]Entity{{Id: 1, Name: Man}, {Id: 2, Name: Woman}}, nil)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/genders", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body []Response
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, []Response{{Id: 1, Name: Man}, {Id: 2, Name: Woman}}, body)
	})

	t.Run("database error", func(t *testing.T) {
		app, mockRepo := setupTestApp()
		mockRepo.On("FindAll").Return([]Entity(nil), errors.New("connection refused"))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/genders", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		var body common.ErrorBody
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Failed to load genders", body.Error)
	})
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"Man", "Woman"}, Names())
}
