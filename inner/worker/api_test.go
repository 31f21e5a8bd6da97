package worker

import (
	"net/http"
	"regexp"
	"testing"

	"workers/inner/gender"
	"workers/inner/validator"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// приложение со всей цепочкой зависимостей поверх sqlmock
func setupWiredApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	sqlxDB := sqlx.NewDb(db, "postgres")

	svc := NewService(
		NewRepository(sqlxDB),
		gender.NewRepository(sqlxDB),
		NewValidationService(validator.New()),
		NewRecordBuilder(bcrypt.MinCost),
		createTestLogger(),
	)
	return setupTestApp(svc), sqlMock
}

var (
	countQuery  = regexp.QuoteMeta("SELECT COUNT(id) FROM worker WHERE (pesel = $1 OR email = $2)")
	genderQuery = regexp.QuoteMeta("SELECT id, name FROM gender WHERE name = $1")
	byIdQuery   = regexp.QuoteMeta("FROM worker w LEFT JOIN gender g ON g.id = w.gender_id WHERE w.id = $1")
)

func TestApi_CreateWorker(t *testing.T) {
	t.Run("stored with hashed password", func(t *testing.T) {
		app, sqlMock := setupWiredApp(t)
		payload := validPayload()

		sqlMock.ExpectBegin()
		sqlMock.ExpectQuery(countQuery).
			WithArgs(payload.Pesel, payload.Email).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		sqlMock.ExpectQuery(genderQuery).
			WithArgs(gender.Woman).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(2, gender.Woman))
		sqlMock.ExpectQuery(regexp.QuoteMeta("INSERT INTO worker")).
			WithArgs(payload.Name, payload.Surname, payload.Email, sqlmock.AnyArg(), sqlmock.AnyArg(),
				payload.Pesel, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		sqlMock.ExpectCommit()

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/v1/workers/new", payload))
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate pesel or email is not inserted", func(t *testing.T) {
		app, sqlMock := setupWiredApp(t)
		payload := validPayload()

		sqlMock.ExpectBegin()
		sqlMock.ExpectQuery(countQuery).
			WithArgs(payload.Pesel, payload.Email).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		sqlMock.ExpectRollback()

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/v1/workers/new", payload))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decodeError(t, resp), "already exists")
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("weak password is not inserted", func(t *testing.T) {
		app, sqlMock := setupWiredApp(t)
		payload := validPayload()
		payload.Password, payload.Repassword = "password", "password"

		sqlMock.ExpectBegin()
		sqlMock.ExpectQuery(countQuery).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		sqlMock.ExpectRollback()

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/v1/workers/new", payload))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, createErrPrefix+validator.MsgInvalidPasswordFormat, decodeError(t, resp))
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}

func TestApi_UpdateWorker(t *testing.T) {
	t.Run("pesel contradicting birthdate is not written", func(t *testing.T) {
		app, sqlMock := setupWiredApp(t)
		payload := validPayload()
		payload.Birthdate = "1991-05-14"

		sqlMock.ExpectQuery(byIdQuery).
			WithArgs(int64(7)).
			WillReturnRows(workerRow(sqlmock.NewRows(workerColumns), testEntity()))

		resp, err := app.Test(jsonRequest(t, http.MethodPut, "/api/v1/workers/7", payload))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t,
			"Invalid data: The date of birth from the PESEL number does not match the provided date.",
			decodeError(t, resp))
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("updated", func(t *testing.T) {
		app, sqlMock := setupWiredApp(t)
		payload := validPayload()
		payload.Surname = "Kowalska"

		sqlMock.ExpectQuery(byIdQuery).
			WithArgs(int64(7)).
			WillReturnRows(workerRow(sqlmock.NewRows(workerColumns), testEntity()))
		sqlMock.ExpectQuery(genderQuery).
			WithArgs(gender.Woman).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(2, gender.Woman))
		sqlMock.ExpectExec(regexp.QuoteMeta("UPDATE worker SET")).
			WillReturnResult(sqlmock.NewResult(0, 1))

		resp, err := app.Test(jsonRequest(t, http.MethodPut, "/api/v1/workers/7", payload))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}

func TestApi_DeleteWorker(t *testing.T) {
	app, sqlMock := setupWiredApp(t)

	sqlMock.ExpectQuery(byIdQuery).
		WithArgs(int64(7)).
		WillReturnRows(workerRow(sqlmock.NewRows(workerColumns), testEntity()))
	sqlMock.ExpectExec(regexp.QuoteMeta("DELETE FROM worker WHERE id = $1")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp, err := app.Test(jsonRequest(t, http.MethodDelete, "/api/v1/workers/7", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
