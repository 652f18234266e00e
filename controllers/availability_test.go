package controllers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func availabilityRows(id, instructorID uint) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "instructor_id", "start_time", "end_time"}).
		AddRow(id, instructorID, "09:00", "11:00")
}

func TestCreateAvailabilityRejectsBadTime(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows(9, "INSTRUCTOR"))

	app := appWithUser(9, fiber.MethodPost, "/availability/post", CreateAvailability)
	resp, err := app.Test(jsonRequest(http.MethodPost, "/availability/post", `{"start_time":"9am","end_time":"11:00"}`))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Invalid start_time")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAvailabilityRejectsBadTime(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows(9, "INSTRUCTOR"))
	mock.ExpectQuery(`SELECT \* FROM "instructor_availability"`).
		WillReturnRows(availabilityRows(3, 9))

	app := appWithUser(9, fiber.MethodPut, "/availability/update/:pk", UpdateAvailability)
	resp, err := app.Test(jsonRequest(http.MethodPut, "/availability/update/3", `{"end_time":"midnight"}`))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Invalid end_time")
	assert.NoError(t, mock.ExpectationsWereMet())
}
