package main

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTransferRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	prev := db
	db = mockDB
	t.Cleanup(func() { db = prev })

	r := gin.New()
	r.POST("/api/budget-accounts/transfer", transferBetweenAccounts)
	return r, mock
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestTransferEndpointSuccess(t *testing.T) {
	r, mock := newTransferRouter(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockAccountSQL)).
		WithArgs(1, "local").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("100.00"))
	mock.ExpectQuery(regexp.QuoteMeta(lockAccountSQL)).
		WithArgs(2, "local").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("50.00"))
	mock.ExpectExec(regexp.QuoteMeta(updateBalanceSQL)).
		WithArgs("70.00", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(updateBalanceSQL)).
		WithArgs("80.00", 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := postJSON(r, "/api/budget-accounts/transfer", `{"fromAccountId":1,"toAccountId":2,"amount":"30"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferEndpointInvalidAmountString(t *testing.T) {
	r, mock := newTransferRouter(t)

	w := postJSON(r, "/api/budget-accounts/transfer", `{"fromAccountId":1,"toAccountId":2,"amount":"abc"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Invalid amount"}`, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferEndpointNonPositiveAmount(t *testing.T) {
	r, mock := newTransferRouter(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockAccountSQL)).
		WithArgs(1, "local").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("100.00"))
	mock.ExpectQuery(regexp.QuoteMeta(lockAccountSQL)).
		WithArgs(2, "local").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("50.00"))
	mock.ExpectRollback()

	w := postJSON(r, "/api/budget-accounts/transfer", `{"fromAccountId":1,"toAccountId":2,"amount":"-10"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Invalid amount"}`, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferEndpointSameAccount(t *testing.T) {
	r, mock := newTransferRouter(t)

	w := postJSON(r, "/api/budget-accounts/transfer", `{"fromAccountId":3,"toAccountId":3,"amount":"10"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cannot transfer to the same account")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferEndpointMissingAccount(t *testing.T) {
	r, mock := newTransferRouter(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockAccountSQL)).
		WithArgs(1, "local").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}))
	mock.ExpectRollback()

	w := postJSON(r, "/api/budget-accounts/transfer", `{"fromAccountId":1,"toAccountId":99,"amount":"10"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Account not found"}`, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferEndpointScopedToHeaderUser(t *testing.T) {
	r, mock := newTransferRouter(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockAccountSQL)).
		WithArgs(1, "alice").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("40.00"))
	mock.ExpectQuery(regexp.QuoteMeta(lockAccountSQL)).
		WithArgs(2, "alice").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("0.00"))
	mock.ExpectExec(regexp.QuoteMeta(updateBalanceSQL)).
		WithArgs("25.00", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(updateBalanceSQL)).
		WithArgs("15.00", 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/budget-accounts/transfer",
		strings.NewReader(`{"fromAccountId":1,"toAccountId":2,"amount":"15"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "alice")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
