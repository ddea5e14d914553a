package main

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	insertTransactionSQL = `
			INSERT INTO budget_transactions (user_id, date, amount, type, category_id, account_id, description, is_recurring, recurring_frequency)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id`
	lockAccountSQL       = `SELECT balance FROM budget_accounts WHERE id = $1 AND user_id = $2 FOR UPDATE`
	updateBalanceSQL     = `UPDATE budget_accounts SET balance = $1 WHERE id = $2`
	loadTransactionSQL   = `SELECT user_id, amount, type, account_id FROM budget_transactions WHERE id = $1`
	removeTransactionSQL = `DELETE FROM budget_transactions WHERE id = $1`
)

func intPtr(i int) *int { return &i }

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// expectBalanceAdjustment scripts the lock-read of an account's balance
// followed by the write of its new value.
func expectBalanceAdjustment(mock sqlmock.Sqlmock, accountID int, userID, before, after string) {
	mock.ExpectQuery(regexp.QuoteMeta(lockAccountSQL)).
		WithArgs(accountID, userID).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(before))
	mock.ExpectExec(regexp.QuoteMeta(updateBalanceSQL)).
		WithArgs(after, accountID).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func TestCreateTransactionExpenseDebitsAccount(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(insertTransactionSQL)).
		WithArgs("local", sqlmock.AnyArg(), "30.00", "expense", nil, 1, nil, false, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	expectBalanceAdjustment(mock, 1, "local", "100.00", "70.00")
	mock.ExpectCommit()

	tr := &BudgetTransaction{
		Amount:    dec("30"),
		Type:      "expense",
		AccountID: intPtr(1),
	}
	require.NoError(t, createTransaction(mockDB, "local", tr))
	assert.Equal(t, 7, tr.ID)
	assert.Equal(t, "local", tr.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTransactionIncomeCreditsAccount(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(insertTransactionSQL)).
		WithArgs("local", sqlmock.AnyArg(), "250.50", "income", nil, 3, nil, false, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))
	expectBalanceAdjustment(mock, 3, "local", "10.00", "260.50")
	mock.ExpectCommit()

	tr := &BudgetTransaction{
		Amount:    dec("250.50"),
		Type:      "income",
		AccountID: intPtr(3),
	}
	require.NoError(t, createTransaction(mockDB, "local", tr))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTransactionWithoutAccountLeavesBalancesAlone(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(insertTransactionSQL)).
		WithArgs("local", sqlmock.AnyArg(), "12.00", "expense", nil, nil, nil, false, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectCommit()

	tr := &BudgetTransaction{Amount: dec("12"), Type: "expense"}
	require.NoError(t, createTransaction(mockDB, "local", tr))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTransactionValidatesBeforeWriting(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	tests := []struct {
		name  string
		tr    BudgetTransaction
		field string
	}{
		{"bad type", BudgetTransaction{Amount: dec("5"), Type: "transfer"}, "type"},
		{"zero amount", BudgetTransaction{Amount: dec("0"), Type: "expense"}, "amount"},
		{"negative amount", BudgetTransaction{Amount: dec("-4"), Type: "income"}, "amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := createTransaction(mockDB, "local", &tt.tr)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
	// No Begin was ever expected: validation failures must not touch the DB.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTransactionReversesExpense(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(loadTransactionSQL)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "amount", "type", "account_id"}).
			AddRow("local", "30.00", "expense", 1))
	expectBalanceAdjustment(mock, 1, "local", "70.00", "100.00")
	mock.ExpectExec(regexp.QuoteMeta(removeTransactionSQL)).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, deleteTransaction(mockDB, 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTransactionReversesIncome(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(loadTransactionSQL)).
		WithArgs(8).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "amount", "type", "account_id"}).
			AddRow("local", "250.50", "income", 3))
	expectBalanceAdjustment(mock, 3, "local", "260.50", "10.00")
	mock.ExpectExec(regexp.QuoteMeta(removeTransactionSQL)).
		WithArgs(8).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, deleteTransaction(mockDB, 8))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTransactionMissingIDIsNoOp(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(loadTransactionSQL)).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "amount", "type", "account_id"}))
	mock.ExpectRollback()

	require.NoError(t, deleteTransaction(mockDB, 99))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferFundsConservesTotal(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	// Checking (id 1) holds 50, Savings (id 2) holds 50; move 20 back.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockAccountSQL)).
		WithArgs(1, "local").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("50.00"))
	mock.ExpectQuery(regexp.QuoteMeta(lockAccountSQL)).
		WithArgs(2, "local").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("50.00"))
	mock.ExpectExec(regexp.QuoteMeta(updateBalanceSQL)).
		WithArgs("30.00", 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(updateBalanceSQL)).
		WithArgs("70.00", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, transferFunds(mockDB, "local", 2, 1, dec("20")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferFundsLocksInAscendingIDOrder(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	// Transfer from 5 to 2: the lock on id 2 must still come first.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockAccountSQL)).
		WithArgs(2, "local").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("0.00"))
	mock.ExpectQuery(regexp.QuoteMeta(lockAccountSQL)).
		WithArgs(5, "local").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("100.00"))
	mock.ExpectExec(regexp.QuoteMeta(updateBalanceSQL)).
		WithArgs("60.00", 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(updateBalanceSQL)).
		WithArgs("40.00", 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, transferFunds(mockDB, "local", 5, 2, dec("40")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferFundsAllowsOverdraft(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockAccountSQL)).
		WithArgs(1, "local").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("25.00"))
	mock.ExpectQuery(regexp.QuoteMeta(lockAccountSQL)).
		WithArgs(2, "local").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("0.00"))
	mock.ExpectExec(regexp.QuoteMeta(updateBalanceSQL)).
		WithArgs("-75.00", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(updateBalanceSQL)).
		WithArgs("100.00", 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, transferFunds(mockDB, "local", 1, 2, dec("100")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferFundsRejectsSameAccount(t *testing.T) {
	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	err = transferFunds(mockDB, "local", 4, 4, dec("10"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "toAccountId", verr.Field)
}

func TestTransferFundsRejectsNonPositiveAmount(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	for _, amount := range []string{"0", "-5"} {
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(lockAccountSQL)).
			WithArgs(1, "local").
			WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("100.00"))
		mock.ExpectQuery(regexp.QuoteMeta(lockAccountSQL)).
			WithArgs(2, "local").
			WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("50.00"))
		mock.ExpectRollback()

		assert.ErrorIs(t, transferFunds(mockDB, "local", 1, 2, dec(amount)), errInvalidAmount)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Accounts resolve before the amount check, so a transfer that is wrong both
// ways reports the account lookup failure.
func TestTransferFundsMissingAccountBeatsBadAmount(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockAccountSQL)).
		WithArgs(1, "local").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}))
	mock.ExpectRollback()

	assert.ErrorIs(t, transferFunds(mockDB, "local", 1, 99, dec("0")), errAccountNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferFundsMissingAccount(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockAccountSQL)).
		WithArgs(1, "local").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}))
	mock.ExpectRollback()

	assert.ErrorIs(t, transferFunds(mockDB, "local", 1, 9, dec("10")), errAccountNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestLedgerScenario walks one account pair through a transfer, an expense
// and a delete, asserting every stored balance along the way: Checking opens
// at 100 and Savings at 50, a 30 transfer leaves them at 70/80, a 20 expense
// drops Checking to 50, and deleting that expense restores Checking to 70.
func TestLedgerScenario(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	// transfer 30 Checking (id 1) -> Savings (id 2): 100 -> 70, 50 -> 80
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

	// 20 expense against Checking: 70 -> 50
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(insertTransactionSQL)).
		WithArgs("local", sqlmock.AnyArg(), "20.00", "expense", nil, 1, nil, false, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(41))
	expectBalanceAdjustment(mock, 1, "local", "70.00", "50.00")
	mock.ExpectCommit()

	// delete the expense: Checking 50 -> 70
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(loadTransactionSQL)).
		WithArgs(41).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "amount", "type", "account_id"}).
			AddRow("local", "20.00", "expense", 1))
	expectBalanceAdjustment(mock, 1, "local", "50.00", "70.00")
	mock.ExpectExec(regexp.QuoteMeta(removeTransactionSQL)).
		WithArgs(41).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, transferFunds(mockDB, "local", 1, 2, dec("30")))
	tr := &BudgetTransaction{Amount: dec("20"), Type: "expense", AccountID: intPtr(1)}
	require.NoError(t, createTransaction(mockDB, "local", tr))
	require.NoError(t, deleteTransaction(mockDB, tr.ID))
	assert.NoError(t, mock.ExpectationsWereMet())
}
