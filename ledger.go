package main

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// The functions in this file are the only code paths allowed to write
// budget_accounts.balance, outside of the explicit balance override on the
// account update endpoint. Each one wraps its row writes and the matching
// balance adjustment in a single database transaction; isolation and row
// locking come from Postgres.

// ValidationError reports a malformed or missing input field by name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	errAccountNotFound = errors.New("Account not found")
	errInvalidAmount   = errors.New("Invalid amount")
)

func validateTransaction(t *BudgetTransaction) error {
	if t.Type != "income" && t.Type != "expense" {
		return &ValidationError{Field: "type", Message: "type must be 'income' or 'expense'"}
	}
	if t.Amount.Sign() <= 0 {
		return &ValidationError{Field: "amount", Message: "amount must be a positive number"}
	}
	return nil
}

// createTransaction persists a new transaction and, when it references an
// account, adjusts that account's balance in the same database transaction:
// +amount for income, -amount for expense. Validation runs to completion
// before any write. On success t.ID and t.UserID are filled in.
func createTransaction(db *sql.DB, userID string, t *BudgetTransaction) error {
	if err := validateTransaction(t); err != nil {
		return err
	}
	if t.Date.IsZero() {
		t.Date = time.Now()
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	err = tx.QueryRow(`
		INSERT INTO budget_transactions (user_id, date, amount, type, category_id, account_id, description, is_recurring, recurring_frequency)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		userID, t.Date, t.Amount.StringFixed(2), t.Type, t.CategoryID, t.AccountID,
		t.Description, t.IsRecurring, t.RecurringFrequency,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}
	t.UserID = userID

	if t.AccountID != nil {
		delta := t.Amount
		if t.Type == "expense" {
			delta = delta.Neg()
		}
		if err := adjustBalance(tx, *t.AccountID, userID, delta); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// deleteTransaction reverses the balance adjustment the transaction applied
// on create, then removes the row, as one database transaction. A missing id
// is a no-op: deleting twice must not double-reverse the balance.
func deleteTransaction(db *sql.DB, id int) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var (
		userID    string
		amount    decimal.Decimal
		txType    string
		accountID *int
	)
	err = tx.QueryRow(`SELECT user_id, amount, type, account_id FROM budget_transactions WHERE id = $1`, id).
		Scan(&userID, &amount, &txType, &accountID)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading transaction %d: %w", id, err)
	}

	if accountID != nil {
		delta := amount
		if txType == "income" {
			delta = delta.Neg()
		}
		if err := adjustBalance(tx, *accountID, userID, delta); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`DELETE FROM budget_transactions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting transaction %d: %w", id, err)
	}

	return tx.Commit()
}

// transferFunds moves amount from one account to another as a single atomic
// unit. Both rows are locked in ascending id order so concurrent
// opposite-direction transfers cannot deadlock. Accounts are resolved before
// the amount is validated, so a missing account reports the lookup failure
// even when the amount is also bad. The user's total balance is unchanged.
// There is no overdraft check: a transfer may drive the source balance
// negative.
func transferFunds(db *sql.DB, userID string, fromID, toID int, amount decimal.Decimal) error {
	if fromID == toID {
		return &ValidationError{Field: "toAccountId", Message: "cannot transfer to the same account"}
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	first, second := fromID, toID
	if second < first {
		first, second = second, first
	}
	balances := make(map[int]decimal.Decimal, 2)
	for _, id := range [2]int{first, second} {
		var b decimal.Decimal
		err := tx.QueryRow(`SELECT balance FROM budget_accounts WHERE id = $1 AND user_id = $2 FOR UPDATE`, id, userID).Scan(&b)
		if err == sql.ErrNoRows {
			return errAccountNotFound
		}
		if err != nil {
			return fmt.Errorf("loading account %d: %w", id, err)
		}
		balances[id] = b
	}

	if amount.Sign() <= 0 {
		return errInvalidAmount
	}

	if _, err := tx.Exec(`UPDATE budget_accounts SET balance = $1 WHERE id = $2`,
		balances[fromID].Sub(amount).StringFixed(2), fromID); err != nil {
		return fmt.Errorf("updating account %d balance: %w", fromID, err)
	}
	if _, err := tx.Exec(`UPDATE budget_accounts SET balance = $1 WHERE id = $2`,
		balances[toID].Add(amount).StringFixed(2), toID); err != nil {
		return fmt.Errorf("updating account %d balance: %w", toID, err)
	}

	return tx.Commit()
}

// adjustBalance applies a signed delta to an account's stored balance inside
// the caller's transaction. A missing account is skipped rather than failed:
// the transaction row stands alone with a dangling reference, which the read
// paths already tolerate.
func adjustBalance(tx *sql.Tx, accountID int, userID string, delta decimal.Decimal) error {
	var balance decimal.Decimal
	err := tx.QueryRow(`SELECT balance FROM budget_accounts WHERE id = $1 AND user_id = $2 FOR UPDATE`, accountID, userID).Scan(&balance)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading account %d: %w", accountID, err)
	}

	if _, err := tx.Exec(`UPDATE budget_accounts SET balance = $1 WHERE id = $2`,
		balance.Add(delta).StringFixed(2), accountID); err != nil {
		return fmt.Errorf("updating account %d balance: %w", accountID, err)
	}
	return nil
}
