package main

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// === Budget transactions ===

// getBudgetTransactions lists the user's transactions, newest first, with
// optional Redis caching
func getBudgetTransactions(c *gin.Context) {
	userID := currentUserID(c)
	ctx := c.Request.Context()

	var cached []BudgetTransaction
	if cacheGet(ctx, transactionsCacheKey(userID), &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	rows, err := db.Query(`
		SELECT id, user_id, date, amount, type, category_id, account_id, description, is_recurring, recurring_frequency
		FROM budget_transactions
		WHERE user_id = $1
		ORDER BY date DESC`, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	// ensure empty array ([]) instead of null when no rows
	transactions := make([]BudgetTransaction, 0)
	for rows.Next() {
		var t BudgetTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Date, &t.Amount, &t.Type, &t.CategoryID,
			&t.AccountID, &t.Description, &t.IsRecurring, &t.RecurringFrequency); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		transactions = append(transactions, t)
	}

	cacheSet(ctx, transactionsCacheKey(userID), transactions, 60*time.Second)
	c.JSON(http.StatusOK, transactions)
}

// addBudgetTransaction creates a transaction through the ledger, adjusting
// the referenced account's balance in the same database transaction
func addBudgetTransaction(c *gin.Context) {
	var t BudgetTransaction
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	userID := currentUserID(c)
	if err := createTransaction(db, userID, &t); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"message": ve.Message, "field": ve.Field})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cacheDel(c.Request.Context(), transactionsCacheKey(userID), accountsCacheKey(userID))
	c.JSON(http.StatusCreated, t)
}

// deleteBudgetTransaction reverses the transaction's balance effect and
// removes the row. Unknown ids are a no-op so a repeated delete cannot
// double-reverse a balance.
func deleteBudgetTransaction(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := deleteTransaction(db, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	userID := currentUserID(c)
	cacheDel(c.Request.Context(), transactionsCacheKey(userID), accountsCacheKey(userID))
	c.Status(http.StatusNoContent)
}

// BudgetSummary contains rolling 30-day totals for the dashboard
type BudgetSummary struct {
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	TransactionCount int             `json:"transactionCount"`
}

// CategoryTotal is one category's expense total over the same window
type CategoryTotal struct {
	Name  string          `json:"name"`
	Color *string         `json:"color"`
	Total decimal.Decimal `json:"total"`
}

// getBudgetSummary aggregates the last 30 days of transactions
func getBudgetSummary(c *gin.Context) {
	userID := currentUserID(c)

	var summary BudgetSummary
	err := db.QueryRow(`
		SELECT
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0) AS total_income,
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS total_expenses,
			COUNT(*) AS transaction_count
		FROM budget_transactions
		WHERE user_id = $1 AND date >= CURRENT_DATE - INTERVAL '30 days'`, userID).
		Scan(&summary.TotalIncome, &summary.TotalExpenses, &summary.TransactionCount)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	rows, err := db.Query(`
		SELECT c.name, c.color, COALESCE(SUM(t.amount), 0) AS total
		FROM budget_transactions t
		JOIN budget_categories c ON t.category_id = c.id
		WHERE t.user_id = $1 AND t.date >= CURRENT_DATE - INTERVAL '30 days' AND t.type = 'expense'
		GROUP BY c.name, c.color
		ORDER BY total DESC`, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	byCategory := make([]CategoryTotal, 0)
	for rows.Next() {
		var ct CategoryTotal
		if err := rows.Scan(&ct.Name, &ct.Color, &ct.Total); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		byCategory = append(byCategory, ct)
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary, "byCategory": byCategory})
}

// === Budget accounts ===

// getBudgetAccounts lists the user's accounts with optional Redis caching
func getBudgetAccounts(c *gin.Context) {
	userID := currentUserID(c)
	ctx := c.Request.Context()

	var cached []BudgetAccount
	if cacheGet(ctx, accountsCacheKey(userID), &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	rows, err := db.Query(`SELECT id, user_id, name, type, balance, color FROM budget_accounts WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	accounts := make([]BudgetAccount, 0)
	for rows.Next() {
		var a BudgetAccount
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &a.Balance, &a.Color); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		accounts = append(accounts, a)
	}

	cacheSet(ctx, accountsCacheKey(userID), accounts, 60*time.Second)
	c.JSON(http.StatusOK, accounts)
}

func createBudgetAccount(c *gin.Context) {
	var a BudgetAccount
	if err := c.ShouldBindJSON(&a); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if a.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name is required", "field": "name"})
		return
	}
	if a.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "type is required", "field": "type"})
		return
	}

	userID := currentUserID(c)
	err := db.QueryRow(`
		INSERT INTO budget_accounts (user_id, name, type, balance, color)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		userID, a.Name, a.Type, a.Balance.StringFixed(2), a.Color).Scan(&a.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	a.UserID = userID

	cacheDel(c.Request.Context(), accountsCacheKey(userID))
	c.JSON(http.StatusCreated, a)
}

type accountUpdateRequest struct {
	Name    *string          `json:"name"`
	Type    *string          `json:"type"`
	Balance *decimal.Decimal `json:"balance"`
	Color   *string          `json:"color"`
}

// updateBudgetAccount applies a partial update. Setting balance here is the
// explicit administrative override: it bypasses the transaction ledger and
// resets the account's effective starting point.
func updateBudgetAccount(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req accountUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	userID := currentUserID(c)
	var a BudgetAccount
	err := db.QueryRow(`
		UPDATE budget_accounts
		SET name = COALESCE($1, name),
		    type = COALESCE($2, type),
		    balance = COALESCE($3, balance),
		    color = COALESCE($4, color)
		WHERE id = $5 AND user_id = $6
		RETURNING id, user_id, name, type, balance, color`,
		req.Name, req.Type, req.Balance, req.Color, id, userID).
		Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &a.Balance, &a.Color)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Account not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cacheDel(c.Request.Context(), accountsCacheKey(userID))
	c.JSON(http.StatusOK, a)
}

func deleteBudgetAccount(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	userID := currentUserID(c)
	if _, err := db.Exec(`DELETE FROM budget_accounts WHERE id = $1 AND user_id = $2`, id, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	cacheDel(c.Request.Context(), accountsCacheKey(userID))
	c.Status(http.StatusNoContent)
}

type transferRequest struct {
	FromAccountID int     `json:"fromAccountId"`
	ToAccountID   int     `json:"toAccountId"`
	Amount        string  `json:"amount"` // decimal string, never a binary float
	Description   *string `json:"description"`
}

// transferBetweenAccounts moves money between two of the user's accounts.
// The paired balance writes happen atomically; the user's total balance is
// conserved.
func transferBetweenAccounts(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid amount"})
		return
	}

	userID := currentUserID(c)
	if err := transferFunds(db, userID, req.FromAccountID, req.ToAccountID, amount); err != nil {
		var ve *ValidationError
		switch {
		case errors.Is(err, errAccountNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Account not found"})
		case errors.Is(err, errInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid amount"})
		case errors.As(err, &ve):
			c.JSON(http.StatusBadRequest, gin.H{"message": ve.Message, "field": ve.Field})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	cacheDel(c.Request.Context(), accountsCacheKey(userID))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// === Budget categories ===

func getBudgetCategories(c *gin.Context) {
	userID := currentUserID(c)
	rows, err := db.Query(`SELECT id, user_id, name, type, color, icon FROM budget_categories WHERE user_id = $1 ORDER BY name`, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	categories := make([]BudgetCategory, 0)
	for rows.Next() {
		var cat BudgetCategory
		if err := rows.Scan(&cat.ID, &cat.UserID, &cat.Name, &cat.Type, &cat.Color, &cat.Icon); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		categories = append(categories, cat)
	}
	c.JSON(http.StatusOK, categories)
}

func createBudgetCategory(c *gin.Context) {
	var cat BudgetCategory
	if err := c.ShouldBindJSON(&cat); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if cat.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name is required", "field": "name"})
		return
	}
	if cat.Type != "income" && cat.Type != "expense" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "type must be 'income' or 'expense'", "field": "type"})
		return
	}

	userID := currentUserID(c)
	err := db.QueryRow(`
		INSERT INTO budget_categories (user_id, name, type, color, icon)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		userID, cat.Name, cat.Type, cat.Color, cat.Icon).Scan(&cat.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	cat.UserID = userID
	c.JSON(http.StatusCreated, cat)
}

type categoryUpdateRequest struct {
	Name  *string `json:"name"`
	Type  *string `json:"type"`
	Color *string `json:"color"`
	Icon  *string `json:"icon"`
}

func updateBudgetCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req categoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var cat BudgetCategory
	err := db.QueryRow(`
		UPDATE budget_categories
		SET name = COALESCE($1, name),
		    type = COALESCE($2, type),
		    color = COALESCE($3, color),
		    icon = COALESCE($4, icon)
		WHERE id = $5 AND user_id = $6
		RETURNING id, user_id, name, type, color, icon`,
		req.Name, req.Type, req.Color, req.Icon, id, currentUserID(c)).
		Scan(&cat.ID, &cat.UserID, &cat.Name, &cat.Type, &cat.Color, &cat.Icon)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cat)
}

func deleteBudgetCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := db.Exec(`DELETE FROM budget_categories WHERE id = $1 AND user_id = $2`, id, currentUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// === Budget scenarios ===

func getBudgetScenarios(c *gin.Context) {
	rows, err := db.Query(`
		SELECT id, user_id, name, description, projected_income, projected_expenses, start_date, end_date
		FROM budget_scenarios WHERE user_id = $1 ORDER BY start_date DESC`, currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	scenarios := make([]BudgetScenario, 0)
	for rows.Next() {
		var s BudgetScenario
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Description, &s.ProjectedIncome,
			&s.ProjectedExpenses, &s.StartDate, &s.EndDate); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		scenarios = append(scenarios, s)
	}
	c.JSON(http.StatusOK, scenarios)
}

func createBudgetScenario(c *gin.Context) {
	var s BudgetScenario
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if s.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name is required", "field": "name"})
		return
	}

	userID := currentUserID(c)
	err := db.QueryRow(`
		INSERT INTO budget_scenarios (user_id, name, description, projected_income, projected_expenses, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		userID, s.Name, s.Description, s.ProjectedIncome.StringFixed(2),
		s.ProjectedExpenses.StringFixed(2), s.StartDate, s.EndDate).Scan(&s.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	s.UserID = userID
	c.JSON(http.StatusCreated, s)
}

type scenarioUpdateRequest struct {
	Name              *string          `json:"name"`
	Description       *string          `json:"description"`
	ProjectedIncome   *decimal.Decimal `json:"projectedIncome"`
	ProjectedExpenses *decimal.Decimal `json:"projectedExpenses"`
	StartDate         *time.Time       `json:"startDate"`
	EndDate           *time.Time       `json:"endDate"`
}

func updateBudgetScenario(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req scenarioUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var s BudgetScenario
	err := db.QueryRow(`
		UPDATE budget_scenarios
		SET name = COALESCE($1, name),
		    description = COALESCE($2, description),
		    projected_income = COALESCE($3, projected_income),
		    projected_expenses = COALESCE($4, projected_expenses),
		    start_date = COALESCE($5, start_date),
		    end_date = COALESCE($6, end_date)
		WHERE id = $7 AND user_id = $8
		RETURNING id, user_id, name, description, projected_income, projected_expenses, start_date, end_date`,
		req.Name, req.Description, req.ProjectedIncome, req.ProjectedExpenses,
		req.StartDate, req.EndDate, id, currentUserID(c)).
		Scan(&s.ID, &s.UserID, &s.Name, &s.Description, &s.ProjectedIncome,
			&s.ProjectedExpenses, &s.StartDate, &s.EndDate)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Scenario not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s)
}

func deleteBudgetScenario(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := db.Exec(`DELETE FROM budget_scenarios WHERE id = $1 AND user_id = $2`, id, currentUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// === Budget plan entries ===

func getBudgetPlanEntries(c *gin.Context) {
	rows, err := db.Query(`
		SELECT id, user_id, date, type, description, amount, is_from_paycheck, created_at
		FROM budget_plan_entries WHERE user_id = $1 ORDER BY date`, currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	entries := make([]BudgetPlanEntry, 0)
	for rows.Next() {
		var e BudgetPlanEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.Type, &e.Description,
			&e.Amount, &e.IsFromPaycheck, &e.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		entries = append(entries, e)
	}
	c.JSON(http.StatusOK, entries)
}

func createBudgetPlanEntry(c *gin.Context) {
	var e BudgetPlanEntry
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if e.Type != "income" && e.Type != "expense" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "type must be 'income' or 'expense'", "field": "type"})
		return
	}
	if e.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "description is required", "field": "description"})
		return
	}

	userID := currentUserID(c)
	err := db.QueryRow(`
		INSERT INTO budget_plan_entries (user_id, date, type, description, amount, is_from_paycheck)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		userID, e.Date, e.Type, e.Description, e.Amount.StringFixed(2), e.IsFromPaycheck).
		Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	e.UserID = userID
	c.JSON(http.StatusCreated, e)
}

func deleteBudgetPlanEntry(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := db.Exec(`DELETE FROM budget_plan_entries WHERE id = $1 AND user_id = $2`, id, currentUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
