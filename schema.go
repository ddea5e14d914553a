package main

import (
	"database/sql"
	"fmt"
)

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS weight_entries (
		id SERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		weight NUMERIC NOT NULL,
		date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		note TEXT
	);

	CREATE TABLE IF NOT EXISTS diet_entries (
		id SERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		meal_type TEXT NOT NULL,
		food_name TEXT NOT NULL,
		serving_size NUMERIC,
		serving_unit TEXT,
		calories INTEGER NOT NULL,
		protein INTEGER,
		carbs INTEGER,
		fats INTEGER,
		fiber INTEGER,
		sugar INTEGER
	);

	CREATE TABLE IF NOT EXISTS workouts (
		id SERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		exercise_name TEXT NOT NULL,
		category TEXT NOT NULL,
		duration INTEGER NOT NULL,
		calories_burned INTEGER,
		intensity TEXT,
		sets INTEGER,
		reps INTEGER,
		weight NUMERIC,
		notes TEXT
	);

	CREATE TABLE IF NOT EXISTS recovery_entries (
		id SERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		type TEXT NOT NULL,
		duration INTEGER NOT NULL,
		notes TEXT
	);

	CREATE TABLE IF NOT EXISTS sleep_entries (
		id SERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		duration NUMERIC NOT NULL,
		quality INTEGER,
		notes TEXT
	);

	CREATE TABLE IF NOT EXISTS journal_entries (
		id SERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		title TEXT,
		content TEXT NOT NULL,
		mood TEXT,
		tags TEXT
	);

	CREATE TABLE IF NOT EXISTS progress_photos (
		id SERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		image_url TEXT NOT NULL,
		weight NUMERIC,
		notes TEXT
	);

	CREATE TABLE IF NOT EXISTS budget_categories (
		id SERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		color TEXT,
		icon TEXT
	);

	CREATE TABLE IF NOT EXISTS budget_accounts (
		id SERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		balance NUMERIC NOT NULL DEFAULT 0,
		color TEXT
	);

	CREATE TABLE IF NOT EXISTS budget_transactions (
		id SERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		amount NUMERIC NOT NULL,
		type TEXT NOT NULL,
		category_id INTEGER,
		account_id INTEGER,
		description TEXT,
		is_recurring BOOLEAN DEFAULT FALSE,
		recurring_frequency TEXT
	);

	CREATE TABLE IF NOT EXISTS budget_scenarios (
		id SERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT,
		projected_income NUMERIC NOT NULL,
		projected_expenses NUMERIC NOT NULL,
		start_date TIMESTAMP NOT NULL,
		end_date TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS todos (
		id SERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		completed BOOLEAN DEFAULT FALSE,
		priority TEXT DEFAULT 'medium',
		due_date TIMESTAMP,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS motivational_quotes (
		id SERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		text TEXT NOT NULL,
		author TEXT,
		is_custom BOOLEAN DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS martial_arts_records (
		id SERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		sport TEXT NOT NULL,
		result TEXT NOT NULL,
		method TEXT,
		opponent TEXT,
		event TEXT,
		location TEXT,
		round INTEGER,
		notes TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS martial_arts_belts (
		id SERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		sport TEXT NOT NULL,
		belt TEXT NOT NULL,
		stripes INTEGER DEFAULT 0,
		date_achieved TIMESTAMP,
		notes TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS calendar_events (
		id SERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		start_date TIMESTAMP NOT NULL,
		end_date TIMESTAMP NOT NULL,
		all_day BOOLEAN DEFAULT FALSE,
		location TEXT,
		color TEXT DEFAULT '#D4AF37',
		category TEXT,
		reminder TEXT,
		recurring TEXT,
		recurring_end_date TIMESTAMP,
		external_id TEXT,
		source_calendar TEXT
	);

	CREATE TABLE IF NOT EXISTS jobs (
		id SERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		hourly_rate NUMERIC NOT NULL,
		color TEXT,
		is_active BOOLEAN DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS paycheck_history (
		id SERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		week_start DATE NOT NULL,
		total_hours NUMERIC NOT NULL,
		total_gross NUMERIC NOT NULL,
		job_breakdown TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS paycheck_daily_hours (
		id SERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		job_id INTEGER NOT NULL,
		week_start DATE NOT NULL,
		day TEXT NOT NULL,
		hours NUMERIC NOT NULL DEFAULT 0,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS budget_plan_entries (
		id SERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		date DATE NOT NULL,
		type TEXT NOT NULL,
		description TEXT NOT NULL,
		amount NUMERIC NOT NULL,
		is_from_paycheck BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	-- One grid cell per (user, job, week, day); required by the upsert path
	CREATE UNIQUE INDEX IF NOT EXISTS idx_daily_hours_cell
		ON paycheck_daily_hours(user_id, job_id, week_start, day);

	-- One category name per user and kind
	CREATE UNIQUE INDEX IF NOT EXISTS idx_budget_categories_name_type
		ON budget_categories(user_id, name, type);

	CREATE INDEX IF NOT EXISTS idx_budget_transactions_user ON budget_transactions(user_id, date DESC);
	CREATE INDEX IF NOT EXISTS idx_calendar_events_user ON calendar_events(user_id, start_date DESC);
`

const seedSQL = `
	INSERT INTO budget_categories (user_id, name, type, color) VALUES
		('local', 'Groceries', 'expense', '#e74c3c'),
		('local', 'Rent', 'expense', '#e67e22'),
		('local', 'Utilities', 'expense', '#f39c12'),
		('local', 'Transportation', 'expense', '#3498db'),
		('local', 'Entertainment', 'expense', '#9b59b6'),
		('local', 'Salary', 'income', '#27ae60'),
		('local', 'Freelance', 'income', '#16a085')
	ON CONFLICT (user_id, name, type) DO NOTHING;
`

func ensureSchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func seedDefaultCategories(db *sql.DB) error {
	if _, err := db.Exec(seedSQL); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	return nil
}

// Seed a small set of demo accounts and transactions for presentations.
// Idempotent: will only run if there are zero accounts present.
func seedDemoData(db *sql.DB) error {
	var cnt int
	if err := db.QueryRow(`SELECT COUNT(*) FROM budget_accounts`).Scan(&cnt); err != nil {
		return fmt.Errorf("checking accounts count: %w", err)
	}
	if cnt > 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const demoAccounts = `
	INSERT INTO budget_accounts (user_id, name, type, balance, color) VALUES
	('local', 'Checking', 'checking', 2450.00, '#3498db'),
	('local', 'Savings', 'savings', 8100.00, '#27ae60'),
	('local', 'Cash', 'cash', 120.00, '#f39c12')
	`
	if _, err := tx.Exec(demoAccounts); err != nil {
		return fmt.Errorf("seeding demo accounts: %w", err)
	}

	// A handful of income/expense demo transactions over the last ~30 days.
	// Categories assumed to exist from seedDefaultCategories. Amounts here are
	// display-only demo rows; they intentionally bypass the ledger so the
	// seeded balances above stay the effective starting point.
	const demoTx = `
	INSERT INTO budget_transactions (user_id, date, amount, type, category_id, description) VALUES
	('local', CURRENT_DATE - INTERVAL '28 days', 3200.00, 'income', (SELECT id FROM budget_categories WHERE name='Salary' AND type='income' LIMIT 1), 'Monthly Salary'),
	('local', CURRENT_DATE - INTERVAL '24 days', 1500.00, 'expense', (SELECT id FROM budget_categories WHERE name='Rent' AND type='expense' LIMIT 1), 'Rent - Apartment'),
	('local', CURRENT_DATE - INTERVAL '20 days', 96.72, 'expense', (SELECT id FROM budget_categories WHERE name='Groceries' AND type='expense' LIMIT 1), 'Groceries - Whole Foods'),
	('local', CURRENT_DATE - INTERVAL '13 days', 600.00, 'income', (SELECT id FROM budget_categories WHERE name='Freelance' AND type='income' LIMIT 1), 'Freelance: Dashboard Charts'),
	('local', CURRENT_DATE - INTERVAL '6 days', 132.39, 'expense', (SELECT id FROM budget_categories WHERE name='Groceries' AND type='expense' LIMIT 1), 'Groceries - Costco'),
	('local', CURRENT_DATE - INTERVAL '1 days', 54.80, 'expense', (SELECT id FROM budget_categories WHERE name='Entertainment' AND type='expense' LIMIT 1), 'Dinner Out')
	`
	if _, err := tx.Exec(demoTx); err != nil {
		return fmt.Errorf("seeding demo transactions: %w", err)
	}

	const demoQuotes = `
	INSERT INTO motivational_quotes (user_id, text, author, is_custom) VALUES
	('local', 'Discipline equals freedom.', 'Jocko Willink', FALSE),
	('local', 'A black belt is a white belt who never quit.', NULL, FALSE)
	`
	if _, err := tx.Exec(demoQuotes); err != nil {
		return fmt.Errorf("seeding demo quotes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	return nil
}
