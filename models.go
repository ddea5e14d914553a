package main

import (
	"time"

	"github.com/shopspring/decimal"
)

// WeightEntry is a single bodyweight measurement
type WeightEntry struct {
	ID     int             `json:"id"`
	UserID string          `json:"userId"`
	Weight decimal.Decimal `json:"weight"`
	Date   time.Time       `json:"date"`
	Note   *string         `json:"note"`
}

// DietEntry is one logged meal or snack
type DietEntry struct {
	ID          int                 `json:"id"`
	UserID      string              `json:"userId"`
	Date        time.Time           `json:"date"`
	MealType    string              `json:"mealType"` // breakfast, lunch, dinner, snack
	FoodName    string              `json:"foodName"`
	ServingSize decimal.NullDecimal `json:"servingSize"`
	ServingUnit *string             `json:"servingUnit"`
	Calories    int                 `json:"calories"`
	Protein     *int                `json:"protein"`
	Carbs       *int                `json:"carbs"`
	Fats        *int                `json:"fats"`
	Fiber       *int                `json:"fiber"`
	Sugar       *int                `json:"sugar"`
}

// Workout is a single logged exercise session
type Workout struct {
	ID             int                 `json:"id"`
	UserID         string              `json:"userId"`
	Date           time.Time           `json:"date"`
	ExerciseName   string              `json:"exerciseName"`
	Category       string              `json:"category"` // cardio, strength, martial_arts, flexibility
	Duration       int                 `json:"duration"` // minutes
	CaloriesBurned *int                `json:"caloriesBurned"`
	Intensity      *string             `json:"intensity"` // low, medium, high
	Sets           *int                `json:"sets"`
	Reps           *int                `json:"reps"`
	Weight         decimal.NullDecimal `json:"weight"`
	Notes          *string             `json:"notes"`
}

// RecoveryEntry is a stretching/meditation/massage session
type RecoveryEntry struct {
	ID       int       `json:"id"`
	UserID   string    `json:"userId"`
	Date     time.Time `json:"date"`
	Type     string    `json:"type"`
	Duration int       `json:"duration"` // minutes
	Notes    *string   `json:"notes"`
}

// SleepEntry is one night of sleep
type SleepEntry struct {
	ID       int             `json:"id"`
	UserID   string          `json:"userId"`
	Date     time.Time       `json:"date"`
	Duration decimal.Decimal `json:"duration"` // hours
	Quality  *int            `json:"quality"`  // 1-10
	Notes    *string         `json:"notes"`
}

// JournalEntry is a dated free-text entry with optional mood and tags
type JournalEntry struct {
	ID      int       `json:"id"`
	UserID  string    `json:"userId"`
	Date    time.Time `json:"date"`
	Title   *string   `json:"title"`
	Content string    `json:"content"`
	Mood    *string   `json:"mood"` // great, good, okay, bad, terrible
	Tags    *string   `json:"tags"` // comma-separated
}

// ProgressPhoto references an already-uploaded image by URL
type ProgressPhoto struct {
	ID       int                 `json:"id"`
	UserID   string              `json:"userId"`
	Date     time.Time           `json:"date"`
	ImageURL string              `json:"imageUrl"`
	Weight   decimal.NullDecimal `json:"weight"`
	Notes    *string             `json:"notes"`
}

// BudgetCategory groups transactions for reporting
type BudgetCategory struct {
	ID     int     `json:"id"`
	UserID string  `json:"userId"`
	Name   string  `json:"name"`
	Type   string  `json:"type"` // income, expense
	Color  *string `json:"color"`
	Icon   *string `json:"icon"`
}

// BudgetTransaction is a single income or expense event. When it references
// an account, creating or deleting it also adjusts that account's balance;
// there is no in-place update, corrections are delete+recreate.
type BudgetTransaction struct {
	ID                 int             `json:"id"`
	UserID             string          `json:"userId"`
	Date               time.Time       `json:"date"`
	Amount             decimal.Decimal `json:"amount"`
	Type               string          `json:"type"` // income, expense
	CategoryID         *int            `json:"categoryId"`
	AccountID          *int            `json:"accountId"`
	Description        *string         `json:"description"`
	IsRecurring        bool            `json:"isRecurring"`
	RecurringFrequency *string         `json:"recurringFrequency"` // weekly, monthly, yearly
}

// BudgetAccount is a named bucket with a running balance. The balance is
// denormalized: it equals the opening value plus the net effect of every
// transaction and transfer applied through the ledger entry points.
type BudgetAccount struct {
	ID      int             `json:"id"`
	UserID  string          `json:"userId"`
	Name    string          `json:"name"`
	Type    string          `json:"type"` // checking, savings, credit, cash
	Balance decimal.Decimal `json:"balance"`
	Color   *string         `json:"color"`
}

// BudgetScenario is a what-if projection over a date range
type BudgetScenario struct {
	ID                int             `json:"id"`
	UserID            string          `json:"userId"`
	Name              string          `json:"name"`
	Description       *string         `json:"description"`
	ProjectedIncome   decimal.Decimal `json:"projectedIncome"`
	ProjectedExpenses decimal.Decimal `json:"projectedExpenses"`
	StartDate         time.Time       `json:"startDate"`
	EndDate           time.Time       `json:"endDate"`
}

// Todo is a to-do list item
type Todo struct {
	ID          int        `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"` // low, medium, high
	DueDate     *time.Time `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// MotivationalQuote is a user-saved quote
type MotivationalQuote struct {
	ID        int       `json:"id"`
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	Author    *string   `json:"author"`
	IsCustom  bool      `json:"isCustom"`
	CreatedAt time.Time `json:"createdAt"`
}

// MartialArtsRecord is one competition result
type MartialArtsRecord struct {
	ID        int       `json:"id"`
	UserID    string    `json:"userId"`
	Date      time.Time `json:"date"`
	Sport     string    `json:"sport"`  // Boxing, MMA, BJJ, Muay Thai
	Result    string    `json:"result"` // win, loss, draw
	Method    *string   `json:"method"` // KO, TKO, Submission, Decision, Points, DQ
	Opponent  *string   `json:"opponent"`
	Event     *string   `json:"event"`
	Location  *string   `json:"location"`
	Round     *int      `json:"round"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

// MartialArtsBelt is a rank achieved in one discipline
type MartialArtsBelt struct {
	ID           int        `json:"id"`
	UserID       string     `json:"userId"`
	Sport        string     `json:"sport"`
	Belt         string     `json:"belt"`
	Stripes      int        `json:"stripes"`
	DateAchieved *time.Time `json:"dateAchieved"`
	Notes        *string    `json:"notes"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// CalendarEvent is a scheduled event. Recurring/reminder tags are stored as
// descriptive metadata only; occurrences are never materialized. ExternalID
// and SourceCalendar track provenance of imported events for ICS sync.
type CalendarEvent struct {
	ID               int        `json:"id"`
	UserID           string     `json:"userId"`
	Title            string     `json:"title"`
	Description      *string    `json:"description"`
	StartDate        time.Time  `json:"startDate"`
	EndDate          time.Time  `json:"endDate"`
	AllDay           bool       `json:"allDay"`
	Location         *string    `json:"location"`
	Color            *string    `json:"color"`
	Category         *string    `json:"category"` // work, personal, health, fitness
	Reminder         *string    `json:"reminder"` // 15min, 30min, 1hour, 1day, none
	Recurring        *string    `json:"recurring"`
	RecurringEndDate *time.Time `json:"recurringEndDate"`
	ExternalID       *string    `json:"externalId"`
	SourceCalendar   *string    `json:"sourceCalendar"` // google, outlook, ics
}

// Job is a pay source used by the paycheck predictor
type Job struct {
	ID         int             `json:"id"`
	UserID     string          `json:"userId"`
	Name       string          `json:"name"`
	HourlyRate decimal.Decimal `json:"hourlyRate"`
	Color      *string         `json:"color"`
	IsActive   bool            `json:"isActive"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// PaycheckHistory is one finalized week of predicted pay
type PaycheckHistory struct {
	ID           int             `json:"id"`
	UserID       string          `json:"userId"`
	WeekStart    time.Time       `json:"weekStart"`
	TotalHours   decimal.Decimal `json:"totalHours"`
	TotalGross   decimal.Decimal `json:"totalGross"`
	JobBreakdown string          `json:"jobBreakdown"` // JSON blob of per-job detail
	CreatedAt    time.Time       `json:"createdAt"`
}

// PaycheckDailyHours is one cell of the weekly hours grid, keyed by
// (job, week start, weekday)
type PaycheckDailyHours struct {
	ID        int             `json:"id"`
	UserID    string          `json:"userId"`
	JobID     int             `json:"jobId"`
	WeekStart time.Time       `json:"weekStart"`
	Day       string          `json:"day"` // Monday..Sunday
	Hours     decimal.Decimal `json:"hours"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// BudgetPlanEntry is a planned future income or expense line
type BudgetPlanEntry struct {
	ID             int             `json:"id"`
	UserID         string          `json:"userId"`
	Date           time.Time       `json:"date"`
	Type           string          `json:"type"` // income, expense
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	IsFromPaycheck bool            `json:"isFromPaycheck"`
	CreatedAt      time.Time       `json:"createdAt"`
}
