package main

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// === Jobs ===

func getJobs(c *gin.Context) {
	rows, err := db.Query(`SELECT id, user_id, name, hourly_rate, color, is_active, created_at FROM jobs WHERE user_id = $1 ORDER BY created_at`, currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	jobs := make([]Job, 0)
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.UserID, &j.Name, &j.HourlyRate, &j.Color, &j.IsActive, &j.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		jobs = append(jobs, j)
	}
	c.JSON(http.StatusOK, jobs)
}

type jobCreateRequest struct {
	Name       string          `json:"name"`
	HourlyRate decimal.Decimal `json:"hourlyRate"`
	Color      *string         `json:"color"`
	IsActive   *bool           `json:"isActive"`
}

func createJob(c *gin.Context) {
	var req jobCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name is required", "field": "name"})
		return
	}
	if req.HourlyRate.Sign() <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "hourlyRate must be a positive number", "field": "hourlyRate"})
		return
	}

	j := Job{Name: req.Name, HourlyRate: req.HourlyRate, Color: req.Color, IsActive: true}
	if req.IsActive != nil {
		j.IsActive = *req.IsActive
	}
	userID := currentUserID(c)
	err := db.QueryRow(`INSERT INTO jobs (user_id, name, hourly_rate, color, is_active) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`,
		userID, j.Name, j.HourlyRate.StringFixed(2), j.Color, j.IsActive).Scan(&j.ID, &j.CreatedAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	j.UserID = userID
	c.JSON(http.StatusCreated, j)
}

type jobUpdateRequest struct {
	Name       *string          `json:"name"`
	HourlyRate *decimal.Decimal `json:"hourlyRate"`
	Color      *string          `json:"color"`
	IsActive   *bool            `json:"isActive"`
}

func updateJob(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req jobUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var j Job
	err := db.QueryRow(`
		UPDATE jobs
		SET name = COALESCE($1, name),
		    hourly_rate = COALESCE($2, hourly_rate),
		    color = COALESCE($3, color),
		    is_active = COALESCE($4, is_active)
		WHERE id = $5 AND user_id = $6
		RETURNING id, user_id, name, hourly_rate, color, is_active, created_at`,
		req.Name, req.HourlyRate, req.Color, req.IsActive, id, currentUserID(c)).
		Scan(&j.ID, &j.UserID, &j.Name, &j.HourlyRate, &j.Color, &j.IsActive, &j.CreatedAt)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Job not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, j)
}

func deleteJob(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := db.Exec(`DELETE FROM jobs WHERE id = $1 AND user_id = $2`, id, currentUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// === Paycheck history ===

func getPaycheckHistory(c *gin.Context) {
	rows, err := db.Query(`
		SELECT id, user_id, week_start, total_hours, total_gross, job_breakdown, created_at
		FROM paycheck_history WHERE user_id = $1 ORDER BY week_start DESC`, currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	history := make([]PaycheckHistory, 0)
	for rows.Next() {
		var h PaycheckHistory
		if err := rows.Scan(&h.ID, &h.UserID, &h.WeekStart, &h.TotalHours, &h.TotalGross, &h.JobBreakdown, &h.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		history = append(history, h)
	}
	c.JSON(http.StatusOK, history)
}

func createPaycheckHistory(c *gin.Context) {
	var h PaycheckHistory
	if err := c.ShouldBindJSON(&h); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if h.WeekStart.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "weekStart is required", "field": "weekStart"})
		return
	}

	userID := currentUserID(c)
	err := db.QueryRow(`
		INSERT INTO paycheck_history (user_id, week_start, total_hours, total_gross, job_breakdown)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		userID, h.WeekStart, h.TotalHours.StringFixed(2), h.TotalGross.StringFixed(2), h.JobBreakdown).
		Scan(&h.ID, &h.CreatedAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.UserID = userID
	c.JSON(http.StatusCreated, h)
}

func deletePaycheckHistory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := db.Exec(`DELETE FROM paycheck_history WHERE id = $1 AND user_id = $2`, id, currentUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// === Paycheck daily hours ===
// One row per (job, week, weekday); writes are upserts against that key.

func weekStartParam(c *gin.Context) (time.Time, bool) {
	ws, err := time.Parse("2006-01-02", c.Param("weekStart"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "weekStart must be YYYY-MM-DD"})
		return time.Time{}, false
	}
	return ws, true
}

func getPaycheckDailyHours(c *gin.Context) {
	weekStart, ok := weekStartParam(c)
	if !ok {
		return
	}

	rows, err := db.Query(`
		SELECT id, user_id, job_id, week_start, day, hours, updated_at
		FROM paycheck_daily_hours WHERE user_id = $1 AND week_start = $2 ORDER BY job_id, day`,
		currentUserID(c), weekStart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	entries := make([]PaycheckDailyHours, 0)
	for rows.Next() {
		var e PaycheckDailyHours
		if err := rows.Scan(&e.ID, &e.UserID, &e.JobID, &e.WeekStart, &e.Day, &e.Hours, &e.UpdatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		entries = append(entries, e)
	}
	c.JSON(http.StatusOK, entries)
}

func upsertDailyHours(userID string, e *PaycheckDailyHours) error {
	return db.QueryRow(`
		INSERT INTO paycheck_daily_hours (user_id, job_id, week_start, day, hours)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, job_id, week_start, day)
		DO UPDATE SET hours = EXCLUDED.hours, updated_at = CURRENT_TIMESTAMP
		RETURNING id, updated_at`,
		userID, e.JobID, e.WeekStart, e.Day, e.Hours.StringFixed(2)).
		Scan(&e.ID, &e.UpdatedAt)
}

func savePaycheckDailyHours(c *gin.Context) {
	var e PaycheckDailyHours
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if e.JobID == 0 || e.WeekStart.IsZero() || e.Day == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}

	userID := currentUserID(c)
	if err := upsertDailyHours(userID, &e); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	e.UserID = userID
	c.JSON(http.StatusCreated, e)
}

type saveDayRequest struct {
	WeekStart time.Time `json:"weekStart"`
	Day       string    `json:"day"`
	HoursData []struct {
		JobID int             `json:"jobId"`
		Hours decimal.Decimal `json:"hours"`
	} `json:"hoursData"`
}

// saveDayHours bulk-upserts every job's hours for one weekday
func saveDayHours(c *gin.Context) {
	var req saveDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.WeekStart.IsZero() || req.Day == "" || len(req.HoursData) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}

	userID := currentUserID(c)
	results := make([]PaycheckDailyHours, 0, len(req.HoursData))
	for _, h := range req.HoursData {
		e := PaycheckDailyHours{
			UserID:    userID,
			JobID:     h.JobID,
			WeekStart: req.WeekStart,
			Day:       req.Day,
			Hours:     h.Hours,
		}
		if err := upsertDailyHours(userID, &e); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		results = append(results, e)
	}
	c.JSON(http.StatusCreated, results)
}

func clearPaycheckDailyHours(c *gin.Context) {
	weekStart, ok := weekStartParam(c)
	if !ok {
		return
	}
	if _, err := db.Exec(`DELETE FROM paycheck_daily_hours WHERE user_id = $1 AND week_start = $2`, currentUserID(c), weekStart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
