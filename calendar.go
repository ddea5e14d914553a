package main

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const calendarSelect = `
	SELECT id, user_id, title, description, start_date, end_date, all_day, location,
	       color, category, reminder, recurring, recurring_end_date, external_id, source_calendar
	FROM calendar_events`

func scanCalendarEvent(rows *sql.Rows, e *CalendarEvent) error {
	return rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Description, &e.StartDate, &e.EndDate,
		&e.AllDay, &e.Location, &e.Color, &e.Category, &e.Reminder, &e.Recurring,
		&e.RecurringEndDate, &e.ExternalID, &e.SourceCalendar)
}

func queryCalendarEvents(userID string) ([]CalendarEvent, error) {
	rows, err := db.Query(calendarSelect+` WHERE user_id = $1 ORDER BY start_date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]CalendarEvent, 0)
	for rows.Next() {
		var e CalendarEvent
		if err := scanCalendarEvent(rows, &e); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// getCalendarEvents lists the user's events with optional Redis caching
func getCalendarEvents(c *gin.Context) {
	userID := currentUserID(c)
	ctx := c.Request.Context()

	var cached []CalendarEvent
	if cacheGet(ctx, calendarCacheKey(userID), &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	events, err := queryCalendarEvents(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cacheSet(ctx, calendarCacheKey(userID), events, 60*time.Second)
	c.JSON(http.StatusOK, events)
}

func insertCalendarEvent(userID string, e *CalendarEvent) error {
	return db.QueryRow(`
		INSERT INTO calendar_events (user_id, title, description, start_date, end_date, all_day,
			location, color, category, reminder, recurring, recurring_end_date, external_id, source_calendar)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`,
		userID, e.Title, e.Description, e.StartDate, e.EndDate, e.AllDay, e.Location,
		e.Color, e.Category, e.Reminder, e.Recurring, e.RecurringEndDate,
		e.ExternalID, e.SourceCalendar).Scan(&e.ID)
}

func createCalendarEvent(c *gin.Context) {
	var e CalendarEvent
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if e.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "title is required", "field": "title"})
		return
	}
	if e.StartDate.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "startDate is required", "field": "startDate"})
		return
	}
	if e.EndDate.IsZero() {
		e.EndDate = e.StartDate
	}

	userID := currentUserID(c)
	if err := insertCalendarEvent(userID, &e); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	e.UserID = userID

	cacheDel(c.Request.Context(), calendarCacheKey(userID))
	c.JSON(http.StatusCreated, e)
}

type calendarEventUpdateRequest struct {
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	StartDate        *time.Time `json:"startDate"`
	EndDate          *time.Time `json:"endDate"`
	AllDay           *bool      `json:"allDay"`
	Location         *string    `json:"location"`
	Color            *string    `json:"color"`
	Category         *string    `json:"category"`
	Reminder         *string    `json:"reminder"`
	Recurring        *string    `json:"recurring"`
	RecurringEndDate *time.Time `json:"recurringEndDate"`
}

func updateCalendarEvent(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req calendarEventUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	userID := currentUserID(c)
	var e CalendarEvent
	err := db.QueryRow(`
		UPDATE calendar_events
		SET title = COALESCE($1, title),
		    description = COALESCE($2, description),
		    start_date = COALESCE($3, start_date),
		    end_date = COALESCE($4, end_date),
		    all_day = COALESCE($5, all_day),
		    location = COALESCE($6, location),
		    color = COALESCE($7, color),
		    category = COALESCE($8, category),
		    reminder = COALESCE($9, reminder),
		    recurring = COALESCE($10, recurring),
		    recurring_end_date = COALESCE($11, recurring_end_date)
		WHERE id = $12 AND user_id = $13
		RETURNING id, user_id, title, description, start_date, end_date, all_day, location,
		          color, category, reminder, recurring, recurring_end_date, external_id, source_calendar`,
		req.Title, req.Description, req.StartDate, req.EndDate, req.AllDay, req.Location,
		req.Color, req.Category, req.Reminder, req.Recurring, req.RecurringEndDate, id, userID).
		Scan(&e.ID, &e.UserID, &e.Title, &e.Description, &e.StartDate, &e.EndDate,
			&e.AllDay, &e.Location, &e.Color, &e.Category, &e.Reminder, &e.Recurring,
			&e.RecurringEndDate, &e.ExternalID, &e.SourceCalendar)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cacheDel(c.Request.Context(), calendarCacheKey(userID))
	c.JSON(http.StatusOK, e)
}

func deleteCalendarEvent(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	userID := currentUserID(c)
	if _, err := db.Exec(`DELETE FROM calendar_events WHERE id = $1 AND user_id = $2`, id, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	cacheDel(c.Request.Context(), calendarCacheKey(userID))
	c.Status(http.StatusNoContent)
}

type importCalendarRequest struct {
	ICSData        string `json:"icsData"`
	SourceCalendar string `json:"sourceCalendar"`
}

// importCalendar bulk-imports events from raw .ics text. Drafts missing a
// title or start are dropped by the parser; everything accepted is persisted
// tagged with the caller's source-calendar label. Responds with the number
// of events imported.
func importCalendar(c *gin.Context) {
	var req importCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.ICSData == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing icsData"})
		return
	}

	drafts, err := parseICS(req.ICSData)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to parse ICS file"})
		return
	}

	source := req.SourceCalendar
	if source == "" {
		source = "ics"
	}

	userID := currentUserID(c)
	imported := 0
	for _, d := range drafts {
		externalID := d.ExternalID
		if externalID == "" {
			// feeds without UIDs still need stable provenance for re-export
			externalID = uuid.NewString()
		}
		end := d.End
		if end.IsZero() {
			end = d.Start
		}

		e := CalendarEvent{
			Title:          d.Title,
			StartDate:      d.Start,
			EndDate:        end,
			AllDay:         d.AllDay,
			ExternalID:     &externalID,
			SourceCalendar: &source,
		}
		if d.Description != "" {
			e.Description = &d.Description
		}
		if d.Location != "" {
			e.Location = &d.Location
		}

		if err := insertCalendarEvent(userID, &e); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		imported++
	}

	cacheDel(c.Request.Context(), calendarCacheKey(userID))
	c.JSON(http.StatusOK, gin.H{"imported": imported})
}

// exportCalendar serializes the user's events as a downloadable VCALENDAR
// document
func exportCalendar(c *gin.Context) {
	events, err := queryCalendarEvents(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="lifetrack-calendar.ics"`)
	c.Data(http.StatusOK, "text/calendar", []byte(generateICS(events)))
}
