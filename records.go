package main

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// === Martial arts competition records ===

func getMartialArtsRecords(c *gin.Context) {
	rows, err := db.Query(`
		SELECT id, user_id, date, sport, result, method, opponent, event, location, round, notes, created_at
		FROM martial_arts_records WHERE user_id = $1 ORDER BY date DESC`, currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	records := make([]MartialArtsRecord, 0)
	for rows.Next() {
		var r MartialArtsRecord
		if err := rows.Scan(&r.ID, &r.UserID, &r.Date, &r.Sport, &r.Result, &r.Method, &r.Opponent,
			&r.Event, &r.Location, &r.Round, &r.Notes, &r.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		records = append(records, r)
	}
	c.JSON(http.StatusOK, records)
}

func createMartialArtsRecord(c *gin.Context) {
	var r MartialArtsRecord
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if r.Sport == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "sport is required", "field": "sport"})
		return
	}
	if r.Result != "win" && r.Result != "loss" && r.Result != "draw" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "result must be 'win', 'loss' or 'draw'", "field": "result"})
		return
	}
	if r.Date.IsZero() {
		r.Date = time.Now()
	}

	userID := currentUserID(c)
	err := db.QueryRow(`
		INSERT INTO martial_arts_records (user_id, date, sport, result, method, opponent, event, location, round, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`,
		userID, r.Date, r.Sport, r.Result, r.Method, r.Opponent, r.Event, r.Location, r.Round, r.Notes).
		Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	r.UserID = userID
	c.JSON(http.StatusCreated, r)
}

type recordUpdateRequest struct {
	Date     *time.Time `json:"date"`
	Sport    *string    `json:"sport"`
	Result   *string    `json:"result"`
	Method   *string    `json:"method"`
	Opponent *string    `json:"opponent"`
	Event    *string    `json:"event"`
	Location *string    `json:"location"`
	Round    *int       `json:"round"`
	Notes    *string    `json:"notes"`
}

func updateMartialArtsRecord(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req recordUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var r MartialArtsRecord
	err := db.QueryRow(`
		UPDATE martial_arts_records
		SET date = COALESCE($1, date),
		    sport = COALESCE($2, sport),
		    result = COALESCE($3, result),
		    method = COALESCE($4, method),
		    opponent = COALESCE($5, opponent),
		    event = COALESCE($6, event),
		    location = COALESCE($7, location),
		    round = COALESCE($8, round),
		    notes = COALESCE($9, notes)
		WHERE id = $10 AND user_id = $11
		RETURNING id, user_id, date, sport, result, method, opponent, event, location, round, notes, created_at`,
		req.Date, req.Sport, req.Result, req.Method, req.Opponent, req.Event,
		req.Location, req.Round, req.Notes, id, currentUserID(c)).
		Scan(&r.ID, &r.UserID, &r.Date, &r.Sport, &r.Result, &r.Method, &r.Opponent,
			&r.Event, &r.Location, &r.Round, &r.Notes, &r.CreatedAt)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Record not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, r)
}

func deleteMartialArtsRecord(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := db.Exec(`DELETE FROM martial_arts_records WHERE id = $1 AND user_id = $2`, id, currentUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// === Martial arts belts ===

func getMartialArtsBelts(c *gin.Context) {
	rows, err := db.Query(`
		SELECT id, user_id, sport, belt, stripes, date_achieved, notes, created_at
		FROM martial_arts_belts WHERE user_id = $1 ORDER BY created_at DESC`, currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	belts := make([]MartialArtsBelt, 0)
	for rows.Next() {
		var b MartialArtsBelt
		if err := rows.Scan(&b.ID, &b.UserID, &b.Sport, &b.Belt, &b.Stripes, &b.DateAchieved, &b.Notes, &b.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		belts = append(belts, b)
	}
	c.JSON(http.StatusOK, belts)
}

func createMartialArtsBelt(c *gin.Context) {
	var b MartialArtsBelt
	if err := c.ShouldBindJSON(&b); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if b.Sport == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "sport is required", "field": "sport"})
		return
	}
	if b.Belt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "belt is required", "field": "belt"})
		return
	}

	userID := currentUserID(c)
	err := db.QueryRow(`
		INSERT INTO martial_arts_belts (user_id, sport, belt, stripes, date_achieved, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		userID, b.Sport, b.Belt, b.Stripes, b.DateAchieved, b.Notes).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	b.UserID = userID
	c.JSON(http.StatusCreated, b)
}

type beltUpdateRequest struct {
	Sport        *string    `json:"sport"`
	Belt         *string    `json:"belt"`
	Stripes      *int       `json:"stripes"`
	DateAchieved *time.Time `json:"dateAchieved"`
	Notes        *string    `json:"notes"`
}

func updateMartialArtsBelt(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req beltUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var b MartialArtsBelt
	err := db.QueryRow(`
		UPDATE martial_arts_belts
		SET sport = COALESCE($1, sport),
		    belt = COALESCE($2, belt),
		    stripes = COALESCE($3, stripes),
		    date_achieved = COALESCE($4, date_achieved),
		    notes = COALESCE($5, notes)
		WHERE id = $6 AND user_id = $7
		RETURNING id, user_id, sport, belt, stripes, date_achieved, notes, created_at`,
		req.Sport, req.Belt, req.Stripes, req.DateAchieved, req.Notes, id, currentUserID(c)).
		Scan(&b.ID, &b.UserID, &b.Sport, &b.Belt, &b.Stripes, &b.DateAchieved, &b.Notes, &b.CreatedAt)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Belt not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, b)
}

func deleteMartialArtsBelt(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := db.Exec(`DELETE FROM martial_arts_belts WHERE id = $1 AND user_id = $2`, id, currentUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
