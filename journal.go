package main

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// === Journal ===

func getJournalEntries(c *gin.Context) {
	rows, err := db.Query(`SELECT id, user_id, date, title, content, mood, tags FROM journal_entries WHERE user_id = $1 ORDER BY date DESC`, currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	entries := make([]JournalEntry, 0)
	for rows.Next() {
		var e JournalEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.Title, &e.Content, &e.Mood, &e.Tags); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		entries = append(entries, e)
	}
	c.JSON(http.StatusOK, entries)
}

func createJournalEntry(c *gin.Context) {
	var e JournalEntry
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if e.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "content is required", "field": "content"})
		return
	}
	if e.Date.IsZero() {
		e.Date = time.Now()
	}

	userID := currentUserID(c)
	err := db.QueryRow(`INSERT INTO journal_entries (user_id, date, title, content, mood, tags) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		userID, e.Date, e.Title, e.Content, e.Mood, e.Tags).Scan(&e.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	e.UserID = userID
	c.JSON(http.StatusCreated, e)
}

type journalUpdateRequest struct {
	Date    *time.Time `json:"date"`
	Title   *string    `json:"title"`
	Content *string    `json:"content"`
	Mood    *string    `json:"mood"`
	Tags    *string    `json:"tags"`
}

func updateJournalEntry(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req journalUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var e JournalEntry
	err := db.QueryRow(`
		UPDATE journal_entries
		SET date = COALESCE($1, date),
		    title = COALESCE($2, title),
		    content = COALESCE($3, content),
		    mood = COALESCE($4, mood),
		    tags = COALESCE($5, tags)
		WHERE id = $6 AND user_id = $7
		RETURNING id, user_id, date, title, content, mood, tags`,
		req.Date, req.Title, req.Content, req.Mood, req.Tags, id, currentUserID(c)).
		Scan(&e.ID, &e.UserID, &e.Date, &e.Title, &e.Content, &e.Mood, &e.Tags)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Journal entry not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, e)
}

func deleteJournalEntry(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := db.Exec(`DELETE FROM journal_entries WHERE id = $1 AND user_id = $2`, id, currentUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// === Progress photos ===
// The photo bytes live elsewhere; rows only reference an image URL.

func getProgressPhotos(c *gin.Context) {
	rows, err := db.Query(`SELECT id, user_id, date, image_url, weight, notes FROM progress_photos WHERE user_id = $1 ORDER BY date DESC`, currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	photos := make([]ProgressPhoto, 0)
	for rows.Next() {
		var p ProgressPhoto
		if err := rows.Scan(&p.ID, &p.UserID, &p.Date, &p.ImageURL, &p.Weight, &p.Notes); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		photos = append(photos, p)
	}
	c.JSON(http.StatusOK, photos)
}

func createProgressPhoto(c *gin.Context) {
	var p ProgressPhoto
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if p.ImageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "imageUrl is required", "field": "imageUrl"})
		return
	}
	if p.Date.IsZero() {
		p.Date = time.Now()
	}

	userID := currentUserID(c)
	err := db.QueryRow(`INSERT INTO progress_photos (user_id, date, image_url, weight, notes) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		userID, p.Date, p.ImageURL, p.Weight, p.Notes).Scan(&p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	p.UserID = userID
	c.JSON(http.StatusCreated, p)
}

func deleteProgressPhoto(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := db.Exec(`DELETE FROM progress_photos WHERE id = $1 AND user_id = $2`, id, currentUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// === Motivational quotes ===

func getMotivationalQuotes(c *gin.Context) {
	rows, err := db.Query(`SELECT id, user_id, text, author, is_custom, created_at FROM motivational_quotes WHERE user_id = $1 ORDER BY created_at DESC`, currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	quotes := make([]MotivationalQuote, 0)
	for rows.Next() {
		var q MotivationalQuote
		if err := rows.Scan(&q.ID, &q.UserID, &q.Text, &q.Author, &q.IsCustom, &q.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		quotes = append(quotes, q)
	}
	c.JSON(http.StatusOK, quotes)
}

func createMotivationalQuote(c *gin.Context) {
	var q MotivationalQuote
	if err := c.ShouldBindJSON(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if q.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "text is required", "field": "text"})
		return
	}

	userID := currentUserID(c)
	err := db.QueryRow(`INSERT INTO motivational_quotes (user_id, text, author, is_custom) VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		userID, q.Text, q.Author, q.IsCustom).Scan(&q.ID, &q.CreatedAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	q.UserID = userID
	c.JSON(http.StatusCreated, q)
}

type quoteUpdateRequest struct {
	Text   *string `json:"text"`
	Author *string `json:"author"`
}

func updateMotivationalQuote(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req quoteUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var q MotivationalQuote
	err := db.QueryRow(`
		UPDATE motivational_quotes
		SET text = COALESCE($1, text), author = COALESCE($2, author)
		WHERE id = $3 AND user_id = $4
		RETURNING id, user_id, text, author, is_custom, created_at`,
		req.Text, req.Author, id, currentUserID(c)).
		Scan(&q.ID, &q.UserID, &q.Text, &q.Author, &q.IsCustom, &q.CreatedAt)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Quote not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, q)
}

func deleteMotivationalQuote(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := db.Exec(`DELETE FROM motivational_quotes WHERE id = $1 AND user_id = $2`, id, currentUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
