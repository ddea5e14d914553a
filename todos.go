package main

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func getTodos(c *gin.Context) {
	rows, err := db.Query(`SELECT id, user_id, title, description, completed, priority, due_date, created_at FROM todos WHERE user_id = $1 ORDER BY created_at DESC`, currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	todos := make([]Todo, 0)
	for rows.Next() {
		var t Todo
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.Priority, &t.DueDate, &t.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		todos = append(todos, t)
	}
	c.JSON(http.StatusOK, todos)
}

func createTodo(c *gin.Context) {
	var t Todo
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if t.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "title is required", "field": "title"})
		return
	}
	if t.Priority == "" {
		t.Priority = "medium"
	}

	userID := currentUserID(c)
	err := db.QueryRow(`INSERT INTO todos (user_id, title, description, completed, priority, due_date) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`,
		userID, t.Title, t.Description, t.Completed, t.Priority, t.DueDate).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	t.UserID = userID
	c.JSON(http.StatusCreated, t)
}

type todoUpdateRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Completed   *bool      `json:"completed"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
}

func updateTodo(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req todoUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var t Todo
	err := db.QueryRow(`
		UPDATE todos
		SET title = COALESCE($1, title),
		    description = COALESCE($2, description),
		    completed = COALESCE($3, completed),
		    priority = COALESCE($4, priority),
		    due_date = COALESCE($5, due_date)
		WHERE id = $6 AND user_id = $7
		RETURNING id, user_id, title, description, completed, priority, due_date, created_at`,
		req.Title, req.Description, req.Completed, req.Priority, req.DueDate, id, currentUserID(c)).
		Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.Priority, &t.DueDate, &t.CreatedAt)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"message": "Todo not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, t)
}

func deleteTodo(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := db.Exec(`DELETE FROM todos WHERE id = $1 AND user_id = $2`, id, currentUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
