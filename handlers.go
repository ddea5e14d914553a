package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// currentUserID resolves the opaque per-request user identity from the
// X-User-ID header. Authentication itself lives upstream of this service;
// the API only threads the identifier through every query, never ambient
// state. Single-user deployments fall back to "local".
func currentUserID(c *gin.Context) string {
	if id := c.GetHeader("X-User-ID"); id != "" {
		return id
	}
	return "local"
}

func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return 0, false
	}
	return id, true
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	if err := db.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "lifetrack-backend",
	})
}
