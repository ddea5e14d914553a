package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Tracker entities share one shape: list newest-first, create with the date
// defaulting to now, delete by id scoped to the user.

// === Weight ===

func getWeightEntries(c *gin.Context) {
	rows, err := db.Query(`SELECT id, user_id, weight, date, note FROM weight_entries WHERE user_id = $1 ORDER BY date DESC`, currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	entries := make([]WeightEntry, 0)
	for rows.Next() {
		var e WeightEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Weight, &e.Date, &e.Note); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		entries = append(entries, e)
	}
	c.JSON(http.StatusOK, entries)
}

func createWeightEntry(c *gin.Context) {
	var e WeightEntry
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if e.Weight.Sign() <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "weight must be a positive number", "field": "weight"})
		return
	}
	if e.Date.IsZero() {
		e.Date = time.Now()
	}

	userID := currentUserID(c)
	err := db.QueryRow(`INSERT INTO weight_entries (user_id, weight, date, note) VALUES ($1, $2, $3, $4) RETURNING id`,
		userID, e.Weight, e.Date, e.Note).Scan(&e.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	e.UserID = userID
	c.JSON(http.StatusCreated, e)
}

func deleteWeightEntry(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := db.Exec(`DELETE FROM weight_entries WHERE id = $1 AND user_id = $2`, id, currentUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// === Diet ===

func getDietEntries(c *gin.Context) {
	rows, err := db.Query(`
		SELECT id, user_id, date, meal_type, food_name, serving_size, serving_unit,
		       calories, protein, carbs, fats, fiber, sugar
		FROM diet_entries WHERE user_id = $1 ORDER BY date DESC`, currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	entries := make([]DietEntry, 0)
	for rows.Next() {
		var e DietEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.MealType, &e.FoodName, &e.ServingSize,
			&e.ServingUnit, &e.Calories, &e.Protein, &e.Carbs, &e.Fats, &e.Fiber, &e.Sugar); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		entries = append(entries, e)
	}
	c.JSON(http.StatusOK, entries)
}

func createDietEntry(c *gin.Context) {
	var e DietEntry
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if e.MealType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "mealType is required", "field": "mealType"})
		return
	}
	if e.FoodName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "foodName is required", "field": "foodName"})
		return
	}
	if e.Date.IsZero() {
		e.Date = time.Now()
	}

	userID := currentUserID(c)
	err := db.QueryRow(`
		INSERT INTO diet_entries (user_id, date, meal_type, food_name, serving_size, serving_unit, calories, protein, carbs, fats, fiber, sugar)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		userID, e.Date, e.MealType, e.FoodName, e.ServingSize, e.ServingUnit,
		e.Calories, e.Protein, e.Carbs, e.Fats, e.Fiber, e.Sugar).Scan(&e.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	e.UserID = userID
	c.JSON(http.StatusCreated, e)
}

func deleteDietEntry(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := db.Exec(`DELETE FROM diet_entries WHERE id = $1 AND user_id = $2`, id, currentUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// === Workouts ===

func getWorkouts(c *gin.Context) {
	rows, err := db.Query(`
		SELECT id, user_id, date, exercise_name, category, duration, calories_burned,
		       intensity, sets, reps, weight, notes
		FROM workouts WHERE user_id = $1 ORDER BY date DESC`, currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	workouts := make([]Workout, 0)
	for rows.Next() {
		var w Workout
		if err := rows.Scan(&w.ID, &w.UserID, &w.Date, &w.ExerciseName, &w.Category, &w.Duration,
			&w.CaloriesBurned, &w.Intensity, &w.Sets, &w.Reps, &w.Weight, &w.Notes); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		workouts = append(workouts, w)
	}
	c.JSON(http.StatusOK, workouts)
}

func createWorkout(c *gin.Context) {
	var w Workout
	if err := c.ShouldBindJSON(&w); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if w.ExerciseName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "exerciseName is required", "field": "exerciseName"})
		return
	}
	if w.Duration <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "duration must be positive", "field": "duration"})
		return
	}
	if w.Date.IsZero() {
		w.Date = time.Now()
	}

	userID := currentUserID(c)
	err := db.QueryRow(`
		INSERT INTO workouts (user_id, date, exercise_name, category, duration, calories_burned, intensity, sets, reps, weight, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		userID, w.Date, w.ExerciseName, w.Category, w.Duration, w.CaloriesBurned,
		w.Intensity, w.Sets, w.Reps, w.Weight, w.Notes).Scan(&w.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	w.UserID = userID
	c.JSON(http.StatusCreated, w)
}

func deleteWorkout(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := db.Exec(`DELETE FROM workouts WHERE id = $1 AND user_id = $2`, id, currentUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// === Recovery ===

func getRecoveryEntries(c *gin.Context) {
	rows, err := db.Query(`SELECT id, user_id, date, type, duration, notes FROM recovery_entries WHERE user_id = $1 ORDER BY date DESC`, currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	entries := make([]RecoveryEntry, 0)
	for rows.Next() {
		var e RecoveryEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.Type, &e.Duration, &e.Notes); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		entries = append(entries, e)
	}
	c.JSON(http.StatusOK, entries)
}

func createRecoveryEntry(c *gin.Context) {
	var e RecoveryEntry
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if e.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "type is required", "field": "type"})
		return
	}
	if e.Duration <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "duration must be positive", "field": "duration"})
		return
	}
	if e.Date.IsZero() {
		e.Date = time.Now()
	}

	userID := currentUserID(c)
	err := db.QueryRow(`INSERT INTO recovery_entries (user_id, date, type, duration, notes) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		userID, e.Date, e.Type, e.Duration, e.Notes).Scan(&e.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	e.UserID = userID
	c.JSON(http.StatusCreated, e)
}

func deleteRecoveryEntry(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := db.Exec(`DELETE FROM recovery_entries WHERE id = $1 AND user_id = $2`, id, currentUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// === Sleep ===

func getSleepEntries(c *gin.Context) {
	rows, err := db.Query(`SELECT id, user_id, date, duration, quality, notes FROM sleep_entries WHERE user_id = $1 ORDER BY date DESC`, currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer rows.Close()

	entries := make([]SleepEntry, 0)
	for rows.Next() {
		var e SleepEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.Duration, &e.Quality, &e.Notes); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		entries = append(entries, e)
	}
	c.JSON(http.StatusOK, entries)
}

func createSleepEntry(c *gin.Context) {
	var e SleepEntry
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if e.Duration.Sign() <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "duration must be a positive number of hours", "field": "duration"})
		return
	}
	if e.Date.IsZero() {
		e.Date = time.Now()
	}

	userID := currentUserID(c)
	err := db.QueryRow(`INSERT INTO sleep_entries (user_id, date, duration, quality, notes) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		userID, e.Date, e.Duration, e.Quality, e.Notes).Scan(&e.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	e.UserID = userID
	c.JSON(http.StatusCreated, e)
}

func deleteSleepEntry(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := db.Exec(`DELETE FROM sleep_entries WHERE id = $1 AND user_id = $2`, id, currentUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
