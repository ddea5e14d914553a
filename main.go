package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Check for migrate command
	migrateCmd := flag.Bool("migrate", false, "Run database migration and seed data")
	seedDemoCmd := flag.Bool("seed-demo", false, "Seed demo accounts, transactions and quotes (idempotent)")
	flag.Parse()

	// Load .env if present; environment variables win either way
	_ = godotenv.Load()

	if *migrateCmd {
		if err := setupDatabase(); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Migration completed successfully")
		os.Exit(0)
	}
	if *seedDemoCmd {
		if err := initDB(); err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
		if err := seedDemoData(db); err != nil {
			log.Fatalf("Seeding demo data failed: %v", err)
		}
		log.Println("Demo data seeded")
		os.Exit(0)
	}

	// Initialize database
	if err := initDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize Redis
	if err := initRedis(); err != nil {
		log.Printf("Warning: Failed to initialize Redis: %v", err)
		log.Println("Continuing without Redis cache...")
		redisClient = nil
	}

	// Setup Gin router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Routes
	r.GET("/health", healthCheck)

	api := r.Group("/api")

	// Fitness
	api.GET("/weight-entries", getWeightEntries)
	api.POST("/weight-entries", createWeightEntry)
	api.DELETE("/weight-entries/:id", deleteWeightEntry)
	api.GET("/diet-entries", getDietEntries)
	api.POST("/diet-entries", createDietEntry)
	api.DELETE("/diet-entries/:id", deleteDietEntry)
	api.GET("/workouts", getWorkouts)
	api.POST("/workouts", createWorkout)
	api.DELETE("/workouts/:id", deleteWorkout)
	api.GET("/recovery-entries", getRecoveryEntries)
	api.POST("/recovery-entries", createRecoveryEntry)
	api.DELETE("/recovery-entries/:id", deleteRecoveryEntry)
	api.GET("/sleep-entries", getSleepEntries)
	api.POST("/sleep-entries", createSleepEntry)
	api.DELETE("/sleep-entries/:id", deleteSleepEntry)

	// Journal and photos
	api.GET("/journal-entries", getJournalEntries)
	api.POST("/journal-entries", createJournalEntry)
	api.PUT("/journal-entries/:id", updateJournalEntry)
	api.DELETE("/journal-entries/:id", deleteJournalEntry)
	api.GET("/progress-photos", getProgressPhotos)
	api.POST("/progress-photos", createProgressPhoto)
	api.DELETE("/progress-photos/:id", deleteProgressPhoto)

	// Quotes
	api.GET("/motivational-quotes", getMotivationalQuotes)
	api.POST("/motivational-quotes", createMotivationalQuote)
	api.PUT("/motivational-quotes/:id", updateMotivationalQuote)
	api.DELETE("/motivational-quotes/:id", deleteMotivationalQuote)

	// Budget
	api.GET("/budget-categories", getBudgetCategories)
	api.POST("/budget-categories", createBudgetCategory)
	api.PUT("/budget-categories/:id", updateBudgetCategory)
	api.DELETE("/budget-categories/:id", deleteBudgetCategory)
	api.GET("/budget-transactions", getBudgetTransactions)
	api.POST("/budget-transactions", addBudgetTransaction)
	api.DELETE("/budget-transactions/:id", deleteBudgetTransaction)
	api.GET("/budget-summary", getBudgetSummary)
	api.GET("/budget-accounts", getBudgetAccounts)
	api.POST("/budget-accounts", createBudgetAccount)
	api.PUT("/budget-accounts/:id", updateBudgetAccount)
	api.DELETE("/budget-accounts/:id", deleteBudgetAccount)
	api.POST("/budget-accounts/transfer", transferBetweenAccounts)
	api.GET("/budget-scenarios", getBudgetScenarios)
	api.POST("/budget-scenarios", createBudgetScenario)
	api.PUT("/budget-scenarios/:id", updateBudgetScenario)
	api.DELETE("/budget-scenarios/:id", deleteBudgetScenario)
	api.GET("/budget-plan-entries", getBudgetPlanEntries)
	api.POST("/budget-plan-entries", createBudgetPlanEntry)
	api.DELETE("/budget-plan-entries/:id", deleteBudgetPlanEntry)

	// Calendar
	api.GET("/calendar-events", getCalendarEvents)
	api.POST("/calendar-events", createCalendarEvent)
	api.PUT("/calendar-events/:id", updateCalendarEvent)
	api.DELETE("/calendar-events/:id", deleteCalendarEvent)
	api.POST("/calendar/import", importCalendar)
	api.GET("/calendar/export", exportCalendar)

	// Todos
	api.GET("/todos", getTodos)
	api.POST("/todos", createTodo)
	api.PUT("/todos/:id", updateTodo)
	api.DELETE("/todos/:id", deleteTodo)

	// Martial arts
	api.GET("/martial-arts-records", getMartialArtsRecords)
	api.POST("/martial-arts-records", createMartialArtsRecord)
	api.PUT("/martial-arts-records/:id", updateMartialArtsRecord)
	api.DELETE("/martial-arts-records/:id", deleteMartialArtsRecord)
	api.GET("/martial-arts-belts", getMartialArtsBelts)
	api.POST("/martial-arts-belts", createMartialArtsBelt)
	api.PUT("/martial-arts-belts/:id", updateMartialArtsBelt)
	api.DELETE("/martial-arts-belts/:id", deleteMartialArtsBelt)

	// Jobs and paycheck tracking
	api.GET("/jobs", getJobs)
	api.POST("/jobs", createJob)
	api.PUT("/jobs/:id", updateJob)
	api.DELETE("/jobs/:id", deleteJob)
	api.GET("/paycheck-history", getPaycheckHistory)
	api.POST("/paycheck-history", createPaycheckHistory)
	api.DELETE("/paycheck-history/:id", deletePaycheckHistory)
	api.GET("/paycheck-daily-hours/:weekStart", getPaycheckDailyHours)
	api.POST("/paycheck-daily-hours", savePaycheckDailyHours)
	api.POST("/paycheck-daily-hours/save-day", saveDayHours)
	api.DELETE("/paycheck-daily-hours/:weekStart", clearPaycheckDailyHours)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
