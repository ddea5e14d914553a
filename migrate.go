package main

import (
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// setupDatabase creates all tables and seeds initial data
func setupDatabase() error {
	conn, err := openDatabase()
	if err != nil {
		return err
	}
	defer conn.Close()

	log.Println("Creating database schema...")
	if err := ensureSchema(conn); err != nil {
		return err
	}
	log.Println("Schema created successfully")

	log.Println("Seeding default categories...")
	if err := seedDefaultCategories(conn); err != nil {
		return err
	}
	log.Println("Categories seeded successfully")

	return nil
}

// verifyDatabaseConnection tests the database connection
func verifyDatabaseConnection() error {
	config, err := pgx.ParseConfig(databaseURL())
	if err != nil {
		return fmt.Errorf("failed to parse database URL: %w", err)
	}

	conn := stdlib.OpenDB(*config)
	defer conn.Close()

	if err := conn.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection verified")
	return nil
}
