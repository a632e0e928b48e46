package main

import (
	"log"
	"os"

	"mdt-records-be/internal/model"
	"mdt-records-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// 3. Pre-Migration: Extensions
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS pg_trgm;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	log.Println("Step 2: Running AutoMigrate for 4 Tables...")

	models := []interface{}{
		&model.Citizen{},
		&model.Officer{},
		&model.Arrest{},
		&model.WantedEntry{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: trigram indexes behind the ILIKE lookups
	log.Println("Step 3: Creating Lookup Indexes...")

	postMigrationSQL := []string{
		`CREATE INDEX IF NOT EXISTS idx_citizens_full_name_trgm ON citizens USING gin ((first_name || ' ' || last_name) gin_trgm_ops);`,
		`CREATE INDEX IF NOT EXISTS idx_citizens_phone_trgm ON citizens USING gin (phone gin_trgm_ops);`,
		`CREATE INDEX IF NOT EXISTS idx_officers_name_trgm ON officers USING gin (name gin_trgm_ops);`,
		`CREATE INDEX IF NOT EXISTS idx_officers_callsign_trgm ON officers USING gin (callsign gin_trgm_ops);`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
