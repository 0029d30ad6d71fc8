package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/summitworks/eventreg/config"
	"github.com/summitworks/eventreg/pkg/password"
)

// Seeds a demo account and an open event for local development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@example.com"
	plain := "password123"
	hash, err := password.Hash(plain)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, email, hash, "Demo User").Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", userID, email, plain)

	start := time.Now().AddDate(0, 1, 0)
	end := start.AddDate(0, 0, 2)
	var eventID string
	err = db.QueryRow(`
		INSERT INTO events (name, description, location, start_date, end_date, registration_open)
		VALUES ($1, $2, $3, $4, $5, true)
		ON CONFLICT (name) DO UPDATE SET registration_open = true
		RETURNING id
	`, "Summit Hackathon", "48 hours of building", "Riverside Convention Center", start, end).Scan(&eventID)
	if err != nil {
		log.Fatalf("failed to seed event: %v", err)
	}
	fmt.Printf("seeded event: id=%s (registration open)\n", eventID)
}
