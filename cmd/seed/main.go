package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/ourwallet/ourwallet/config"
	"github.com/ourwallet/ourwallet/internal/domain/entity"
	"github.com/ourwallet/ourwallet/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	aliceID := seedUser(db, "alice@example.com", "Alice", hash)
	bobID := seedUser(db, "bob@example.com", "Bob", hash)
	fmt.Printf("seeded users: alice=%s bob=%s password=%s\n", aliceID, bobID, password)

	low, high := entity.NormalizePair(aliceID, bobID)
	if _, err := db.Exec(`
		INSERT INTO partner_links (user_low_id, user_high_id, status, initiated_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_low_id, user_high_id) DO UPDATE SET status = EXCLUDED.status
	`, low, high, entity.PartnerAccepted, aliceID); err != nil {
		log.Fatalf("failed to seed partner link: %v", err)
	}
	fmt.Println("seeded accepted partner link")

	now := time.Now()
	seedRecord(db, aliceID, 3200, entity.TypeIncome, "Salary", "Monthly salary", "Joint", now.AddDate(0, 0, -20))
	seedRecord(db, aliceID, 54.30, entity.TypeExpense, "Food", "Groceries", "Joint", now.AddDate(0, 0, -5))
	seedRecord(db, aliceID, 18.90, entity.TypeExpense, "Transport", "Fuel", "Joint", now.AddDate(0, 0, -2))
	seedRecord(db, bobID, 2800, entity.TypeIncome, "Salary", "Monthly salary", "Joint", now.AddDate(0, 0, -19))
	seedRecord(db, bobID, 120, entity.TypeExpense, "Utilities", "Electricity bill", "Joint", now.AddDate(0, 0, -4))
	fmt.Println("seeded demo records")
}

func seedUser(db *sql.DB, email, name, hash string) string {
	var id string
	err := db.QueryRow(`
		INSERT INTO users (email, password, name, is_verified)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (lower(email)) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, email, hash, name).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user %s: %v", email, err)
	}
	return id
}

func seedRecord(db *sql.DB, userID string, amount float64, typ entity.RecordType, category, description, spender string, date time.Time) {
	if _, err := db.Exec(`
		INSERT INTO records (user_id, amount, type, category, description, spender, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, userID, amount, typ, category, description, spender, date); err != nil {
		log.Fatalf("failed to seed record: %v", err)
	}
}
