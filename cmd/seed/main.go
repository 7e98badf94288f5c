// seed creates the schema if needed and inserts a demo user with a few
// tasks into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/ErlanBelekov/task-api/internal/infrastructure/postgres"
	"golang.org/x/crypto/bcrypt"
)

const (
	seedEmail    = "seed@test.local"
	seedPassword = "seed-password-1"
)

var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
	`CREATE TABLE IF NOT EXISTS users (
		id            uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		email         text NOT NULL UNIQUE,
		password_hash bytea NOT NULL,
		created_at    timestamptz NOT NULL DEFAULT NOW(),
		updated_at    timestamptz NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id     uuid NOT NULL REFERENCES users (id),
		title       text NOT NULL,
		description text,
		due_date    timestamptz,
		completed   boolean NOT NULL DEFAULT false,
		created_at  timestamptz NOT NULL DEFAULT NOW(),
		updated_at  timestamptz NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS tasks_user_id_idx ON tasks (user_id, created_at DESC)`,
}

type taskSpec struct {
	title     string
	desc      string
	dueInDays int // 0 = no due date
	completed bool
}

var tasks = []taskSpec{
	{"Buy milk", "", 0, false},
	{"Write weekly report", "Include the Q3 numbers", 2, false},
	{"Renew passport", "Bring the old one and two photos", 30, false},
	{"Call the dentist", "", 1, true},
	{"Review pull requests", "", 0, true},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			log.Fatalf("schema: %v", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	// Upsert demo user
	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
		RETURNING id`,
		seedEmail, hash,
	).Scan(&userID)
	if err != nil {
		log.Fatalf("seed user: %v", err)
	}

	inserted := 0
	for _, ts := range tasks {
		var desc *string
		if ts.desc != "" {
			desc = &ts.desc
		}
		var due *time.Time
		if ts.dueInDays > 0 {
			d := time.Now().AddDate(0, 0, ts.dueInDays)
			due = &d
		}

		_, err := pool.Exec(ctx, `
			INSERT INTO tasks (user_id, title, description, due_date, completed)
			VALUES ($1, $2, $3, $4, $5)`,
			userID, ts.title, desc, due, ts.completed,
		)
		if err != nil {
			log.Fatalf("seed task %q: %v", ts.title, err)
		}
		inserted++
	}

	log.Printf("seeded user %s (%s) with %d tasks", seedEmail, userID, inserted)
	log.Printf("login with password %q to get a token", seedPassword)
}
