package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bsan5566/food-waste/pkg/types"

	_ "github.com/mattn/go-sqlite3"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS providers (
		provider_id INTEGER PRIMARY KEY,
		name TEXT,
		type TEXT,
		address TEXT,
		city TEXT,
		contact TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS receivers (
		receiver_id INTEGER PRIMARY KEY,
		name TEXT,
		type TEXT,
		city TEXT,
		contact TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS food_listings (
		food_id INTEGER PRIMARY KEY,
		food_name TEXT,
		quantity INTEGER,
		expiry_date TEXT,
		provider_id INTEGER,
		provider_type TEXT,
		location TEXT,
		food_type TEXT,
		meal_type TEXT,
		FOREIGN KEY(provider_id) REFERENCES providers(provider_id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS claims (
		claim_id INTEGER PRIMARY KEY,
		food_id INTEGER,
		receiver_id INTEGER,
		status TEXT,
		timestamp TEXT,
		FOREIGN KEY(food_id) REFERENCES food_listings(food_id) ON DELETE CASCADE,
		FOREIGN KEY(receiver_id) REFERENCES receivers(receiver_id) ON DELETE SET NULL
	)`,
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_food_provider ON food_listings(provider_id)`,
	`CREATE INDEX IF NOT EXISTS idx_claims_food ON claims(food_id)`,
	`CREATE INDEX IF NOT EXISTS idx_claims_receiver ON claims(receiver_id)`,
}

// Connect opens the SQLite database at config.DatabasePath and ensures the
// schema exists. The handle is capped at one open connection so all access
// serializes through it.
func Connect(ctx context.Context, config *types.Config) (*sql.DB, error) {
	return Open(ctx, config.DatabasePath)
}

func Open(ctx context.Context, path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetConnMaxIdleTime(15 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	for _, stmt := range schema {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			conn.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}

	return conn, nil
}

// CreateIndexes builds the foreign-key indexes. The load command calls this
// after a bulk refresh.
func CreateIndexes(ctx context.Context, conn *sql.DB) error {
	for _, stmt := range indexes {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}
