package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

var DB *sql.DB

// InitDatabase initializes the database connection
func InitDatabase(databaseURL string) error {
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	var err error
	DB, err = sql.Open("postgres", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	// Test the connection
	if err := DB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %v", err)
	}

	log.Info().Msg("Successfully connected to database")
	return nil
}

// CreateTables creates the necessary tables if they don't exist
func CreateTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS products (
			product_url TEXT PRIMARY KEY,
			product_name TEXT NOT NULL,
			current_price DECIMAL(10,2),
			currency VARCHAR(3) DEFAULT 'USD',
			last_checked TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS subscriptions (
			id VARCHAR(36) PRIMARY KEY,
			email TEXT NOT NULL,
			product_url TEXT NOT NULL REFERENCES products(product_url) ON DELETE CASCADE,
			active BOOLEAN DEFAULT TRUE,
			unsubscribe_token VARCHAR(36) NOT NULL UNIQUE,
			unsubscribe_url TEXT NOT NULL,
			subscribed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			unsubscribed_at TIMESTAMP,
			reactivated_at TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_subscriptions_product_url ON subscriptions (product_url)`,
		`CREATE INDEX IF NOT EXISTS idx_subscriptions_token ON subscriptions (unsubscribe_token)`,
		`CREATE INDEX IF NOT EXISTS idx_subscriptions_active ON subscriptions (product_url, active) WHERE active = TRUE`,
	}

	for _, query := range queries {
		_, err := DB.Exec(query)
		if err != nil {
			return fmt.Errorf("failed to create table: %v", err)
		}
	}

	return nil
}

// CloseDatabase closes the database connection
func CloseDatabase() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
