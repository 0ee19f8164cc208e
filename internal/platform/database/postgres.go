package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"coursework_tracker/internal/logger"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
)

var DB *sql.DB

func Connect(ctx context.Context, connStr string) error {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return fmt.Errorf("connecting to database: %w", err)
	}

	DB = db
	logger.NewNamedLogger("database").Info("Successfully connected to PostgreSQL database")
	return nil
}

func Close() {
	if DB != nil {
		DB.Close()
		logger.NewNamedLogger("database").Info("Database connection closed")
	}
}
