package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// ConnectToSQLite initializes and returns a SQLite connection
func ConnectToSQLite(dbPath string) (*sql.DB, error) {
	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for SQLite: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	log.Println("Connected to SQLite database")
	return db, nil
}

// InitializeSchema creates all the necessary tables if they don't exist
func InitializeSchema(db *sql.DB) error {
	// Create users table
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	// Create todos table
	_, err = db.Exec(`
	CREATE TABLE IF NOT EXISTS todos (
		id TEXT PRIMARY KEY,
		description TEXT NOT NULL,
		status TEXT NOT NULL,
		owner TEXT NOT NULL,
		FOREIGN KEY (owner) REFERENCES users(id)
	)`)
	if err != nil {
		return fmt.Errorf("failed to create todos table: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_todos_owner ON todos(owner)`)
	if err != nil {
		return fmt.Errorf("failed to create todo owner index: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_todos_status ON todos(status)`)
	if err != nil {
		return fmt.Errorf("failed to create todo status index: %w", err)
	}

	log.Println("Database schema initialized successfully")
	return nil
}
