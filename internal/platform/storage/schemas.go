package storage

import (
	"database/sql"
	"fmt"
	"log"
)

type MigrationsSchema struct{}

func (m *MigrationsSchema) UpMigration(db *sql.DB) error {
	query := `
		CREATE SCHEMA IF NOT EXISTS migrations;
		CREATE TABLE IF NOT EXISTS migrations.migrations (
		name VARCHAR(255) PRIMARY KEY,
		time TIMESTAMP NOT NULL
		);
		`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create migrations schema: %w", err)
	}
	return nil
}

type PlatformSchema struct{}

func (m *PlatformSchema) UpMigration(db *sql.DB) error {
	if _, err := db.Exec(`CREATE SCHEMA IF NOT EXISTS platform`); err != nil {
		return fmt.Errorf("failed to create platform schema: %w", err)
	}
	return nil
}

type PlatformTokens struct{}

func (m *PlatformTokens) UpMigration(db *sql.DB) error {
	var migrationExists bool
	err := db.QueryRow("SELECT EXISTS (SELECT 1 FROM migrations.migrations WHERE name = 'platform.tokens')").Scan(&migrationExists)
	if err != nil {
		return fmt.Errorf("failed to check migration status: %w", err)
	}
	if migrationExists {
		log.Println("Migration 'platform.tokens' already completed. Skipping.")
		return nil
	}
	query := `
		CREATE TABLE IF NOT EXISTS platform.tokens (
		panel VARCHAR(32) PRIMARY KEY,
		token TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT current_timestamp
		);
		`
	if _, err = db.Exec(query); err != nil {
		return fmt.Errorf("failed to create platform.tokens table: %w", err)
	}
	_, err = db.Exec("INSERT INTO migrations.migrations (name, time) VALUES ('platform.tokens', current_timestamp)")
	if err != nil {
		return fmt.Errorf("failed to mark platform.tokens migration as complete: %w", err)
	}

	log.Println("Migration 'platform.tokens' completed successfully.")
	return nil
}
