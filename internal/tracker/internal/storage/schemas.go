package storage

import (
	"database/sql"
	"fmt"
	"log"
)

type TrackerSchema struct{}

func (m *TrackerSchema) UpMigration(db *sql.DB) error {
	if _, err := db.Exec(`CREATE SCHEMA IF NOT EXISTS tracker`); err != nil {
		return fmt.Errorf("failed to create tracker schema: %w", err)
	}
	return nil
}

type TrackerMetadata struct{}

func (m *TrackerMetadata) UpMigration(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS tracker.metadata (
		key_name VARCHAR(255) PRIMARY KEY,
		last_update TIMESTAMP NOT NULL
		);
		`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create tracker.metadata table: %w", err)
	}
	return nil
}

type TrackerProducts struct{}

func (m *TrackerProducts) UpMigration(db *sql.DB) error {
	var migrationExists bool
	err := db.QueryRow("SELECT EXISTS (SELECT 1 FROM migrations.migrations WHERE name = 'tracker.products')").Scan(&migrationExists)
	if err != nil {
		return fmt.Errorf("failed to check migration status: %w", err)
	}
	if migrationExists {
		log.Println("Migration 'tracker.products' already completed. Skipping.")
		return nil
	}
	query := `
		CREATE TABLE IF NOT EXISTS tracker.products (
		barcode VARCHAR(64) PRIMARY KEY,
		name TEXT NOT NULL,
		brand VARCHAR(255),
		category VARCHAR(255),
		platform_product_id VARCHAR(64),
		created_at TIMESTAMP NOT NULL DEFAULT current_timestamp,
		updated_at TIMESTAMP NOT NULL DEFAULT current_timestamp
		);
		`
	if _, err = db.Exec(query); err != nil {
		return fmt.Errorf("failed to create tracker.products table: %w", err)
	}
	_, err = db.Exec("INSERT INTO migrations.migrations (name, time) VALUES ('tracker.products', current_timestamp)")
	if err != nil {
		return fmt.Errorf("failed to mark tracker.products migration as complete: %w", err)
	}

	log.Println("Migration 'tracker.products' completed successfully.")
	return nil
}

type TrackerReports struct{}

func (m *TrackerReports) UpMigration(db *sql.DB) error {
	var migrationExists bool
	err := db.QueryRow("SELECT EXISTS (SELECT 1 FROM migrations.migrations WHERE name = 'tracker.reports')").Scan(&migrationExists)
	if err != nil {
		return fmt.Errorf("failed to check migration status: %w", err)
	}
	if migrationExists {
		log.Println("Migration 'tracker.reports' already completed. Skipping.")
		return nil
	}
	query := `
		CREATE TABLE IF NOT EXISTS tracker.reports (
		id BIGSERIAL PRIMARY KEY,
		kind VARCHAR(16) NOT NULL,
		barcode VARCHAR(64) NOT NULL,
		product_name TEXT,
		quantity INT NOT NULL,
		comment TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT current_timestamp
		);
		CREATE INDEX IF NOT EXISTS tracker_reports_barcode_idx ON tracker.reports(barcode);
		`
	if _, err = db.Exec(query); err != nil {
		return fmt.Errorf("failed to create tracker.reports table: %w", err)
	}
	_, err = db.Exec("INSERT INTO migrations.migrations (name, time) VALUES ('tracker.reports', current_timestamp)")
	if err != nil {
		return fmt.Errorf("failed to mark tracker.reports migration as complete: %w", err)
	}

	log.Println("Migration 'tracker.reports' completed successfully.")
	return nil
}
