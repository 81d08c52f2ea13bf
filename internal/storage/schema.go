package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// InitSchema creates all necessary tables and indexes.
// Note: WAL mode is configured in db.go.
func InitSchema(db *sql.DB) error {
	if err := createAppointmentsTable(db); err != nil {
		return err
	}
	if err := createShoppingItemsTable(db); err != nil {
		return err
	}
	return createRemindersTable(db)
}

func createAppointmentsTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS appointments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		date TEXT NOT NULL,
		time TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT 'schedule',
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_appointments_user_date ON appointments(user_id, date);
	CREATE INDEX IF NOT EXISTS idx_appointments_created_at ON appointments(created_at);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create appointments table: %w", err)
	}

	return nil
}

func createShoppingItemsTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS shopping_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		item TEXT NOT NULL,
		purchased INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_shopping_user_purchased ON shopping_items(user_id, purchased);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create shopping_items table: %w", err)
	}

	return nil
}

func createRemindersTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS reminders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		chat_id INTEGER NOT NULL,
		message TEXT NOT NULL,
		due_at INTEGER NOT NULL,
		sent INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_reminders_due ON reminders(sent, due_at);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create reminders table: %w", err)
	}

	return nil
}
