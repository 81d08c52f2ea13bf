package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	domerrors "github.com/dmarques-dev/assistente-go/internal/errors"
)

// slowQueryThreshold triggers a warning log for long operations.
const slowQueryThreshold = 100 * time.Millisecond

func (db *DB) warnIfSlow(ctx context.Context, op string, start time.Time) {
	if duration := time.Since(start); duration > slowQueryThreshold {
		slog.WarnContext(ctx, "slow database operation",
			"operation", op,
			"duration_ms", duration.Milliseconds())
	}
}

// SaveAppointment inserts one appointment and returns its id.
func (db *DB) SaveAppointment(ctx context.Context, a *Appointment) (int64, error) {
	query := `
		INSERT INTO appointments (user_id, title, date, time, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	start := time.Now()
	res, err := db.conn.ExecContext(ctx, query, a.UserID, a.Title, a.Date, a.Time, a.Category, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to save appointment: %w", err)
	}
	db.warnIfSlow(ctx, "SaveAppointment", start)

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read appointment id: %w", err)
	}
	a.ID = id
	return id, nil
}

// AppointmentsOn returns a user's appointments for one date (DD/MM/YYYY),
// ordered by time.
func (db *DB) AppointmentsOn(ctx context.Context, userID int64, date string) ([]*Appointment, error) {
	query := `
		SELECT id, user_id, title, date, time, category, created_at
		FROM appointments
		WHERE user_id = ? AND date = ?
		ORDER BY time
	`
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer rows.Close()
	db.warnIfSlow(ctx, "AppointmentsOn", start)

	return scanAppointments(rows)
}

// AllAppointments returns every appointment for a user, newest first.
func (db *DB) AllAppointments(ctx context.Context, userID int64) ([]*Appointment, error) {
	query := `
		SELECT id, user_id, title, date, time, category, created_at
		FROM appointments
		WHERE user_id = ?
		ORDER BY created_at DESC
	`
	rows, err := db.conn.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

func scanAppointments(rows *sql.Rows) ([]*Appointment, error) {
	var out []*Appointment
	for rows.Next() {
		a := &Appointment{}
		if err := rows.Scan(&a.ID, &a.UserID, &a.Title, &a.Date, &a.Time, &a.Category, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate appointments: %w", err)
	}
	return out, nil
}

// AddShoppingItem puts item on the user's list. Items already on the
// list and not yet purchased are not duplicated; the return value
// reports whether a row was inserted.
func (db *DB) AddShoppingItem(ctx context.Context, userID int64, item string) (bool, error) {
	query := `
		INSERT INTO shopping_items (user_id, item, purchased, created_at)
		SELECT ?, ?, 0, ?
		WHERE NOT EXISTS (
			SELECT 1 FROM shopping_items
			WHERE user_id = ? AND item = ? AND purchased = 0
		)
	`
	start := time.Now()
	res, err := db.conn.ExecContext(ctx, query, userID, item, time.Now().Unix(), userID, item)
	if err != nil {
		return false, fmt.Errorf("failed to add shopping item: %w", err)
	}
	db.warnIfSlow(ctx, "AddShoppingItem", start)

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

// UnpurchasedItems returns the open items on a user's list in insertion
// order.
func (db *DB) UnpurchasedItems(ctx context.Context, userID int64) ([]*ShoppingItem, error) {
	query := `
		SELECT id, user_id, item, purchased, created_at
		FROM shopping_items
		WHERE user_id = ? AND purchased = 0
		ORDER BY id
	`
	rows, err := db.conn.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shopping items: %w", err)
	}
	defer rows.Close()

	var out []*ShoppingItem
	for rows.Next() {
		it := &ShoppingItem{}
		if err := rows.Scan(&it.ID, &it.UserID, &it.Item, &it.Purchased, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan shopping item: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shopping items: %w", err)
	}
	return out, nil
}

// MarkPurchased flags a user's open list entry as bought. Returns
// ErrNotFound when the item is not on the open list.
func (db *DB) MarkPurchased(ctx context.Context, userID int64, item string) error {
	query := `
		UPDATE shopping_items SET purchased = 1
		WHERE user_id = ? AND item = ? AND purchased = 0
	`
	res, err := db.conn.ExecContext(ctx, query, userID, item)
	if err != nil {
		return fmt.Errorf("failed to mark item purchased: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return domerrors.ErrNotFound
	}
	return nil
}

// SaveReminder queues a reminder and returns its id.
func (db *DB) SaveReminder(ctx context.Context, r *Reminder) (int64, error) {
	query := `
		INSERT INTO reminders (user_id, chat_id, message, due_at, sent, created_at)
		VALUES (?, ?, ?, ?, 0, ?)
	`
	res, err := db.conn.ExecContext(ctx, query, r.UserID, r.ChatID, r.Message, r.DueAt, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to save reminder: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read reminder id: %w", err)
	}
	r.ID = id
	return id, nil
}

// DueReminders returns unsent reminders whose due time has passed,
// oldest first.
func (db *DB) DueReminders(ctx context.Context, now time.Time) ([]*Reminder, error) {
	query := `
		SELECT id, user_id, chat_id, message, due_at, sent, created_at
		FROM reminders
		WHERE sent = 0 AND due_at <= ?
		ORDER BY due_at
	`
	rows, err := db.conn.QueryContext(ctx, query, now.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to query due reminders: %w", err)
	}
	defer rows.Close()

	var out []*Reminder
	for rows.Next() {
		r := &Reminder{}
		if err := rows.Scan(&r.ID, &r.UserID, &r.ChatID, &r.Message, &r.DueAt, &r.Sent, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reminders: %w", err)
	}
	return out, nil
}

// MarkReminderSent flags one reminder as delivered.
func (db *DB) MarkReminderSent(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, `UPDATE reminders SET sent = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark reminder sent: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return domerrors.ErrNotFound
	}
	return nil
}

// PurgeOldRecords removes appointments, purchased items and sent
// reminders created before cutoff. Returns the number of rows deleted.
func (db *DB) PurgeOldRecords(ctx context.Context, cutoff time.Time) (int64, error) {
	ts := cutoff.Unix()
	var total int64

	queries := []string{
		`DELETE FROM appointments WHERE created_at < ?`,
		`DELETE FROM shopping_items WHERE purchased = 1 AND created_at < ?`,
		`DELETE FROM reminders WHERE sent = 1 AND created_at < ?`,
	}
	for _, q := range queries {
		res, err := db.conn.ExecContext(ctx, q, ts)
		if err != nil {
			return total, fmt.Errorf("failed to purge old records: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return total, fmt.Errorf("failed to read rows affected: %w", err)
		}
		total += n
	}
	return total, nil
}

// TableCounts returns the current row count per table, used by the
// periodic gauge refresh.
func (db *DB) TableCounts(ctx context.Context) (map[string]int64, error) {
	out := make(map[string]int64, 3)
	for _, table := range []string{"appointments", "shopping_items", "reminders"} {
		var count int64
		// Table names come from the fixed list above, never from input.
		query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)
		if err := db.conn.QueryRowContext(ctx, query).Scan(&count); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		out[table] = count
	}
	return out, nil
}
