package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

// SQLiteStorage implements [Storage] over the kv_entries table.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage creates a new SQLiteStorage with the given (migrated) database connection
func NewSQLiteStorage(db *sql.DB) *SQLiteStorage {
	return &SQLiteStorage{db: db}
}

// Get retrieves the value stored under key
func (r *SQLiteStorage) Get(key string) ([]byte, bool, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM kv_entries WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query entry: %w", err)
	}
	return []byte(value), true, nil
}

// Set upserts the value for key
func (r *SQLiteStorage) Set(key string, value []byte) error {
	query := `
		INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := r.db.Exec(query, key, string(value), time.Now()); err != nil {
		return fmt.Errorf("failed to upsert entry: %w", err)
	}
	return nil
}

// Remove deletes the entry for key
func (r *SQLiteStorage) Remove(key string) error {
	if _, err := r.db.Exec("DELETE FROM kv_entries WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}

// Clear deletes every entry
func (r *SQLiteStorage) Clear() error {
	if _, err := r.db.Exec("DELETE FROM kv_entries"); err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}
	return nil
}

// Keys lists every stored key in lexical order
func (r *SQLiteStorage) Keys() ([]string, error) {
	rows, err := r.db.Query("SELECT key FROM kv_entries ORDER BY key ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return keys, nil
}
