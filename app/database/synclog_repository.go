package database

import (
	"database/sql"
	"fmt"
	"time"
)

// SyncLogRepo handles database operations for sync log entries
type SyncLogRepo struct {
	db *DB
}

var _ SyncLogRepository = (*SyncLogRepo)(nil)

// NewSyncLogRepository creates a new sync log repository
func NewSyncLogRepository(db *DB) *SyncLogRepo {
	return &SyncLogRepo{db: db}
}

// Insert appends one sync log entry. The table is append-only.
func (r *SyncLogRepo) Insert(entry SyncLogEntry) error {
	_, err := r.db.Exec(`
		INSERT INTO sync_logs (source, sync_type, status, records_checked, records_updated, changes_detected, error_message, synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8)
	`, entry.Source, entry.SyncType, entry.Status, entry.RecordsChecked,
		entry.RecordsUpdated, entry.ChangesDetected, entry.ErrorMessage, entry.SyncedAt)

	if err != nil {
		return fmt.Errorf("failed to insert sync log entry: %w", err)
	}

	return nil
}

// GetRecent returns sync log entries ordered newest-first
func (r *SyncLogRepo) GetRecent(limit int) ([]SyncLogEntry, error) {
	rows, err := r.db.Query(`
		SELECT id, source, sync_type, status, records_checked, records_updated,
		       changes_detected, COALESCE(error_message, ''), synced_at
		FROM sync_logs
		ORDER BY synced_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get sync log entries: %w", err)
	}
	defer rows.Close()

	var entries []SyncLogEntry
	for rows.Next() {
		var e SyncLogEntry
		err := rows.Scan(
			&e.ID, &e.Source, &e.SyncType, &e.Status, &e.RecordsChecked,
			&e.RecordsUpdated, &e.ChangesDetected, &e.ErrorMessage, &e.SyncedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sync log row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sync log rows: %w", err)
	}

	return entries, nil
}

// LastSyncedAt returns the timestamp of the most recent sync log entry, or nil
func (r *SyncLogRepo) LastSyncedAt() (*time.Time, error) {
	var syncedAt time.Time
	err := r.db.QueryRow(`
		SELECT synced_at FROM sync_logs ORDER BY synced_at DESC LIMIT 1
	`).Scan(&syncedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last sync time: %w", err)
	}

	return &syncedAt, nil
}
