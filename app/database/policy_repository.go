package database

import (
	"database/sql"
	"fmt"
)

// PolicyUpdateRepo handles database operations for policy updates
type PolicyUpdateRepo struct {
	db *DB
}

var _ PolicyUpdateRepository = (*PolicyUpdateRepo)(nil)

// NewPolicyUpdateRepository creates a new policy update repository
func NewPolicyUpdateRepository(db *DB) *PolicyUpdateRepo {
	return &PolicyUpdateRepo{db: db}
}

// HasSeen checks whether a policy update with the given source URL was already ingested
func (r *PolicyUpdateRepo) HasSeen(sourceURL string) (bool, error) {
	var id string
	err := r.db.QueryRow(`
		SELECT id FROM policy_updates WHERE source_url = $1 LIMIT 1
	`, sourceURL).Scan(&id)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check policy update: %w", err)
	}

	return true, nil
}

// InsertIfNew inserts a policy update unless its source URL was already seen.
// Duplicate inserts are resolved by the unique constraint and reported as
// inserted=false, not as an error, so concurrent runs stay idempotent.
func (r *PolicyUpdateRepo) InsertIfNew(update PolicyUpdate) (bool, error) {
	result, err := r.db.Exec(`
		INSERT INTO policy_updates (source, title, summary, category, source_url, published_at, effective_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (source_url) DO NOTHING
	`, update.Source, update.Title, update.Summary, update.Category,
		update.SourceURL, update.PublishedAt, update.EffectiveAt)

	if err != nil {
		return false, fmt.Errorf("failed to insert policy update: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rows > 0, nil
}

// GetRecent returns policy updates ordered by publication time, newest first
func (r *PolicyUpdateRepo) GetRecent(limit int) ([]PolicyUpdate, error) {
	rows, err := r.db.Query(`
		SELECT id, source, title, COALESCE(summary, ''), COALESCE(category, ''),
		       source_url, published_at, effective_at, is_read, created_at
		FROM policy_updates
		ORDER BY published_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent policy updates: %w", err)
	}
	defer rows.Close()

	var updates []PolicyUpdate
	for rows.Next() {
		var u PolicyUpdate
		err := rows.Scan(
			&u.ID, &u.Source, &u.Title, &u.Summary, &u.Category,
			&u.SourceURL, &u.PublishedAt, &u.EffectiveAt, &u.IsRead, &u.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan policy update row: %w", err)
		}
		updates = append(updates, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating policy update rows: %w", err)
	}

	return updates, nil
}

// CountUnread returns the number of unread policy updates
func (r *PolicyUpdateRepo) CountUnread() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM policy_updates WHERE is_read = false").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread policy updates: %w", err)
	}
	return count, nil
}

// MarkRead flags a policy update as read
func (r *PolicyUpdateRepo) MarkRead(id string) error {
	_, err := r.db.Exec(`
		UPDATE policy_updates SET is_read = true WHERE id = $1
	`, id)

	if err != nil {
		return fmt.Errorf("failed to mark policy update read: %w", err)
	}

	return nil
}
