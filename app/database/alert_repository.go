package database

import (
	"fmt"

	"github.com/lib/pq"
)

// AlertRepo handles database operations for compliance alerts
type AlertRepo struct {
	db *DB
}

var _ AlertRepository = (*AlertRepo)(nil)

// NewAlertRepository creates a new alert repository
func NewAlertRepository(db *DB) *AlertRepo {
	return &AlertRepo{db: db}
}

// Insert persists an alert and returns its generated ID
func (r *AlertRepo) Insert(alert Alert) (string, error) {
	var id string
	err := r.db.QueryRow(`
		INSERT INTO compliance_alerts (source, severity, category, title, description, jurisdictions, source_url, effective_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8)
		RETURNING id
	`, alert.Source, alert.Severity, alert.Category, alert.Title, alert.Description,
		pq.Array(alert.Jurisdictions), alert.SourceURL, alert.EffectiveAt).Scan(&id)

	if err != nil {
		return "", fmt.Errorf("failed to insert alert: %w", err)
	}

	return id, nil
}

// GetActive returns non-dismissed alerts ordered newest-first
func (r *AlertRepo) GetActive(limit int) ([]Alert, error) {
	rows, err := r.db.Query(`
		SELECT id, source, severity, COALESCE(category, ''), title, COALESCE(description, ''),
		       COALESCE(jurisdictions, '{}'), COALESCE(source_url, ''), effective_at,
		       dismissed_at, COALESCE(dismissed_by, ''), created_at
		FROM compliance_alerts
		WHERE dismissed_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get active alerts: %w", err)
	}
	defer rows.Close()

	var alerts []Alert
	for rows.Next() {
		var a Alert
		err := rows.Scan(
			&a.ID, &a.Source, &a.Severity, &a.Category, &a.Title, &a.Description,
			pq.Array(&a.Jurisdictions), &a.SourceURL, &a.EffectiveAt,
			&a.DismissedAt, &a.DismissedBy, &a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert row: %w", err)
		}
		alerts = append(alerts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alert rows: %w", err)
	}

	return alerts, nil
}

// CountActiveBySeverity returns the number of non-dismissed alerts at the given severity
func (r *AlertRepo) CountActiveBySeverity(severity Severity) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM compliance_alerts
		WHERE severity = $1 AND dismissed_at IS NULL
	`, severity).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("failed to count alerts: %w", err)
	}

	return count, nil
}

// Dismiss marks an alert dismissed. Dismissing an already-dismissed alert is
// a no-op so the admin action stays idempotent.
func (r *AlertRepo) Dismiss(id, dismissedBy string) error {
	_, err := r.db.Exec(`
		UPDATE compliance_alerts
		SET dismissed_at = NOW(), dismissed_by = $2
		WHERE id = $1 AND dismissed_at IS NULL
	`, id, dismissedBy)

	if err != nil {
		return fmt.Errorf("failed to dismiss alert: %w", err)
	}

	return nil
}
