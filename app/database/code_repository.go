package database

import (
	"database/sql"
	"fmt"
	"time"
)

// CodeRepo handles database operations for procedure-code definitions
type CodeRepo struct {
	db *DB
}

var _ CodeRepository = (*CodeRepo)(nil)

// NewCodeRepository creates a new code definition repository
func NewCodeRepository(db *DB) *CodeRepo {
	return &CodeRepo{db: db}
}

// GetByCode retrieves a code definition by its code identifier
func (r *CodeRepo) GetByCode(code string) (*CodeDefinition, error) {
	var def CodeDefinition
	err := r.db.QueryRow(`
		SELECT id, code, description, COALESCE(category, ''), min_duration, max_duration,
		       is_active, last_verified_at, COALESCE(source_url, ''), created_at, updated_at
		FROM code_definitions
		WHERE code = $1
	`, code).Scan(
		&def.ID, &def.Code, &def.Description, &def.Category, &def.MinDuration, &def.MaxDuration,
		&def.IsActive, &def.LastVerifiedAt, &def.SourceURL, &def.CreatedAt, &def.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get code definition: %w", err)
	}

	return &def, nil
}

// Insert stores a newly sighted code definition
func (r *CodeRepo) Insert(def CodeDefinition) error {
	_, err := r.db.Exec(`
		INSERT INTO code_definitions (code, description, category, min_duration, max_duration, is_active, last_verified_at, source_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (code) DO NOTHING
	`, def.Code, def.Description, def.Category, def.MinDuration, def.MaxDuration,
		def.IsActive, def.LastVerifiedAt, def.SourceURL)

	if err != nil {
		return fmt.Errorf("failed to insert code definition: %w", err)
	}

	return nil
}

// Update mutates a code definition in place after a canonical change
func (r *CodeRepo) Update(def CodeDefinition) error {
	_, err := r.db.Exec(`
		UPDATE code_definitions
		SET description = $2, category = $3, min_duration = $4, max_duration = $5,
		    is_active = $6, last_verified_at = $7, updated_at = NOW()
		WHERE code = $1
	`, def.Code, def.Description, def.Category, def.MinDuration, def.MaxDuration,
		def.IsActive, def.LastVerifiedAt)

	if err != nil {
		return fmt.Errorf("failed to update code definition: %w", err)
	}

	return nil
}

// TouchVerified refreshes last_verified_at without any semantic change
func (r *CodeRepo) TouchVerified(code string, verifiedAt time.Time) error {
	_, err := r.db.Exec(`
		UPDATE code_definitions
		SET last_verified_at = $2
		WHERE code = $1
	`, code, verifiedAt)

	if err != nil {
		return fmt.Errorf("failed to touch code verification time: %w", err)
	}

	return nil
}

// GetAll returns all code definitions ordered by code
func (r *CodeRepo) GetAll() ([]CodeDefinition, error) {
	rows, err := r.db.Query(`
		SELECT id, code, description, COALESCE(category, ''), min_duration, max_duration,
		       is_active, last_verified_at, COALESCE(source_url, ''), created_at, updated_at
		FROM code_definitions
		ORDER BY code
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get code definitions: %w", err)
	}
	defer rows.Close()

	var defs []CodeDefinition
	for rows.Next() {
		var def CodeDefinition
		err := rows.Scan(
			&def.ID, &def.Code, &def.Description, &def.Category, &def.MinDuration, &def.MaxDuration,
			&def.IsActive, &def.LastVerifiedAt, &def.SourceURL, &def.CreatedAt, &def.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan code definition row: %w", err)
		}
		defs = append(defs, def)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating code definition rows: %w", err)
	}

	return defs, nil
}
