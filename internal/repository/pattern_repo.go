package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/augustawind/conway-web/internal/model"
)

// SamplePatterns are the seed grids shipped with the server, keyed by name.
var SamplePatterns = map[string]string{
	"glider":  ".x.\n..x\nxxx",
	"blinker": "xxx",
	"toad":    ".xxx\nxxx.",
	"beacon":  "xx..\nxx..\n..xx\n..xx",
}

// PatternRepository provides data access for the pattern library.
type PatternRepository struct {
	db *sql.DB
}

// NewPatternRepository creates a new PatternRepository.
func NewPatternRepository(db *sql.DB) *PatternRepository {
	return &PatternRepository{db: db}
}

// Create inserts a new pattern into the database.
func (r *PatternRepository) Create(ctx context.Context, pattern *model.Pattern) error {
	query := `
		INSERT INTO patterns (name, body, source, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		pattern.Name,
		pattern.Body,
		pattern.Source,
		pattern.CreatedAt,
		pattern.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return model.ErrPatternExists
		}
		return fmt.Errorf("failed to create pattern: %w", err)
	}

	return nil
}

// GetByName retrieves a pattern by its name.
func (r *PatternRepository) GetByName(ctx context.Context, name string) (*model.Pattern, error) {
	query := `
		SELECT name, body, source, created_at, updated_at
		FROM patterns
		WHERE name = ?
	`

	pattern := &model.Pattern{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&pattern.Name,
		&pattern.Body,
		&pattern.Source,
		&pattern.CreatedAt,
		&pattern.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, model.ErrPatternNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pattern: %w", err)
	}

	return pattern, nil
}

// List retrieves all patterns, samples first, then by name.
func (r *PatternRepository) List(ctx context.Context) ([]*model.Pattern, error) {
	query := `
		SELECT name, body, source, created_at, updated_at
		FROM patterns
		ORDER BY source = 'sample' DESC, name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list patterns: %w", err)
	}
	defer rows.Close()

	var patterns []*model.Pattern
	for rows.Next() {
		pattern := &model.Pattern{}
		err := rows.Scan(
			&pattern.Name,
			&pattern.Body,
			&pattern.Source,
			&pattern.CreatedAt,
			&pattern.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pattern: %w", err)
		}
		patterns = append(patterns, pattern)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating patterns: %w", err)
	}

	return patterns, nil
}

// Delete removes a pattern from the database.
func (r *PatternRepository) Delete(ctx context.Context, name string) error {
	query := `DELETE FROM patterns WHERE name = ?`

	result, err := r.db.ExecContext(ctx, query, name)
	if err != nil {
		return fmt.Errorf("failed to delete pattern: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return model.ErrPatternNotFound
	}

	return nil
}

// Exists checks if a pattern exists.
func (r *PatternRepository) Exists(ctx context.Context, name string) (bool, error) {
	query := `SELECT 1 FROM patterns WHERE name = ? LIMIT 1`

	var exists int
	err := r.db.QueryRowContext(ctx, query, name).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check pattern existence: %w", err)
	}

	return true, nil
}

// SeedSamples inserts the sample patterns, leaving existing rows untouched so
// user edits survive restarts.
func (r *PatternRepository) SeedSamples(ctx context.Context) error {
	query := `
		INSERT OR IGNORE INTO patterns (name, body, source, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	now := time.Now()
	for name, body := range SamplePatterns {
		_, err := r.db.ExecContext(ctx, query, name, body, model.PatternSourceSample, now, now)
		if err != nil {
			return fmt.Errorf("failed to seed pattern %q: %w", name, err)
		}
	}

	return nil
}
