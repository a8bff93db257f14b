package postgresql

import (
	"context"
	"fmt"

	"github.com/paie-hub/payroll-backend-go/internal/pkg/database"
)

// nextSequence bumps the named counter and returns the new value. The upsert
// takes a row lock, so concurrent callers receive distinct values.
func nextSequence(ctx context.Context, db *database.DB, name string) (int64, error) {
	q := GetQuerier(ctx, db)

	query := `
		INSERT INTO sequence_counters (name, last_value, updated_at)
		VALUES ($1, 1, NOW())
		ON CONFLICT (name) DO UPDATE
		SET last_value = sequence_counters.last_value + 1, updated_at = NOW()
		RETURNING last_value
	`
	var value int64
	if err := q.QueryRow(ctx, query, name).Scan(&value); err != nil {
		return 0, fmt.Errorf("failed to increment counter %s: %w", name, err)
	}
	return value, nil
}
