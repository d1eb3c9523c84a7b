package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"social_dashboard/internal/models"
)

type MetricSQLite struct {
	db *sql.DB
}

func NewMetricSQLite(db *sql.DB) *MetricSQLite { return &MetricSQLite{db: db} }

var _ Metrics = (*MetricSQLite)(nil)

const (
	insertMetricSQL = `INSERT INTO metrics (id, user_id, title, value, category) VALUES (?, ?, ?, ?, ?)`

	selectMetricsByOwnerSQL = `SELECT id, user_id, title, value, category
		FROM metrics WHERE user_id = ? ORDER BY rowid ASC`
	selectMetricOwnedSQL = `SELECT id, user_id, title, value, category
		FROM metrics WHERE id = ? AND user_id = ?`

	updateMetricValueSQL = `UPDATE metrics SET value = ? WHERE id = ? AND user_id = ?`
	deleteMetricSQL      = `DELETE FROM metrics WHERE id = ? AND user_id = ?`
)

// Create inserts a new metric. The caller assigns the id and the owner.
func (r *MetricSQLite) Create(ctx context.Context, m models.Metric) error {
	if _, err := r.db.ExecContext(ctx, insertMetricSQL,
		m.ID, m.UserID, m.Title, m.Value, m.Category); err != nil {
		return fmt.Errorf("insert metric %q: %w", m.ID, err)
	}
	return nil
}

// ListByOwner returns all metrics owned by userID in insertion order.
func (r *MetricSQLite) ListByOwner(ctx context.Context, userID int) ([]models.Metric, error) {
	rows, err := r.db.QueryContext(ctx, selectMetricsByOwnerSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list metrics for user %d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.Metric, 0, 16)
	for rows.Next() {
		var m models.Metric
		if err := rows.Scan(&m.ID, &m.UserID, &m.Title, &m.Value, &m.Category); err != nil {
			return nil, fmt.Errorf("scan metric row: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate metric rows: %w", err)
	}
	return out, nil
}

// UpdateValue mutates only the value column, filtered by id AND owner.
// Returns (nil, nil) when no row matched — a missing record and an ownership
// mismatch look identical to the caller.
func (r *MetricSQLite) UpdateValue(ctx context.Context, id string, userID int, value string) (*models.Metric, error) {
	res, err := r.db.ExecContext(ctx, updateMetricValueSQL, value, id, userID)
	if err != nil {
		return nil, fmt.Errorf("update metric %q: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected for metric %q: %w", id, err)
	}
	if affected == 0 {
		return nil, nil
	}

	var m models.Metric
	err = r.db.QueryRowContext(ctx, selectMetricOwnedSQL, id, userID).
		Scan(&m.ID, &m.UserID, &m.Title, &m.Value, &m.Category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Deleted between the update and the read; treat as not found.
			return nil, nil
		}
		return nil, fmt.Errorf("reload metric %q: %w", id, err)
	}
	return &m, nil
}

// Delete removes the metric, filtered by id AND owner. Returns false when no
// row matched.
func (r *MetricSQLite) Delete(ctx context.Context, id string, userID int) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteMetricSQL, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete metric %q: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for metric %q: %w", id, err)
	}
	return affected > 0, nil
}
