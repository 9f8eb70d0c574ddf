package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/leadscout/leadscout/pkg/domain"
)

// heartbeatID is the fixed key of the single worker liveness row
const heartbeatID = "worker"

// HeartbeatRepository maintains the single worker liveness row
type HeartbeatRepository struct {
	db *sqlx.DB
}

// NewHeartbeatRepository creates a new heartbeat repository
func NewHeartbeatRepository(database *sqlx.DB) *HeartbeatRepository {
	return &HeartbeatRepository{db: database}
}

// Upsert records the end of a cycle and the number of usable scoring credentials
func (r *HeartbeatRepository) Upsert(ctx context.Context, lastRunAt time.Time, activeResources int) error {
	err := withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO worker_status (id, last_run_at, active_resources)
			VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				last_run_at = excluded.last_run_at,
				active_resources = excluded.active_resources`,
			heartbeatID, lastRunAt.UTC(), activeResources)
		return err
	})
	if err != nil {
		return fmt.Errorf("upsert heartbeat: %w", err)
	}
	return nil
}

// Get returns the current worker heartbeat, nil before the first cycle
func (r *HeartbeatRepository) Get(ctx context.Context) (*domain.Heartbeat, error) {
	var row struct {
		ID              string    `db:"id"`
		LastRunAt       time.Time `db:"last_run_at"`
		ActiveResources int       `db:"active_resources"`
	}
	if err := r.db.GetContext(ctx, &row, "SELECT * FROM worker_status WHERE id = ?", heartbeatID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get heartbeat: %w", err)
	}
	return &domain.Heartbeat{ID: row.ID, LastRunAt: row.LastRunAt, ActiveResources: row.ActiveResources}, nil
}
