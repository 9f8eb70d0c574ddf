package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/leadscout/leadscout/pkg/domain"
)

// LeadRepository handles lead persistence. Inserts are idempotent on
// (consumer_id, external_id): a given item produces at most one lead per consumer.
type LeadRepository struct {
	db *sqlx.DB
}

// leadSQL represents a lead row for SQL operations
type leadSQL struct {
	ID             int64     `db:"id"`
	ConsumerID     string    `db:"consumer_id"`
	ExternalID     string    `db:"external_id"`
	Title          string    `db:"title"`
	Snippet        string    `db:"snippet"`
	Link           string    `db:"link"`
	SourceFeed     string    `db:"source_feed"`
	RelevanceScore float64   `db:"relevance_score"`
	Status         string    `db:"status"`
	CreatedAt      time.Time `db:"created_at"`
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(database *sqlx.DB) *LeadRepository {
	return &LeadRepository{db: database}
}

// Create inserts a lead, treating a duplicate (consumer, external id) pair as a
// successful no-op. Returns true when a new row was actually created.
func (r *LeadRepository) Create(ctx context.Context, lead *domain.Lead) (created bool, err error) {
	if lead.Status == "" {
		lead.Status = domain.LeadStatusNew
	}

	row := leadSQL{
		ConsumerID:     lead.ConsumerID,
		ExternalID:     lead.ExternalID,
		Title:          lead.Title,
		Snippet:        lead.Snippet,
		Link:           lead.Link,
		SourceFeed:     lead.SourceFeed,
		RelevanceScore: lead.RelevanceScore,
		Status:         lead.Status,
	}

	err = withLockRetry(ctx, func() error {
		result, execErr := r.db.NamedExecContext(ctx, `
			INSERT INTO leads (consumer_id, external_id, title, snippet, link, source_feed, relevance_score, status)
			VALUES (:consumer_id, :external_id, :title, :snippet, :link, :source_feed, :relevance_score, :status)
			ON CONFLICT(consumer_id, external_id) DO NOTHING`, row)
		if execErr != nil {
			return execErr
		}

		affected, affErr := result.RowsAffected()
		if affErr != nil {
			return affErr
		}
		if affected > 0 {
			created = true
			if id, idErr := result.LastInsertId(); idErr == nil {
				lead.ID = id
			}
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("create lead (%s, %s): %w", lead.ConsumerID, lead.ExternalID, err)
	}
	return created, nil
}

// GetByConsumer returns the newest leads for a consumer
func (r *LeadRepository) GetByConsumer(ctx context.Context, consumerID string, limit int) ([]domain.Lead, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows []leadSQL
	query := `SELECT * FROM leads WHERE consumer_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`
	if err := r.db.SelectContext(ctx, &rows, query, consumerID, limit); err != nil {
		return nil, fmt.Errorf("get leads for %s: %w", consumerID, err)
	}

	leads := make([]domain.Lead, len(rows))
	for i, row := range rows {
		leads[i] = domain.Lead{
			ID:             row.ID,
			ConsumerID:     row.ConsumerID,
			ExternalID:     row.ExternalID,
			Title:          row.Title,
			Snippet:        row.Snippet,
			Link:           row.Link,
			SourceFeed:     row.SourceFeed,
			RelevanceScore: row.RelevanceScore,
			Status:         row.Status,
			CreatedAt:      row.CreatedAt,
		}
	}
	return leads, nil
}

// Count returns the total number of persisted leads
func (r *LeadRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM leads"); err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return count, nil
}
