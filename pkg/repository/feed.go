package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/leadscout/leadscout/pkg/domain"
)

// FeedRepository handles feed-related database operations
type FeedRepository struct {
	db        *sqlx.DB
	maxStreak int
	pause     time.Duration
	nowFn     func() time.Time
}

// feedSQL represents a feed row for SQL operations
type feedSQL struct {
	Name           string     `db:"name"`
	Watermark      *time.Time `db:"watermark"`
	ErrorStreak    int        `db:"error_streak"`
	SuspendedUntil *time.Time `db:"suspended_until"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

// NewFeedRepository creates a new feed repository with default failure policy
func NewFeedRepository(database *sqlx.DB) *FeedRepository {
	return &FeedRepository{db: database, maxStreak: 3, pause: 2 * time.Hour, nowFn: time.Now}
}

// SetFailurePolicy overrides the max error streak and suspension duration
func (r *FeedRepository) SetFailurePolicy(maxStreak int, pause time.Duration) {
	r.maxStreak = maxStreak
	r.pause = pause
}

// Sync ensures a feed row exists for every name in the current union of
// consumer subscriptions. Existing rows keep their watermark and failure state.
func (r *FeedRepository) Sync(ctx context.Context, names []string) error {
	for _, name := range names {
		if name == "" {
			continue
		}
		err := withLockRetry(ctx, func() error {
			_, err := r.db.ExecContext(ctx,
				`INSERT INTO feeds (name, created_at, updated_at) VALUES (?, ?, ?) ON CONFLICT(name) DO NOTHING`,
				name, r.nowFn().UTC(), r.nowFn().UTC())
			return err
		})
		if err != nil {
			return fmt.Errorf("sync feed %s: %w", name, err)
		}
	}
	return nil
}

// ListEligible returns feeds not currently suspended, stalest watermark first,
// so chronically-neglected feeds get priority. A suspension in the past expires
// implicitly here, there is no separate transition.
func (r *FeedRepository) ListEligible(ctx context.Context, now time.Time) ([]domain.Feed, error) {
	query := `
		SELECT * FROM feeds
		WHERE suspended_until IS NULL OR suspended_until <= ?
		ORDER BY watermark ASC
	`
	var rows []feedSQL
	if err := r.db.SelectContext(ctx, &rows, query, now.UTC()); err != nil {
		return nil, fmt.Errorf("list eligible feeds: %w", err)
	}

	feeds := make([]domain.Feed, len(rows))
	for i, row := range rows {
		feeds[i] = toDomainFeed(&row)
	}
	return feeds, nil
}

// ListAll returns every feed, including suspended ones
func (r *FeedRepository) ListAll(ctx context.Context) ([]domain.Feed, error) {
	var rows []feedSQL
	if err := r.db.SelectContext(ctx, &rows, "SELECT * FROM feeds ORDER BY name"); err != nil {
		return nil, fmt.Errorf("list feeds: %w", err)
	}

	feeds := make([]domain.Feed, len(rows))
	for i, row := range rows {
		feeds[i] = toDomainFeed(&row)
	}
	return feeds, nil
}

// Get retrieves one feed by name
func (r *FeedRepository) Get(ctx context.Context, name string) (*domain.Feed, error) {
	var row feedSQL
	if err := r.db.GetContext(ctx, &row, "SELECT * FROM feeds WHERE name = ?", name); err != nil {
		return nil, fmt.Errorf("get feed %s: %w", name, err)
	}
	feed := toDomainFeed(&row)
	return &feed, nil
}

// UpdateWatermark advances the feed's watermark. The update is monotonic: a
// timestamp at or below the stored watermark leaves the row unchanged.
func (r *FeedRepository) UpdateWatermark(ctx context.Context, name string, ts time.Time) error {
	err := withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, `
			UPDATE feeds SET watermark = ?, updated_at = ?
			WHERE name = ? AND (watermark IS NULL OR watermark < ?)`,
			ts.UTC(), r.nowFn().UTC(), name, ts.UTC())
		return err
	})
	if err != nil {
		return fmt.Errorf("update watermark for %s: %w", name, err)
	}
	return nil
}

// RecordFailure advances the feed's failure state machine for one failed fetch
func (r *FeedRepository) RecordFailure(ctx context.Context, name string, class domain.FailureClass) error {
	feed, err := r.Get(ctx, name)
	if err != nil {
		return err
	}

	feed.ApplyFailure(class, r.nowFn(), r.maxStreak, r.pause)

	err = withLockRetry(ctx, func() error {
		var until *time.Time
		if feed.SuspendedUntil != nil {
			u := feed.SuspendedUntil.UTC()
			until = &u
		}
		_, err := r.db.ExecContext(ctx,
			`UPDATE feeds SET error_streak = ?, suspended_until = ?, updated_at = ? WHERE name = ?`,
			feed.ErrorStreak, until, r.nowFn().UTC(), name)
		return err
	})
	if err != nil {
		return fmt.Errorf("record failure for %s: %w", name, err)
	}
	return nil
}

// ResetFailure clears the failure state after a successful fetch
func (r *FeedRepository) ResetFailure(ctx context.Context, name string) error {
	err := withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx,
			`UPDATE feeds SET error_streak = 0, suspended_until = NULL, updated_at = ? WHERE name = ?`,
			r.nowFn().UTC(), name)
		return err
	})
	if err != nil {
		return fmt.Errorf("reset failure for %s: %w", name, err)
	}
	return nil
}

// toDomainFeed converts feedSQL to domain.Feed
func toDomainFeed(row *feedSQL) domain.Feed {
	feed := domain.Feed{
		Name:           row.Name,
		ErrorStreak:    row.ErrorStreak,
		SuspendedUntil: row.SuspendedUntil,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
	if row.Watermark != nil {
		feed.Watermark = *row.Watermark
	}
	return feed
}
