package repository

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/leadscout/leadscout/pkg/domain"
)

// ConsumerRepository reads consumer profiles. Consumers are owned by the
// external consumer-management system, so the worker only ever reads them;
// registry state is treated as eventually consistent.
type ConsumerRepository struct {
	db *sqlx.DB
}

// consumerSQL represents a consumer row for SQL operations
type consumerSQL struct {
	ID             string     `db:"id"`
	Keywords       stringsSQL `db:"keywords"`
	ProfileText    string     `db:"profile_text"`
	ContactChannel string     `db:"contact_channel"`
	Subscriptions  stringsSQL `db:"subscriptions"`
	Active         bool       `db:"active"`
	CreatedAt      time.Time  `db:"created_at"`
}

// stringsSQL is a JSON array of strings for SQL operations
type stringsSQL []string

// Value implements driver.Valuer for database storage
func (s stringsSQL) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for database retrieval
func (s *stringsSQL) Scan(value interface{}) error {
	if value == nil {
		*s = stringsSQL{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		*s = stringsSQL{}
		return nil
	}

	return json.Unmarshal(data, s)
}

// NewConsumerRepository creates a new consumer repository
func NewConsumerRepository(database *sqlx.DB) *ConsumerRepository {
	return &ConsumerRepository{db: database}
}

// ListActive returns all active consumers with their keywords and subscriptions
func (r *ConsumerRepository) ListActive(ctx context.Context) ([]domain.Consumer, error) {
	var rows []consumerSQL
	if err := r.db.SelectContext(ctx, &rows, "SELECT * FROM consumers WHERE active = 1 ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list active consumers: %w", err)
	}

	consumers := make([]domain.Consumer, len(rows))
	for i, row := range rows {
		consumers[i] = toDomainConsumer(&row)
	}
	return consumers, nil
}

// ListForFeed returns active consumers whose subscription set includes the feed
func (r *ConsumerRepository) ListForFeed(ctx context.Context, feedName string) ([]domain.Consumer, error) {
	all, err := r.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	var matched []domain.Consumer
	for _, c := range all {
		for _, sub := range c.Subscriptions {
			if sub == feedName {
				matched = append(matched, c)
				break
			}
		}
	}
	return matched, nil
}

// Upsert inserts or replaces a consumer record. Used by tests and by external
// tooling that seeds the registry; the monitor itself never writes consumers.
func (r *ConsumerRepository) Upsert(ctx context.Context, consumer domain.Consumer) error {
	row := consumerSQL{
		ID:             consumer.ID,
		Keywords:       consumer.Keywords,
		ProfileText:    consumer.ProfileText,
		ContactChannel: consumer.ContactChannel,
		Subscriptions:  consumer.Subscriptions,
		Active:         true,
	}

	err := withLockRetry(ctx, func() error {
		_, err := r.db.NamedExecContext(ctx, `
			INSERT INTO consumers (id, keywords, profile_text, contact_channel, subscriptions, active)
			VALUES (:id, :keywords, :profile_text, :contact_channel, :subscriptions, :active)
			ON CONFLICT(id) DO UPDATE SET
				keywords = excluded.keywords,
				profile_text = excluded.profile_text,
				contact_channel = excluded.contact_channel,
				subscriptions = excluded.subscriptions,
				active = excluded.active`, row)
		return err
	})
	if err != nil {
		return fmt.Errorf("upsert consumer %s: %w", consumer.ID, err)
	}
	return nil
}

// toDomainConsumer converts consumerSQL to domain.Consumer
func toDomainConsumer(row *consumerSQL) domain.Consumer {
	return domain.Consumer{
		ID:             row.ID,
		Keywords:       row.Keywords,
		ProfileText:    row.ProfileText,
		ContactChannel: row.ContactChannel,
		Subscriptions:  row.Subscriptions,
	}
}
