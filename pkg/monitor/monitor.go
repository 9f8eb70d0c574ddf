// Package monitor drives the poll cycle: refresh the feed registry from
// consumer subscriptions, fetch eligible feeds one at a time with pacing,
// match and score new items, persist leads and fire notifications. Feeds are
// processed sequentially on purpose: the bottleneck is the source's tolerance
// for request rate, not local CPU, so parallel fetching would only raise the
// ban risk without improving throughput.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/leadscout/leadscout/pkg/domain"
	"github.com/leadscout/leadscout/pkg/feed"
)

//go:generate moq -out mocks/feed_store.go -pkg mocks -skip-ensure -fmt goimports . FeedStore
//go:generate moq -out mocks/consumer_registry.go -pkg mocks -skip-ensure -fmt goimports . ConsumerRegistry
//go:generate moq -out mocks/lead_store.go -pkg mocks -skip-ensure -fmt goimports . LeadStore
//go:generate moq -out mocks/heartbeat_store.go -pkg mocks -skip-ensure -fmt goimports . HeartbeatStore
//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/scorer.go -pkg mocks -skip-ensure -fmt goimports . Scorer
//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports . Notifier

// FeedStore persists per-feed watermark and failure state
type FeedStore interface {
	Sync(ctx context.Context, names []string) error
	ListEligible(ctx context.Context, now time.Time) ([]domain.Feed, error)
	UpdateWatermark(ctx context.Context, name string, ts time.Time) error
	RecordFailure(ctx context.Context, name string, class domain.FailureClass) error
	ResetFailure(ctx context.Context, name string) error
}

// ConsumerRegistry reads consumer profiles and subscriptions
type ConsumerRegistry interface {
	ListActive(ctx context.Context) ([]domain.Consumer, error)
}

// LeadStore persists leads idempotently
type LeadStore interface {
	Create(ctx context.Context, lead *domain.Lead) (created bool, err error)
}

// HeartbeatStore records worker liveness after every cycle
type HeartbeatStore interface {
	Upsert(ctx context.Context, lastRunAt time.Time, activeResources int) error
}

// Fetcher retrieves the newest items for one feed
type Fetcher interface {
	Fetch(ctx context.Context, feedName string) ([]domain.CandidateItem, error)
}

// Scorer assigns relevance scores to items against a consumer profile
type Scorer interface {
	Score(ctx context.Context, items []domain.CandidateItem, profileText string) []float64
	ActiveKeys() int
}

// Notifier alerts a consumer about an especially strong lead
type Notifier interface {
	Notify(ctx context.Context, consumer domain.Consumer, lead domain.Lead) error
}

// Params holds all monitor dependencies and knobs
type Params struct {
	FeedStore      FeedStore
	Registry       ConsumerRegistry
	LeadStore      LeadStore
	HeartbeatStore HeartbeatStore
	Fetcher        Fetcher
	Scorer         Scorer
	Notifier       Notifier // nil disables notifications

	BaseDelay        time.Duration // fixed pause before each fetch
	Jitter           time.Duration // random addition to the pause, [0, Jitter)
	StoreThreshold   float64       // minimum score to persist a lead
	NotifyThreshold  float64       // minimum score to notify the consumer
	MaxScoredPerFeed int           // per-consumer cap of items scored per feed per cycle
	HealthFailRate   float64       // cycle failure rate that triggers a health alert
	ScoreWorkers     int           // concurrent per-consumer scoring calls within one feed
}

// Monitor runs the feed ingestion and scoring pipeline
type Monitor struct {
	feeds     FeedStore
	registry  ConsumerRegistry
	leads     LeadStore
	heartbeat HeartbeatStore
	fetcher   Fetcher
	scorer    Scorer
	notifier  Notifier

	baseDelay        time.Duration
	jitter           time.Duration
	storeThreshold   float64
	notifyThreshold  float64
	maxScoredPerFeed int
	healthFailRate   float64
	scoreWorkers     int

	runMu sync.Mutex // reentrancy guard: a long cycle must not overlap the next tick
	now   func() time.Time
	rand  func(time.Duration) time.Duration
}

// New creates a monitor from params, applying defaults for unset knobs
func New(p Params) *Monitor {
	if p.BaseDelay == 0 {
		p.BaseDelay = 5 * time.Second
	}
	if p.Jitter == 0 {
		p.Jitter = 3 * time.Second
	}
	if p.StoreThreshold == 0 {
		p.StoreThreshold = 0.7
	}
	if p.NotifyThreshold == 0 {
		p.NotifyThreshold = 0.9
	}
	if p.MaxScoredPerFeed == 0 {
		p.MaxScoredPerFeed = 20
	}
	if p.HealthFailRate == 0 {
		p.HealthFailRate = 0.3
	}
	if p.ScoreWorkers == 0 {
		p.ScoreWorkers = 4
	}

	return &Monitor{
		feeds:            p.FeedStore,
		registry:         p.Registry,
		leads:            p.LeadStore,
		heartbeat:        p.HeartbeatStore,
		fetcher:          p.Fetcher,
		scorer:           p.Scorer,
		notifier:         p.Notifier,
		baseDelay:        p.BaseDelay,
		jitter:           p.Jitter,
		storeThreshold:   p.StoreThreshold,
		notifyThreshold:  p.NotifyThreshold,
		maxScoredPerFeed: p.MaxScoredPerFeed,
		healthFailRate:   p.HealthFailRate,
		scoreWorkers:     p.ScoreWorkers,
		now:              time.Now,
		rand:             func(d time.Duration) time.Duration { return time.Duration(rand.Int63n(int64(d))) }, //nolint:gosec // jitter, not crypto
	}
}

// Run executes a cycle immediately and then on every tick until the context is
// canceled. Used when the worker owns its own schedule; external cron should
// call RunCycle once instead.
func (m *Monitor) Run(ctx context.Context, interval time.Duration) error {
	lgr.Printf("[INFO] monitor started, cycle interval %v", interval)

	if err := m.RunCycle(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lgr.Printf("[ERROR] cycle failed: %v", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			lgr.Printf("[INFO] monitor stopped")
			return nil
		case <-ticker.C:
			if err := m.RunCycle(ctx); err != nil && !errors.Is(err, context.Canceled) {
				lgr.Printf("[ERROR] cycle failed: %v", err)
			}
		}
	}
}

// RunCycle performs one complete pass over all eligible feeds. Per-feed and
// per-consumer errors are contained and logged; only registry or feed-list
// unavailability and context cancellation abort the cycle.
func (m *Monitor) RunCycle(ctx context.Context) error {
	if !m.runMu.TryLock() {
		lgr.Printf("[WARN] previous cycle still running, skipping this tick")
		return nil
	}
	defer m.runMu.Unlock()

	started := m.now()

	consumers, err := m.registry.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list consumers: %w", err)
	}

	// feed registry follows the union of subscriptions, eventually consistent
	if err := m.feeds.Sync(ctx, subscriptionUnion(consumers)); err != nil {
		lgr.Printf("[WARN] feed registry sync failed, using previous registry: %v", err)
	}

	feeds, err := m.feeds.ListEligible(ctx, m.now())
	if err != nil {
		return fmt.Errorf("list eligible feeds: %w", err)
	}

	lgr.Printf("[INFO] cycle started: %d eligible feeds, %d consumers", len(feeds), len(consumers))

	failed := 0
	for _, f := range feeds {
		// cooperative cancellation point between feeds
		if err := m.pace(ctx); err != nil {
			return err
		}

		if err := m.processFeed(ctx, f, consumers); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			failed++
		}
	}

	if len(feeds) > 0 {
		rate := float64(failed) / float64(len(feeds))
		if rate > m.healthFailRate {
			lgr.Printf("[ERROR] health alert: %d of %d feeds failed this cycle (%.0f%%)",
				failed, len(feeds), rate*100)
		}
	}

	if err := m.heartbeat.Upsert(ctx, m.now(), m.scorer.ActiveKeys()); err != nil {
		lgr.Printf("[WARN] heartbeat update failed: %v", err)
	}

	lgr.Printf("[INFO] cycle completed in %v, %d feeds, %d failed", m.now().Sub(started).Round(time.Millisecond), len(feeds), failed)
	return nil
}

// pace waits the anti-ban delay before the next fetch. This is the primary
// protection against source-side rate limiting, not cosmetic throttling.
func (m *Monitor) pace(ctx context.Context) error {
	delay := m.baseDelay
	if m.jitter > 0 {
		delay += m.rand(m.jitter)
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// processFeed fetches one feed and runs new items through matching, scoring
// and persistence. The watermark captured before the poll is the filter
// baseline; it advances only over items actually processed this cycle.
func (m *Monitor) processFeed(ctx context.Context, f domain.Feed, consumers []domain.Consumer) error {
	items, err := m.fetcher.Fetch(ctx, f.Name)
	if err != nil {
		class := domain.FailureTransient
		var fetchErr *feed.FetchError
		if errors.As(err, &fetchErr) {
			class = fetchErr.Class()
		}
		lgr.Printf("[WARN] fetch %s failed (%v class): %v", f.Name, class, err)
		if recErr := m.feeds.RecordFailure(ctx, f.Name, class); recErr != nil {
			lgr.Printf("[ERROR] record failure for %s: %v", f.Name, recErr)
		}
		return err
	}

	if err := m.feeds.ResetFailure(ctx, f.Name); err != nil {
		lgr.Printf("[ERROR] reset failure for %s: %v", f.Name, err)
	}

	// keep only items newer than the watermark read before this poll began
	fresh := make([]domain.CandidateItem, 0, len(items))
	for _, item := range items {
		if item.PublishedAt.After(f.Watermark) {
			fresh = append(fresh, item)
		}
	}
	if len(fresh) == 0 {
		lgr.Printf("[DEBUG] no new items in %s", f.Name)
		return nil
	}

	// oldest first, so the per-cycle scoring cap defers the newest items and
	// the watermark stays contiguous
	sort.Slice(fresh, func(i, j int) bool { return fresh[i].PublishedAt.Before(fresh[j].PublishedAt) })

	subscribers := subscribedTo(consumers, f.Name)
	matches := matchConsumers(fresh, subscribers)
	lgr.Printf("[INFO] feed %s: %d new items, matched for %d of %d consumers",
		f.Name, len(fresh), len(matches), len(subscribers))

	deferred := map[string]bool{} // items pushed past the scoring cap, retried next cycle
	scored := m.scoreMatches(ctx, subscribers, matches, deferred)

	var processedMax time.Time
	for _, item := range fresh {
		if deferred[item.ExternalID] {
			continue
		}
		if item.PublishedAt.After(processedMax) {
			processedMax = item.PublishedAt
		}
	}

	if err := m.persistLeads(ctx, f.Name, scored); err != nil {
		lgr.Printf("[ERROR] persisting leads for %s failed, skipping remaining items: %v", f.Name, err)
		return err
	}

	if !processedMax.IsZero() && processedMax.After(f.Watermark) {
		if err := m.feeds.UpdateWatermark(ctx, f.Name, processedMax); err != nil {
			lgr.Printf("[ERROR] advance watermark for %s: %v", f.Name, err)
		}
	}
	return nil
}

// consumerScores holds one consumer's scored batch for a feed
type consumerScores struct {
	consumer domain.Consumer
	items    []domain.CandidateItem
	scores   []float64
}

// scoreMatches runs per-consumer scoring for one feed. Consumers are scored
// concurrently with a small bound; the scorer itself never returns an error,
// an outage on its side produces zero scores.
func (m *Monitor) scoreMatches(ctx context.Context, subscribers []domain.Consumer,
	matches map[string][]domain.CandidateItem, deferred map[string]bool) []consumerScores {

	var mu sync.Mutex
	var results []consumerScores

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.scoreWorkers)

	for _, consumer := range subscribers {
		items := matches[consumer.ID]
		if len(items) == 0 {
			continue
		}

		if len(items) > m.maxScoredPerFeed {
			for _, item := range items[m.maxScoredPerFeed:] {
				mu.Lock()
				deferred[item.ExternalID] = true
				mu.Unlock()
			}
			items = items[:m.maxScoredPerFeed]
		}

		g.Go(func() error {
			scores := m.scorer.Score(gctx, items, consumer.ProfileText)
			mu.Lock()
			results = append(results, consumerScores{consumer: consumer, items: items, scores: scores})
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait() // workers never return errors
	return results
}

// persistLeads stores leads above the store threshold and notifies consumers
// for newly created leads above the notify threshold. A notification failure
// is logged and swallowed; the lead stays persisted.
func (m *Monitor) persistLeads(ctx context.Context, feedName string, scored []consumerScores) error {
	for _, res := range scored {
		for i, item := range res.items {
			score := res.scores[i]
			if score < m.storeThreshold {
				continue
			}

			lead := &domain.Lead{
				ConsumerID:     res.consumer.ID,
				ExternalID:     item.ExternalID,
				Title:          item.Title,
				Snippet:        item.Snippet,
				Link:           item.Link,
				SourceFeed:     feedName,
				RelevanceScore: score,
				Status:         domain.LeadStatusNew,
			}

			created, err := m.leads.Create(ctx, lead)
			if err != nil {
				return fmt.Errorf("create lead for %s: %w", res.consumer.ID, err)
			}
			if !created {
				continue // duplicate, already recorded in a previous cycle
			}

			lgr.Printf("[INFO] lead for %s: %q in %s, score %.2f", res.consumer.ID, item.Title, feedName, score)

			if m.notifier != nil && score >= m.notifyThreshold {
				if err := m.notifier.Notify(ctx, res.consumer, *lead); err != nil {
					lgr.Printf("[WARN] notification for %s failed: %v", res.consumer.ID, err)
				}
			}
		}
	}
	return nil
}

// subscriptionUnion collects the distinct feed names across all consumers
func subscriptionUnion(consumers []domain.Consumer) []string {
	seen := map[string]bool{}
	var names []string
	for _, c := range consumers {
		for _, sub := range c.Subscriptions {
			if sub == "" || seen[sub] {
				continue
			}
			seen[sub] = true
			names = append(names, sub)
		}
	}
	sort.Strings(names)
	return names
}

// subscribedTo filters consumers down to those watching the given feed
func subscribedTo(consumers []domain.Consumer, feedName string) []domain.Consumer {
	var out []domain.Consumer
	for _, c := range consumers {
		for _, sub := range c.Subscriptions {
			if sub == feedName {
				out = append(out, c)
				break
			}
		}
	}
	return out
}
