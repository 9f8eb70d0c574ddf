package domain

import "time"

// CandidateItem is a normalized unit fetched from a feed. It is transient and
// exists only within one poll cycle, never persisted directly.
type CandidateItem struct {
	ExternalID  string
	Title       string
	Snippet     string
	Link        string
	PublishedAt time.Time
	SourceFeed  string
	Author      string
}

// Lead is a persisted (consumer, item) match with a relevance score.
// Unique per (ConsumerID, ExternalID), enforced by the lead store.
type Lead struct {
	ID             int64
	ConsumerID     string
	ExternalID     string
	Title          string
	Snippet        string
	Link           string
	SourceFeed     string
	RelevanceScore float64
	Status         string // "new" by default
	CreatedAt      time.Time
}

// LeadStatusNew is the initial status of a freshly persisted lead
const LeadStatusNew = "new"

// Heartbeat is a single row capturing worker liveness for external monitoring
type Heartbeat struct {
	ID              string // always "worker"
	LastRunAt       time.Time
	ActiveResources int // number of usable scoring credentials
}
