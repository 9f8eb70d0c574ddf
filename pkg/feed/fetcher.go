// Package feed retrieves the newest items from monitored discussion sources.
// The source aggressively rate-limits and bans abusive clients, so the fetcher
// requests only the lightweight summary representation, caps the item count and
// rotates its client identifier. Full content enrichment is deliberately avoided.
package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/leadscout/leadscout/pkg/domain"
	"github.com/leadscout/leadscout/pkg/pool"
)

// Fetcher retrieves the newest items for one feed via HTTP
type Fetcher struct {
	client        *http.Client
	baseURL       string
	maxItems      int
	clientIDs     *pool.Pool[string]
	blockCooldown time.Duration
	now           func() time.Time
}

// Config holds fetcher configuration
type Config struct {
	BaseURL       string
	MaxItems      int
	Timeout       time.Duration
	ClientIDs     []string
	BlockCooldown time.Duration // how long a blocked client identifier rests
}

const maxErrorBody = 4 * 1024

// NewFetcher creates a fetcher for the given source
func NewFetcher(cfg Config) *Fetcher {
	if cfg.MaxItems == 0 {
		cfg.MaxItems = 20
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.BlockCooldown == 0 {
		cfg.BlockCooldown = time.Hour
	}
	if len(cfg.ClientIDs) == 0 {
		cfg.ClientIDs = []string{"leadscout/1.0"}
	}

	return &Fetcher{
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		maxItems:      cfg.MaxItems,
		clientIDs:     pool.New(cfg.ClientIDs...),
		blockCooldown: cfg.BlockCooldown,
		now:           time.Now,
	}
}

// feedItem is the wire representation of one item in the summary listing
type feedItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Summary     string    `json:"summary"`
	PublishedAt time.Time `json:"publishedAt"`
	Author      string    `json:"author"`
}

// Fetch retrieves the newest items for a feed. On failure it returns a
// *FetchError classifying the failure; it never returns partial data.
func (f *Fetcher) Fetch(ctx context.Context, feedName string) ([]domain.CandidateItem, error) {
	lease, ok := f.clientIDs.Acquire(f.now())
	if !ok {
		return nil, &FetchError{Kind: KindBlocked, Feed: feedName, Err: fmt.Errorf("no usable client identifier")}
	}

	url := fmt.Sprintf("%s/%s/latest.json?limit=%d", f.baseURL, feedName, f.maxItems)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, &FetchError{Kind: KindTransient, Feed: feedName, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("User-Agent", lease.Value)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: KindTransient, Feed: feedName, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return nil, &FetchError{Kind: KindTransient, Feed: feedName, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, f.classifyStatus(feedName, resp.StatusCode, body, lease)
	}

	// some sources only expose a syndication feed for their newest items
	var items []domain.CandidateItem
	if ct := resp.Header.Get("Content-Type"); strings.Contains(ct, "xml") {
		items, err = f.parseSyndication(feedName, body)
	} else {
		items, err = f.parseListing(feedName, body)
	}
	if err != nil {
		// an undecodable 200 body carrying a block notice is a soft block, a
		// body that decodes cleanly is data even if item text mentions blocking
		if isBlockMessage(body) {
			lease.Suspend(f.now().Add(f.blockCooldown))
			return nil, &FetchError{Kind: KindBlocked, Feed: feedName, Err: fmt.Errorf("source reported block")}
		}
		return nil, err
	}

	return items, nil
}

// classifyStatus maps a non-200 response to a FetchError kind. Blocking-class
// statuses also put the client identifier into cooldown, continuing to use a
// flagged identifier risks losing access to every feed on the source.
func (f *Fetcher) classifyStatus(feedName string, status int, body []byte, lease *pool.Lease[string]) error {
	if status == http.StatusForbidden || status == http.StatusTooManyRequests {
		lease.Suspend(f.now().Add(f.blockCooldown))
		return &FetchError{Kind: KindBlocked, Feed: feedName, Err: fmt.Errorf("status %d", status)}
	}
	if isBlockMessage(body) {
		lease.Suspend(f.now().Add(f.blockCooldown))
		return &FetchError{Kind: KindBlocked, Feed: feedName, Err: fmt.Errorf("status %d with block message", status)}
	}
	return &FetchError{Kind: KindTransient, Feed: feedName, Err: fmt.Errorf("status %d", status)}
}

// parseListing decodes the JSON summary listing into candidate items
func (f *Fetcher) parseListing(feedName string, body []byte) ([]domain.CandidateItem, error) {
	var raw []feedItem
	if err := json.Unmarshal(body, &raw); err != nil {
		// tolerate an {"items": [...]} envelope
		var envelope struct {
			Items []feedItem `json:"items"`
		}
		if err2 := json.Unmarshal(body, &envelope); err2 != nil || envelope.Items == nil {
			return nil, &FetchError{Kind: KindParse, Feed: feedName, Err: fmt.Errorf("decode listing: %w", err)}
		}
		raw = envelope.Items
	}

	// the query asks the source for at most maxItems but not every source honors it
	if len(raw) > f.maxItems {
		raw = raw[:f.maxItems]
	}

	items := make([]domain.CandidateItem, 0, len(raw))
	for _, it := range raw {
		if it.ID == "" {
			continue
		}
		items = append(items, domain.CandidateItem{
			ExternalID:  it.ID,
			Title:       it.Title,
			Snippet:     it.Summary,
			Link:        it.Link,
			PublishedAt: it.PublishedAt,
			SourceFeed:  feedName,
			Author:      it.Author,
		})
	}
	return items, nil
}

// parseSyndication decodes an RSS/Atom body into candidate items
func (f *Fetcher) parseSyndication(feedName string, body []byte) ([]domain.CandidateItem, error) {
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, &FetchError{Kind: KindParse, Feed: feedName, Err: fmt.Errorf("parse syndication feed: %w", err)}
	}

	items := make([]domain.CandidateItem, 0, len(parsed.Items))
	for i, it := range parsed.Items {
		if i >= f.maxItems {
			break
		}
		item := domain.CandidateItem{
			Title:      it.Title,
			Snippet:    it.Description,
			Link:       it.Link,
			SourceFeed: feedName,
		}
		switch {
		case it.GUID != "":
			item.ExternalID = it.GUID
		case it.Link != "":
			item.ExternalID = it.Link
		default:
			continue
		}
		if it.PublishedParsed != nil {
			item.PublishedAt = *it.PublishedParsed
		} else if it.UpdatedParsed != nil {
			item.PublishedAt = *it.UpdatedParsed
		}
		if it.Author != nil {
			item.Author = it.Author.Name
		}
		items = append(items, item)
	}
	return items, nil
}

// ActiveClientIDs reports how many client identifiers are currently usable
func (f *Fetcher) ActiveClientIDs() int {
	return f.clientIDs.Active(f.now())
}

// isBlockMessage detects an explicit block notice in a response body
func isBlockMessage(body []byte) bool {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	s := strings.ToLower(string(body))
	return strings.Contains(s, "you have been blocked") || strings.Contains(s, "rate limit exceeded")
}
