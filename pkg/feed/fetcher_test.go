package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadscout/leadscout/pkg/domain"
)

func TestFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/golang/latest.json", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "scout-bot/1.0", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"id": "p1", "title": "Need help finding leads", "link": "https://example.com/p1",
			 "summary": "Looking for a tool", "publishedAt": "2024-05-01T10:00:00Z", "author": "alice"},
			{"id": "p2", "title": "Weekly thread", "link": "https://example.com/p2",
			 "summary": "Chat here", "publishedAt": "2024-05-01T09:00:00Z", "author": "bob"}
		]`)
	}))
	defer server.Close()

	f := NewFetcher(Config{BaseURL: server.URL, MaxItems: 5, ClientIDs: []string{"scout-bot/1.0"}})

	items, err := f.Fetch(context.Background(), "golang")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "p1", items[0].ExternalID)
	assert.Equal(t, "Need help finding leads", items[0].Title)
	assert.Equal(t, "Looking for a tool", items[0].Snippet)
	assert.Equal(t, "golang", items[0].SourceFeed)
	assert.Equal(t, "alice", items[0].Author)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), items[0].PublishedAt)
}

func TestFetcher_Fetch_Envelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"items": [{"id": "p1", "title": "t", "publishedAt": "2024-05-01T10:00:00Z"}]}`)
	}))
	defer server.Close()

	f := NewFetcher(Config{BaseURL: server.URL})
	items, err := f.Fetch(context.Background(), "golang")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ExternalID)
}

func TestFetcher_Fetch_Blocked(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"forbidden", http.StatusForbidden, "nope"},
		{"too many requests", http.StatusTooManyRequests, "slow down"},
		{"block message", http.StatusBadRequest, "you have been blocked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			f := NewFetcher(Config{BaseURL: server.URL, ClientIDs: []string{"a"}})
			_, err := f.Fetch(context.Background(), "golang")

			var fetchErr *FetchError
			require.ErrorAs(t, err, &fetchErr)
			assert.Equal(t, KindBlocked, fetchErr.Kind)
			assert.Equal(t, domain.FailureBlocking, fetchErr.Class())

			// the flagged client identifier must be resting
			assert.Equal(t, 0, f.ActiveClientIDs())
		})
	}
}

func TestFetcher_Fetch_Transient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	f := NewFetcher(Config{BaseURL: server.URL, ClientIDs: []string{"a"}})
	_, err := f.Fetch(context.Background(), "golang")

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, KindTransient, fetchErr.Kind)
	assert.Equal(t, domain.FailureTransient, fetchErr.Class())
	assert.Equal(t, 1, f.ActiveClientIDs(), "transient failure should not cool the client id")
}

func TestFetcher_Fetch_NetworkError(t *testing.T) {
	f := NewFetcher(Config{BaseURL: "http://127.0.0.1:1", Timeout: 100 * time.Millisecond})
	_, err := f.Fetch(context.Background(), "golang")

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, KindTransient, fetchErr.Kind)
}

func TestFetcher_Fetch_ParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, "not json at all")
	}))
	defer server.Close()

	f := NewFetcher(Config{BaseURL: server.URL})
	_, err := f.Fetch(context.Background(), "golang")

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, KindParse, fetchErr.Kind)
	assert.Equal(t, domain.FailureTransient, fetchErr.Class(), "parse errors count as transient")
}

func TestFetcher_Fetch_BlockPhraseInItemText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"id": "p1", "title": "my app keeps saying rate limit exceeded, help", "publishedAt": "2024-05-01T10:00:00Z"},
			{"id": "p2", "title": "you have been blocked - how do I appeal?", "publishedAt": "2024-05-01T09:00:00Z"}
		]`)
	}))
	defer server.Close()

	f := NewFetcher(Config{BaseURL: server.URL, ClientIDs: []string{"scout-bot/1.0"}})
	items, err := f.Fetch(context.Background(), "startups")
	require.NoError(t, err, "items mentioning blocking are still just items")
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ExternalID)
	assert.Equal(t, 1, f.ActiveClientIDs(), "client identifier must not be cooled by item text")
}

func TestFetcher_Fetch_BlockNoticeWithOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html>you have been blocked</html>")
	}))
	defer server.Close()

	f := NewFetcher(Config{BaseURL: server.URL, ClientIDs: []string{"scout-bot/1.0"}})
	_, err := f.Fetch(context.Background(), "golang")

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, KindBlocked, fetchErr.Kind)
	assert.Equal(t, 0, f.ActiveClientIDs())
}

func TestFetcher_Fetch_ListingTruncated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"id": "p1", "title": "one", "publishedAt": "2024-05-01T10:00:00Z"},
			{"id": "p2", "title": "two", "publishedAt": "2024-05-01T09:00:00Z"},
			{"id": "p3", "title": "three", "publishedAt": "2024-05-01T08:00:00Z"}
		]`)
	}))
	defer server.Close()

	f := NewFetcher(Config{BaseURL: server.URL, MaxItems: 2})
	items, err := f.Fetch(context.Background(), "golang")
	require.NoError(t, err)
	require.Len(t, items, 2, "listing capped even when the source ignores the limit parameter")
	assert.Equal(t, "p1", items[0].ExternalID)
	assert.Equal(t, "p2", items[1].ExternalID)
}

func TestFetcher_Fetch_SyndicationFallback(t *testing.T) {
	rss := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>golang</title>
    <item>
      <title>Looking for a CRM</title>
      <link>https://example.com/p1</link>
      <guid>p1</guid>
      <description>Any recommendations?</description>
      <pubDate>Wed, 01 May 2024 10:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rss)
	}))
	defer server.Close()

	f := NewFetcher(Config{BaseURL: server.URL})
	items, err := f.Fetch(context.Background(), "golang")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ExternalID)
	assert.Equal(t, "Looking for a CRM", items[0].Title)
	assert.Equal(t, "Any recommendations?", items[0].Snippet)
	assert.Equal(t, "golang", items[0].SourceFeed)
	assert.False(t, items[0].PublishedAt.IsZero())
}

func TestFetcher_Fetch_AllClientIDsBlocked(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	f := NewFetcher(Config{BaseURL: server.URL, ClientIDs: []string{"a"}})

	_, err := f.Fetch(context.Background(), "golang")
	require.Error(t, err)

	// second fetch finds no usable identifier and fails fast without a request
	_, err = f.Fetch(context.Background(), "golang")
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, KindBlocked, fetchErr.Kind)
}

func TestFetcher_Fetch_SkipsItemsWithoutID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"title": "no id"}, {"id": "p2", "title": "ok"}]`)
	}))
	defer server.Close()

	f := NewFetcher(Config{BaseURL: server.URL})
	items, err := f.Fetch(context.Background(), "golang")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ExternalID)
}
