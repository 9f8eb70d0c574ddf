package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadscout/leadscout/pkg/domain"
)

func completionResponse(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func testItems(n int) []domain.CandidateItem {
	items := make([]domain.CandidateItem, n)
	for i := range items {
		items[i] = domain.CandidateItem{
			ExternalID: string(rune('a' + i)),
			Title:      "Looking for a lead generation tool",
			Snippet:    "Any recommendations?",
			SourceFeed: "startups",
		}
	}
	return items
}

func TestScorer_Score(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		resp := completionResponse("Here are the scores:\n\n[0.85, 0.2]\n\nLet me know if you need more.")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	s := NewScorer(Config{
		Endpoint: server.URL + "/v1",
		Model:    "gpt-4o-mini",
		APIKeys:  []string{"test-key"},
	})

	scores := s.Score(context.Background(), testItems(2), "we sell lead generation software")
	assert.Equal(t, []float64{0.85, 0.2}, scores)
}

func TestScorer_Score_Clamping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(completionResponse("[1.7, -0.3, 0.5]")))
	}))
	defer server.Close()

	s := NewScorer(Config{Endpoint: server.URL + "/v1", Model: "m", APIKeys: []string{"k"}})
	scores := s.Score(context.Background(), testItems(3), "profile")
	assert.Equal(t, []float64{1, 0, 0.5}, scores)
}

func TestScorer_Score_MalformedOutput(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no array", "I cannot score these posts."},
		{"bad json", "[0.5, oops]"},
		{"wrong length", "[0.5]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				require.NoError(t, json.NewEncoder(w).Encode(completionResponse(tt.content)))
			}))
			defer server.Close()

			s := NewScorer(Config{Endpoint: server.URL + "/v1", Model: "m", APIKeys: []string{"k"}})
			scores := s.Score(context.Background(), testItems(3), "profile")
			assert.Equal(t, []float64{0, 0, 0}, scores, "malformed output degrades to zeros")
		})
	}
}

func TestScorer_Score_ServerDown(t *testing.T) {
	s := NewScorer(Config{
		Endpoint: "http://127.0.0.1:1/v1",
		Model:    "m",
		APIKeys:  []string{"k"},
		Timeout:  200 * time.Millisecond,
	})
	scores := s.Score(context.Background(), testItems(4), "profile")
	assert.Equal(t, []float64{0, 0, 0, 0}, scores, "scoring outage degrades to zeros, never panics")
}

func TestScorer_Score_NoKeys(t *testing.T) {
	s := NewScorer(Config{Endpoint: "http://127.0.0.1:1/v1", Model: "m"})
	scores := s.Score(context.Background(), testItems(2), "profile")
	assert.Equal(t, []float64{0, 0}, scores)
	assert.Equal(t, 0, s.ActiveKeys())
}

func TestScorer_Score_Batching(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		content := "[0.1, 0.2]"
		if calls == 2 {
			content = "[0.3]" // last partial batch
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(completionResponse(content)))
	}))
	defer server.Close()

	s := NewScorer(Config{Endpoint: server.URL + "/v1", Model: "m", APIKeys: []string{"k"}, BatchSize: 2})
	scores := s.Score(context.Background(), testItems(3), "profile")

	assert.Equal(t, 2, calls)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, scores)
}

func TestScorer_Score_RateLimitedKeyCoolsDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, err := w.Write([]byte(`{"error": {"message": "rate limited", "type": "requests"}}`))
		require.NoError(t, err)
	}))
	defer server.Close()

	s := NewScorer(Config{Endpoint: server.URL + "/v1", Model: "m", APIKeys: []string{"k1", "k2"}})
	require.Equal(t, 2, s.ActiveKeys())

	scores := s.Score(context.Background(), testItems(1), "profile")
	assert.Equal(t, []float64{0}, scores)
	assert.Equal(t, 1, s.ActiveKeys(), "throttled key should rest")
}

func TestScorer_Score_FailedBatchIsolated(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		if calls == 1 {
			require.NoError(t, json.NewEncoder(w).Encode(completionResponse("garbage")))
			return
		}
		require.NoError(t, json.NewEncoder(w).Encode(completionResponse("[0.9]")))
	}))
	defer server.Close()

	s := NewScorer(Config{Endpoint: server.URL + "/v1", Model: "m", APIKeys: []string{"k"}, BatchSize: 2})
	scores := s.Score(context.Background(), testItems(3), "profile")
	assert.Equal(t, []float64{0, 0, 0.9}, scores, "one bad batch must not poison the others")
}

func TestParseScores(t *testing.T) {
	tests := []struct {
		name    string
		content string
		n       int
		want    []float64
		wantErr bool
	}{
		{"bare array", "[0.5, 0.6]", 2, []float64{0.5, 0.6}, false},
		{"surrounded by prose", "sure!\n[0.5]\nthanks", 1, []float64{0.5}, false},
		{"integers", "[0, 1]", 2, []float64{0, 1}, false},
		{"empty content", "", 1, nil, true},
		{"length mismatch", "[0.5, 0.6, 0.7]", 2, nil, true},
		{"not numbers", `["a", "b"]`, 2, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseScores(tt.content, tt.n)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
