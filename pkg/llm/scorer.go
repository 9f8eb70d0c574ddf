// Package llm scores candidate items against a consumer profile using an
// OpenAI-compatible chat completion API. A scoring outage degrades to
// "nothing matched": the scorer always returns a score vector of the right
// length and never propagates an error to the caller.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/sashabaranov/go-openai"

	"github.com/leadscout/leadscout/pkg/domain"
	"github.com/leadscout/leadscout/pkg/pool"
)

// Scorer assigns relevance scores to (item, consumer profile) pairs in batches
type Scorer struct {
	endpoint    string
	model       string
	temperature float32
	maxTokens   int
	batchSize   int
	timeout     time.Duration
	keys        *pool.Pool[string]
	keyCooldown time.Duration
	now         func() time.Time
}

// Config holds scorer configuration
type Config struct {
	Endpoint    string
	Model       string
	Temperature float64
	MaxTokens   int
	BatchSize   int
	Timeout     time.Duration
	APIKeys     []string
	KeyCooldown time.Duration // rest period for a key after auth or rate-limit errors
}

// NewScorer creates a scorer with rotated API keys
func NewScorer(cfg Config) *Scorer {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 5
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 200
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.KeyCooldown == 0 {
		cfg.KeyCooldown = 10 * time.Minute
	}

	return &Scorer{
		endpoint:    cfg.Endpoint,
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
		maxTokens:   cfg.MaxTokens,
		batchSize:   cfg.BatchSize,
		timeout:     cfg.Timeout,
		keys:        pool.New(cfg.APIKeys...),
		keyCooldown: cfg.KeyCooldown,
		now:         time.Now,
	}
}

const systemPrompt = `You evaluate discussion posts for relevance to a business profile.
For each post decide how likely the author is a potential customer for the described business.
Score each post from 0.0 (irrelevant) to 1.0 (an obvious, actionable opportunity).
Respond with a bare JSON array of numbers, one per post, in the original order. No other text.`

// Score returns one relevance score per item, clamped to [0,1]. The output
// length always equals the input length. Items are scored in batches; a failed
// batch contributes zeros and does not affect other batches.
func (s *Scorer) Score(ctx context.Context, items []domain.CandidateItem, profileText string) []float64 {
	scores := make([]float64, len(items))

	for start := 0; start < len(items); start += s.batchSize {
		end := start + s.batchSize
		if end > len(items) {
			end = len(items)
		}

		batch, err := s.scoreBatch(ctx, items[start:end], profileText)
		if err != nil {
			lgr.Printf("[WARN] scoring batch of %d failed, using zero scores: %v", end-start, err)
			continue // zeros already in place
		}
		copy(scores[start:end], batch)
	}

	return scores
}

// ActiveKeys reports how many API keys are currently usable
func (s *Scorer) ActiveKeys() int {
	return s.keys.Active(s.now())
}

// scoreBatch runs one chat completion for a batch of items
func (s *Scorer) scoreBatch(ctx context.Context, items []domain.CandidateItem, profileText string) ([]float64, error) {
	lease, ok := s.keys.Acquire(s.now())
	if !ok {
		return nil, fmt.Errorf("no usable api key")
	}

	clientConfig := openai.DefaultConfig(lease.Value)
	if s.endpoint != "" {
		clientConfig.BaseURL = s.endpoint
	}
	client := openai.NewClientWithConfig(clientConfig)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: s.buildPrompt(items, profileText)},
		},
	})
	if err != nil {
		if isKeyError(err) {
			lease.Suspend(s.now().Add(s.keyCooldown))
		}
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty completion response")
	}

	return parseScores(resp.Choices[0].Message.Content, len(items))
}

// buildPrompt renders the profile and the numbered batch of posts
func (s *Scorer) buildPrompt(items []domain.CandidateItem, profileText string) string {
	var sb strings.Builder

	sb.WriteString("Business profile:\n")
	sb.WriteString(profileText)
	sb.WriteString("\n\nPosts:\n")

	for i, item := range items {
		sb.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, item.SourceFeed, item.Title))
		if item.Snippet != "" {
			snippet := item.Snippet
			if len(snippet) > 500 {
				snippet = snippet[:500] + "..."
			}
			sb.WriteString(fmt.Sprintf("   %s\n", snippet))
		}
	}

	sb.WriteString(fmt.Sprintf("\nRespond with a JSON array of exactly %d numbers.", len(items)))
	return sb.String()
}

// parseScores extracts a JSON array of n floats from the completion text.
// The model is not contractually guaranteed to return bare JSON, so the
// bracketed substring is located before parsing.
func parseScores(content string, n int) ([]float64, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || start >= end {
		return nil, fmt.Errorf("no json array found in response")
	}

	var scores []float64
	if err := json.Unmarshal([]byte(content[start:end+1]), &scores); err != nil {
		return nil, fmt.Errorf("parse scores: %w", err)
	}
	if len(scores) != n {
		return nil, fmt.Errorf("got %d scores for %d items", len(scores), n)
	}

	for i, v := range scores {
		if v < 0 {
			scores[i] = 0
		} else if v > 1 {
			scores[i] = 1
		}
	}
	return scores, nil
}

// isKeyError reports whether the error indicates a bad or throttled key
func isKeyError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusUnauthorized ||
			apiErr.HTTPStatusCode == http.StatusForbidden ||
			apiErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	return false
}
