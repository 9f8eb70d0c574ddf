package monitor

import (
	"strings"

	"github.com/leadscout/leadscout/pkg/domain"
)

// matchConsumers pairs candidate items with the consumers whose keywords they
// hit. An item matches when any keyword appears as a case-insensitive substring
// of title+snippet. This is a cheap recall-biased pre-filter: its job is to
// avoid wasting scoring calls, precision is the scorer's job. Items matching
// no consumer are dropped.
func matchConsumers(items []domain.CandidateItem, consumers []domain.Consumer) map[string][]domain.CandidateItem {
	matches := make(map[string][]domain.CandidateItem)

	for _, consumer := range consumers {
		if len(consumer.Keywords) == 0 {
			continue
		}
		for _, item := range items {
			if matchesKeywords(item, consumer.Keywords) {
				matches[consumer.ID] = append(matches[consumer.ID], item)
			}
		}
	}
	return matches
}

// matchesKeywords checks a single item against a keyword set
func matchesKeywords(item domain.CandidateItem, keywords []string) bool {
	haystack := strings.ToLower(item.Title + " " + item.Snippet)
	for _, kw := range keywords {
		kw = strings.TrimSpace(strings.ToLower(kw))
		if kw == "" {
			continue
		}
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}
