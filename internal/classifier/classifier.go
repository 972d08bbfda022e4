// Package classifier maps free-text queries to candidate legal domains using
// a static keyword dictionary. No learning, no external calls; the result is
// a pure function of the query and the loaded keyword map.
package classifier

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/lexdex/internal/domain"
)

// Match is one candidate domain with its confidence in [0,1].
type Match struct {
	Domain     domain.Domain
	Confidence float64
}

// Classifier holds the validated domain keyword map (read-only after New).
type Classifier struct {
	keywords map[domain.Domain][]string
}

// New validates a keyword map against the closed domain set. Every declared
// domain must have at least one keyword; unknown domain labels are rejected.
func New(keywords map[domain.Domain][]string) (*Classifier, error) {
	for d := range keywords {
		if !d.IsValid() {
			return nil, fmt.Errorf("%w: %q in keyword map", domain.ErrUnknownDomain, d)
		}
	}
	for _, d := range domain.Domains {
		if len(keywords[d]) == 0 {
			return nil, fmt.Errorf("no keywords declared for domain %q", d)
		}
	}
	cloned := make(map[domain.Domain][]string, len(keywords))
	for d, kws := range keywords {
		lowered := make([]string, len(kws))
		for i, kw := range kws {
			lowered[i] = strings.ToLower(strings.TrimSpace(kw))
		}
		cloned[d] = lowered
	}
	return &Classifier{keywords: cloned}, nil
}

// Default returns a classifier with the built-in keyword map.
func Default() *Classifier {
	c, err := New(DefaultKeywords())
	if err != nil {
		panic(err) // built-in map is always valid
	}
	return c
}

// DefaultKeywords is the built-in domain keyword dictionary.
func DefaultKeywords() map[domain.Domain][]string {
	return map[domain.Domain][]string{
		domain.IPC: {
			"ipc", "criminal", "murder", "theft", "assault", "section",
			"punishment", "crime", "offense", "penal code",
		},
		domain.Consumer: {
			"consumer", "defective", "product", "service", "complaint",
			"refund", "warranty", "forum", "seller",
		},
		domain.CrPC: {
			"crpc", "procedure", "arrest", "bail", "fir", "investigation",
			"trial", "magistrate", "warrant",
		},
		domain.Family: {
			"family", "marriage", "divorce", "custody", "maintenance",
			"alimony", "adoption", "matrimonial",
		},
		domain.Property: {
			"property", "land", "title", "deed", "registration", "mutation",
			"ownership", "inheritance", "estate",
		},
		domain.ITAct: {
			"cyber", "it act", "online", "internet", "hacking", "digital",
			"data", "privacy", "phishing", "fraud",
		},
	}
}

// Classify returns candidate domains ordered by descending confidence.
// Confidence for a domain is the sum of word-counts of its keywords found in
// the lower-cased query (multi-word phrases weigh more), normalized by the
// domain's keyword count and clamped to [0,1]. Zero-hit domains are omitted;
// ties keep domain declaration order. Keyword list order within a domain
// never affects the result.
func (c *Classifier) Classify(query string) []Match {
	queryLower := strings.ToLower(query)

	var matches []Match
	for _, d := range domain.Domains {
		var score float64
		for _, kw := range c.keywords[d] {
			if kw != "" && strings.Contains(queryLower, kw) {
				score += float64(len(strings.Fields(kw)))
			}
		}
		if score == 0 {
			continue
		}
		confidence := score / float64(len(c.keywords[d]))
		if confidence > 1 {
			confidence = 1
		}
		matches = append(matches, Match{Domain: d, Confidence: confidence})
	}

	// Stable sort preserves declaration order between equal confidences.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})
	return matches
}
