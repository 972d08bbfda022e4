// Package result holds search hit and combined answer value objects.
package result

import "github.com/kailas-cloud/lexdex/internal/domain"

// UnknownCategory marks the sentinel no-match result.
const UnknownCategory = "unknown"

// Result is a single search hit against one collection.
type Result struct {
	answer      string
	score       float64
	category    string
	source      domain.Domain
	recordIndex int
}

// New creates a search result.
func New(answer string, score float64, category string, source domain.Domain, recordIndex int) Result {
	return Result{
		answer:      answer,
		score:       score,
		category:    category,
		source:      source,
		recordIndex: recordIndex,
	}
}

// Answer returns the stored answer text.
func (r Result) Answer() string { return r.answer }

// Score returns the relevance score in [0,1].
func (r Result) Score() float64 { return r.score }

// Category returns the matched record's category.
func (r Result) Category() string { return r.category }

// Source returns the collection that produced the hit.
func (r Result) Source() domain.Domain { return r.source }

// RecordIndex returns the matched record's position in its collection.
func (r Result) RecordIndex() int { return r.recordIndex }

// IsNoMatch reports whether r is the sentinel no-match result.
func (r Result) IsNoMatch() bool { return r.category == UnknownCategory && r.score == 0 }

// Combined is the full answer for one query: a primary hit plus up to two
// supplementary hits from other collections.
type Combined struct {
	primary       Result
	supplementary []Result
	sources       []domain.Domain
}

// NewCombined assembles a combined answer. Sources preserves the order in
// which collections contributed (primary first).
func NewCombined(primary Result, supplementary []Result) Combined {
	sources := []domain.Domain{primary.Source()}
	for _, s := range supplementary {
		if !containsDomain(sources, s.Source()) {
			sources = append(sources, s.Source())
		}
	}
	return Combined{primary: primary, supplementary: supplementary, sources: sources}
}

// NoMatch returns the sentinel combined answer for queries with no hit above
// the inclusion floor anywhere. Callers present it however they choose; it is
// never reported as an error.
func NoMatch() Combined {
	return Combined{
		primary: New(
			"I couldn't find a relevant answer in any of the legal datasets. "+
				"Please rephrase your question with more specific details about "+
				"the legal issue, relevant sections, or acts.",
			0, UnknownCategory, "", -1,
		),
	}
}

// Primary returns the best-scoring hit.
func (c *Combined) Primary() Result { return c.primary }

// Supplementary returns additional hits from distinct collections.
func (c *Combined) Supplementary() []Result { return c.supplementary }

// Sources returns the collections contributing to primary and supplementary.
func (c *Combined) Sources() []domain.Domain { return c.sources }

// IsNoMatch reports whether c is the sentinel no-match answer.
func (c *Combined) IsNoMatch() bool { return c.primary.IsNoMatch() }

func containsDomain(ds []domain.Domain, d domain.Domain) bool {
	for _, x := range ds {
		if x == d {
			return true
		}
	}
	return false
}
