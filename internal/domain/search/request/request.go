// Package request holds the validated search query value object.
package request

import (
	"fmt"

	"github.com/kailas-cloud/lexdex/internal/domain"
)

// Search parameter limits and defaults. The thresholds are tunable per
// deployment; these values come from the shipped configuration defaults.
const (
	MaxQueryLength = 4096

	// DefaultThreshold is the minimum score for accepting a single-domain
	// result without expanding search to the full corpus.
	DefaultThreshold = 0.35
	// DefaultFloor is the minimum score for a result to be considered at
	// all during full-corpus fallback.
	DefaultFloor = 0.25
	// DefaultBoostWeight blends keyword-overlap boosting into the cosine
	// score. Zero disables boosting.
	DefaultBoostWeight = 0.4
	// DefaultMaxSupplementary caps supplementary answers from other
	// collections.
	DefaultMaxSupplementary = 2
)

// Request is a validated search query.
type Request struct {
	query            string
	hint             domain.Domain
	hasHint          bool
	threshold        float64
	floor            float64
	boostWeight      float64
	maxSupplementary int
}

// Option overrides a tunable on a Request.
type Option func(*Request)

// WithHint restricts the initial candidate list to one domain, e.g. when the
// user queries from a domain-specific page.
func WithHint(d domain.Domain) Option {
	return func(r *Request) {
		r.hint = d
		r.hasHint = true
	}
}

// WithThresholds overrides the confidence threshold and inclusion floor.
func WithThresholds(threshold, floor float64) Option {
	return func(r *Request) {
		r.threshold = threshold
		r.floor = floor
	}
}

// WithBoostWeight overrides the keyword boost weight.
func WithBoostWeight(w float64) Option {
	return func(r *Request) { r.boostWeight = w }
}

// WithMaxSupplementary overrides the supplementary answer cap.
func WithMaxSupplementary(n int) Option {
	return func(r *Request) { r.maxSupplementary = n }
}

// New validates and normalizes search parameters. An empty or stop-word-only
// query is not an error here: it embeds to the zero vector and search
// resolves it to the no-match sentinel.
func New(query string, opts ...Option) (Request, error) {
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}

	r := Request{
		query:            query,
		threshold:        DefaultThreshold,
		floor:            DefaultFloor,
		boostWeight:      DefaultBoostWeight,
		maxSupplementary: DefaultMaxSupplementary,
	}
	for _, opt := range opts {
		opt(&r)
	}

	if r.hasHint && !r.hint.IsValid() {
		return Request{}, fmt.Errorf("%w: %q", domain.ErrUnknownDomain, r.hint)
	}
	if r.threshold < 0 || r.threshold > 1 {
		return Request{}, fmt.Errorf("threshold must be between 0 and 1, got %v", r.threshold)
	}
	if r.floor < 0 || r.floor > 1 {
		return Request{}, fmt.Errorf("inclusion floor must be between 0 and 1, got %v", r.floor)
	}
	if r.boostWeight < 0 || r.boostWeight > 1 {
		return Request{}, fmt.Errorf("boost weight must be between 0 and 1, got %v", r.boostWeight)
	}
	if r.maxSupplementary < 0 {
		r.maxSupplementary = 0
	}
	return r, nil
}

// Query returns the raw query text.
func (r *Request) Query() string { return r.query }

// Hint returns the domain hint and whether one was provided.
func (r *Request) Hint() (domain.Domain, bool) { return r.hint, r.hasHint }

// Threshold returns the confidence threshold.
func (r *Request) Threshold() float64 { return r.threshold }

// Floor returns the inclusion floor.
func (r *Request) Floor() float64 { return r.floor }

// BoostWeight returns the keyword boost weight.
func (r *Request) BoostWeight() float64 { return r.boostWeight }

// MaxSupplementary returns the supplementary answer cap.
func (r *Request) MaxSupplementary() int { return r.maxSupplementary }
