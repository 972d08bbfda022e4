// Package search orchestrates multi-collection retrieval: classify the query
// into candidate domains, search those collections first, fall back to the
// full corpus when confidence is low, and merge the ranked results into a
// combined answer.
package search

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/lexdex/internal/domain"
	"github.com/kailas-cloud/lexdex/internal/domain/search/request"
	"github.com/kailas-cloud/lexdex/internal/domain/search/result"
	"github.com/kailas-cloud/lexdex/internal/index"
	"github.com/kailas-cloud/lexdex/internal/logger"
	"github.com/kailas-cloud/lexdex/internal/metrics"
)

// answerDedupePrefix is how many leading characters of two answers must
// differ for them to count as distinct supplementary entries.
const answerDedupePrefix = 100

// Search outcomes, used as metric labels.
const (
	outcomeDirect   = "direct"
	outcomeFallback = "fallback"
	outcomeNoMatch  = "no_match"
)

// Service runs queries against the current search index.
type Service struct {
	source     IndexSource
	classifier QueryClassifier
}

// New creates a search service.
func New(source IndexSource, classifier QueryClassifier) *Service {
	return &Service{source: source, classifier: classifier}
}

// hit is one collection's local best, tagged with its search-order position
// for deterministic tie-breaking.
type hit struct {
	res  result.Result
	rank int
}

// Search executes the multi-collection search. It never fails on a missed
// lookup: a query with no hit above the inclusion floor yields the sentinel
// no-match answer.
//
// Steps: pick candidate domains (hint, else classifier, else everything);
// take each candidate collection's single best record; accept directly when
// the best score reaches the confidence threshold; otherwise expand to every
// remaining collection, keep results above the inclusion floor, and merge
// the top hits from distinct collections.
func (s *Service) Search(ctx context.Context, req request.Request) (result.Combined, error) {
	start := time.Now()
	log := logger.FromContext(ctx)
	idx := s.source.Current()
	if idx == nil {
		return result.Combined{}, domain.ErrCollectionNotFound
	}

	candidates := s.candidates(req, idx)

	var (
		hits    []hit
		tried   = make(map[domain.Domain]bool, len(candidates))
		rank    int
		best    result.Result
		hasBest bool
	)
	for _, d := range candidates {
		col, ok := idx.Collection(d)
		if !ok {
			continue
		}
		tried[d] = true
		if r, ok := bestOf(col, req); ok {
			hits = append(hits, hit{res: r, rank: rank})
			rank++
			if !hasBest || r.Score() > best.Score() {
				best, hasBest = r, true
			}
		}
	}

	// Confident single-collection match: return it alone.
	if hasBest && best.Score() >= req.Threshold() {
		s.observe(outcomeDirect, best, start)
		log.Debug("search direct hit",
			zap.String("collection", string(best.Source())),
			zap.Float64("score", best.Score()),
		)
		return result.NewCombined(best, nil), nil
	}

	// Low confidence: expand to every collection not yet tried.
	for _, d := range idx.Order() {
		if tried[d] {
			continue
		}
		col, _ := idx.Collection(d)
		if r, ok := bestOf(col, req); ok {
			hits = append(hits, hit{res: r, rank: rank})
			rank++
		}
	}

	ranked := rankAboveFloor(hits, req.Floor())
	if len(ranked) == 0 {
		s.observeNoMatch(start)
		log.Debug("search found nothing above inclusion floor")
		return result.NoMatch(), nil
	}

	primary := ranked[0]
	supplementary := pickSupplementary(ranked[1:], primary, req.MaxSupplementary())

	s.observe(outcomeFallback, primary, start)
	log.Debug("search fallback hit",
		zap.String("collection", string(primary.Source())),
		zap.Float64("score", primary.Score()),
		zap.Int("supplementary", len(supplementary)),
	)
	return result.NewCombined(primary, supplementary), nil
}

// candidates picks the initial collections to search: the hint when given,
// else every domain the classifier scores above zero, else all collections.
func (s *Service) candidates(req request.Request, idx *index.Index) []domain.Domain {
	if hint, ok := req.Hint(); ok {
		return []domain.Domain{hint}
	}
	matches := s.classifier.Classify(req.Query())
	if len(matches) == 0 {
		return idx.Order()
	}
	candidates := make([]domain.Domain, 0, len(matches))
	for _, m := range matches {
		candidates = append(candidates, m.Domain)
	}
	return candidates
}

// bestOf wraps a collection's best record as a Result.
func bestOf(col *index.Collection, req request.Request) (result.Result, bool) {
	i, score, ok := col.Best(req.Query(), req.BoostWeight())
	if !ok {
		return result.Result{}, false
	}
	rec := col.Record(i)
	return result.New(rec.Answer(), score, rec.Category(), col.Label(), i), true
}

// rankAboveFloor keeps hits above the inclusion floor, ordered by descending
// score with ties resolved by search order, then record index.
func rankAboveFloor(hits []hit, floor float64) []result.Result {
	kept := make([]hit, 0, len(hits))
	for _, h := range hits {
		if h.res.Score() > floor {
			kept = append(kept, h)
		}
	}
	// Insertion sort keeps this allocation-light; hit counts are tiny (one
	// per collection).
	for i := 1; i < len(kept); i++ {
		for j := i; j > 0 && less(kept[j], kept[j-1]); j-- {
			kept[j], kept[j-1] = kept[j-1], kept[j]
		}
	}
	out := make([]result.Result, len(kept))
	for i, h := range kept {
		out[i] = h.res
	}
	return out
}

func less(a, b hit) bool {
	if a.res.Score() != b.res.Score() {
		return a.res.Score() > b.res.Score()
	}
	if a.rank != b.rank {
		return a.rank < b.rank
	}
	return a.res.RecordIndex() < b.res.RecordIndex()
}

// pickSupplementary selects up to max follow-up results, each from a
// collection distinct from the primary's and from each other, skipping
// near-identical answer texts.
func pickSupplementary(rest []result.Result, primary result.Result, max int) []result.Result {
	var out []result.Result
	used := map[domain.Domain]bool{primary.Source(): true}
	for _, r := range rest {
		if len(out) >= max {
			break
		}
		if used[r.Source()] || sameAnswer(r.Answer(), primary.Answer()) {
			continue
		}
		dup := false
		for _, picked := range out {
			if sameAnswer(r.Answer(), picked.Answer()) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		used[r.Source()] = true
		out = append(out, r)
	}
	return out
}

// sameAnswer treats answers sharing their first hundred characters as
// duplicates; the corpus repeats identical answers across domain datasets.
func sameAnswer(a, b string) bool {
	return prefix(a, answerDedupePrefix) == prefix(b, answerDedupePrefix)
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func (s *Service) observe(outcome string, primary result.Result, start time.Time) {
	metrics.SearchQueriesTotal.WithLabelValues(outcome).Inc()
	metrics.SearchDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	metrics.SearchPrimaryScore.Observe(primary.Score())
	metrics.SearchCollectionHitsTotal.WithLabelValues(string(primary.Source())).Inc()
}

func (s *Service) observeNoMatch(start time.Time) {
	metrics.SearchQueriesTotal.WithLabelValues(outcomeNoMatch).Inc()
	metrics.SearchDuration.WithLabelValues(outcomeNoMatch).Observe(time.Since(start).Seconds())
	metrics.SearchPrimaryScore.Observe(0)
}
