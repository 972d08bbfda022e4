// Package index holds the read-only search index: per-domain collections of
// records with precomputed TF-IDF vectors, plus an atomic handle for hot
// reload. Nothing in this package mutates after Build; reload means swapping
// a whole new Index into the Handle.
package index

import (
	"fmt"
	"sync/atomic"

	"github.com/kailas-cloud/lexdex/internal/domain"
	"github.com/kailas-cloud/lexdex/internal/domain/qa"
	"github.com/kailas-cloud/lexdex/internal/textproc"
	"github.com/kailas-cloud/lexdex/internal/vectorizer"
)

// Collection is one domain's records with their vector space and precomputed
// question vectors (immutable after BuildCollection).
type Collection struct {
	label            domain.Domain
	records          []qa.Record
	space            *vectorizer.VectorSpace
	vectors          []vectorizer.Vector
	questionKeywords []map[string]bool
	answerKeywords   []map[string]bool
}

// BuildCollection fits a vector space on the records' questions and embeds
// every question. Invariant: one vector per record, same indexing.
func BuildCollection(label domain.Domain, records []qa.Record, opts vectorizer.Options) (*Collection, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: collection %q", domain.ErrEmptyCorpus, label)
	}

	questions := make([]string, len(records))
	for i := range records {
		questions[i] = records[i].Question()
	}

	space, err := vectorizer.Fit(questions, opts)
	if err != nil {
		return nil, fmt.Errorf("fit collection %q: %w", label, err)
	}

	c := &Collection{
		label:            label,
		records:          records,
		space:            space,
		vectors:          make([]vectorizer.Vector, len(records)),
		questionKeywords: make([]map[string]bool, len(records)),
		answerKeywords:   make([]map[string]bool, len(records)),
	}
	for i := range records {
		c.vectors[i] = space.Embed(records[i].Question())
		c.questionKeywords[i] = textproc.LegalKeywords(records[i].Question())
		c.answerKeywords[i] = textproc.LegalKeywords(records[i].Answer())
	}
	return c, nil
}

// Label returns the collection's domain label.
func (c *Collection) Label() domain.Domain { return c.label }

// Len returns the number of records.
func (c *Collection) Len() int { return len(c.records) }

// Record returns the record at index i.
func (c *Collection) Record(i int) qa.Record { return c.records[i] }

// Best scans every record and returns the index and score of the single best
// match for query. Score is cosine similarity against this collection's
// vector space, lifted toward 1 by keyword overlap:
//
//	score = cosine + boostWeight*overlap*(1-cosine)
//
// so a verbatim question match stays at 1.0 and scores remain in [0,1].
// Equal scores resolve to the lowest record index. ok is false when every
// score is zero.
func (c *Collection) Best(query string, boostWeight float64) (idx int, score float64, ok bool) {
	queryVec := c.space.Embed(query)
	queryKW := textproc.LegalKeywords(query)

	idx = -1
	for i := range c.records {
		s := vectorizer.Cosine(queryVec, c.vectors[i])
		if boostWeight > 0 {
			s += boostWeight * c.keywordOverlap(i, queryKW) * (1 - s)
		}
		if s > score {
			idx, score = i, s
		}
	}
	return idx, score, idx >= 0
}

// keywordOverlap scores how much of the query's legal keyword set appears in
// record i. Question hits weigh 70%, answer hits 30%, matching the retrieval
// tuning of the trained models.
func (c *Collection) keywordOverlap(i int, queryKW map[string]bool) float64 {
	if len(queryKW) == 0 {
		return 0
	}
	var inQuestion, inAnswer int
	for kw := range queryKW {
		if c.questionKeywords[i][kw] {
			inQuestion++
		}
		if c.answerKeywords[i][kw] {
			inAnswer++
		}
	}
	n := float64(len(queryKW))
	overlap := 0.7*(float64(inQuestion)/n) + 0.3*(float64(inAnswer)/n)
	if overlap > 1 {
		overlap = 1
	}
	return overlap
}

// Index is the immutable set of collections served to queries.
type Index struct {
	collections map[domain.Domain]*Collection
	order       []domain.Domain
}

// New assembles an index from built collections. Order follows domain
// declaration order with the global aggregate last; this is the canonical
// iteration order for full-corpus fallback.
func New(collections []*Collection) (*Index, error) {
	idx := &Index{collections: make(map[domain.Domain]*Collection, len(collections))}
	for _, c := range collections {
		if _, dup := idx.collections[c.Label()]; dup {
			return nil, fmt.Errorf("duplicate collection %q", c.Label())
		}
		idx.collections[c.Label()] = c
	}
	for _, d := range domain.Domains {
		if _, ok := idx.collections[d]; ok {
			idx.order = append(idx.order, d)
		}
	}
	if _, ok := idx.collections[domain.Global]; ok {
		idx.order = append(idx.order, domain.Global)
	}
	if len(idx.order) != len(idx.collections) {
		return nil, fmt.Errorf("%w: index contains an undeclared collection", domain.ErrUnknownDomain)
	}
	if len(idx.order) == 0 {
		return nil, domain.ErrEmptyCorpus
	}
	return idx, nil
}

// Collection returns the collection for d.
func (idx *Index) Collection(d domain.Domain) (*Collection, bool) {
	c, ok := idx.collections[d]
	return c, ok
}

// Order returns all collection labels in canonical order.
func (idx *Index) Order() []domain.Domain { return idx.order }

// Len returns the number of collections.
func (idx *Index) Len() int { return len(idx.collections) }

// Records returns the total record count across all collections.
func (idx *Index) Records() int {
	var n int
	for _, c := range idx.collections {
		n += c.Len()
	}
	return n
}

// Handle publishes an Index to concurrent readers. Reload replaces the whole
// Index atomically so readers never observe a half-updated collection.
type Handle struct {
	ptr atomic.Pointer[Index]
}

// NewHandle creates a handle serving idx.
func NewHandle(idx *Index) *Handle {
	h := &Handle{}
	h.ptr.Store(idx)
	return h
}

// Current returns the index being served.
func (h *Handle) Current() *Index { return h.ptr.Load() }

// Swap atomically replaces the served index.
func (h *Handle) Swap(idx *Index) { h.ptr.Store(idx) }
