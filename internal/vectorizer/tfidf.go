// Package vectorizer implements TF-IDF embedding over a fixed vocabulary.
//
// A VectorSpace is fitted once per collection at load time and never mutated
// afterwards; queries are embedded against it at serve time. Terms outside
// the fitted vocabulary contribute nothing, so an out-of-vocabulary or
// stop-word-only query embeds to the zero vector.
package vectorizer

import (
	"math"
	"sort"

	"github.com/kailas-cloud/lexdex/internal/domain"
	"github.com/kailas-cloud/lexdex/internal/textproc"
)

// Options tunes vocabulary construction.
type Options struct {
	// NGramMax includes n-grams up to this length (1 = unigrams only).
	NGramMax int
	// MinDF drops terms appearing in fewer documents.
	MinDF int
	// MaxDFRatio drops terms appearing in more than this fraction of
	// documents (0 disables the cap).
	MaxDFRatio float64
	// MaxFeatures keeps only the most frequent terms (0 = unlimited).
	MaxFeatures int
}

// DefaultOptions mirrors the training defaults: unigrams and bigrams, no
// document-frequency floor (collections can be small), 85% ceiling.
func DefaultOptions() Options {
	return Options{NGramMax: 2, MinDF: 1, MaxDFRatio: 0.85, MaxFeatures: 10000}
}

// Vector is a sparse L2-normalized term-weight vector, keyed by vocabulary
// index. The zero-length vector is the zero vector.
type Vector map[int]float64

// VectorSpace is a fitted vocabulary with IDF weights (immutable).
type VectorSpace struct {
	vocab map[string]int
	idf   []float64
	opts  Options
}

// Fit builds a VectorSpace from a corpus of raw texts.
func Fit(corpus []string, opts Options) (*VectorSpace, error) {
	if len(corpus) == 0 {
		return nil, domain.ErrEmptyCorpus
	}
	if opts.NGramMax < 1 {
		opts.NGramMax = 1
	}
	if opts.MinDF < 1 {
		opts.MinDF = 1
	}

	// Document frequency per term.
	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]bool)
		for _, term := range ngrams(textproc.Tokens(text), opts.NGramMax) {
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}

	maxDF := len(corpus)
	if opts.MaxDFRatio > 0 && len(corpus) > 1 {
		maxDF = int(math.Ceil(opts.MaxDFRatio * float64(len(corpus))))
	}

	terms := make([]string, 0, len(df))
	for term, n := range df {
		if n >= opts.MinDF && n <= maxDF {
			terms = append(terms, term)
		}
	}
	if len(terms) == 0 {
		// Degenerate corpus (e.g. every record identical): keep everything
		// rather than fitting an empty vocabulary.
		for term := range df {
			terms = append(terms, term)
		}
	}
	if opts.MaxFeatures > 0 && len(terms) > opts.MaxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if df[terms[i]] != df[terms[j]] {
				return df[terms[i]] > df[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:opts.MaxFeatures]
	}
	// Deterministic vocabulary indices regardless of map iteration order.
	sort.Strings(terms)

	vs := &VectorSpace{
		vocab: make(map[string]int, len(terms)),
		idf:   make([]float64, len(terms)),
		opts:  opts,
	}
	n := float64(len(corpus))
	for i, term := range terms {
		vs.vocab[term] = i
		// Smoothed IDF, always positive.
		vs.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return vs, nil
}

// Size returns the vocabulary size.
func (vs *VectorSpace) Size() int { return len(vs.vocab) }

// Embed converts text into a sparse L2-normalized TF-IDF vector. Unknown
// terms are ignored; text with no in-vocabulary terms embeds to the zero
// vector.
func (vs *VectorSpace) Embed(text string) Vector {
	vec := make(Vector)
	for _, term := range ngrams(textproc.Tokens(text), vs.opts.NGramMax) {
		if idx, ok := vs.vocab[term]; ok {
			vec[idx] += vs.idf[idx]
		}
	}
	normalize(vec)
	return vec
}

// Cosine returns the cosine similarity of two normalized vectors in [0,1].
// Either side being the zero vector yields 0.
func Cosine(a, b Vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for idx, w := range a {
		dot += w * b[idx]
	}
	// Guard against float drift at the boundaries.
	return math.Min(math.Max(dot, 0), 1)
}

func normalize(vec Vector) {
	var sum float64
	for _, w := range vec {
		sum += w * w
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for idx := range vec {
		vec[idx] /= norm
	}
}

// ngrams expands tokens into all n-grams up to max, joined with a space.
func ngrams(tokens []string, max int) []string {
	if max <= 1 {
		return tokens
	}
	out := make([]string, 0, len(tokens)*max)
	out = append(out, tokens...)
	for n := 2; n <= max; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			gram := tokens[i]
			for j := 1; j < n; j++ {
				gram += " " + tokens[i+j]
			}
			out = append(out, gram)
		}
	}
	return out
}
