package search

import (
	"github.com/kailas-cloud/lexdex/internal/classifier"
	"github.com/kailas-cloud/lexdex/internal/index"
)

// IndexSource supplies the index snapshot a query runs against. The snapshot
// must be immutable; hot reload happens by swapping the source's current
// index, never by mutating one.
type IndexSource interface {
	Current() *index.Index
}

// QueryClassifier maps a query to candidate domains by confidence.
type QueryClassifier interface {
	Classify(query string) []classifier.Match
}
