// Package health reports service readiness: the corpus must be loaded and
// non-empty before the service answers queries.
package health

import (
	"context"

	"github.com/kailas-cloud/lexdex/internal/index"
)

// IndexSource supplies the currently served index.
type IndexSource interface {
	Current() *index.Index
}

// Status is the health snapshot returned to callers.
type Status struct {
	Healthy     bool
	Collections int
	Records     int
}

// Service checks corpus readiness.
type Service struct {
	source IndexSource
}

// New creates a health service.
func New(source IndexSource) *Service {
	return &Service{source: source}
}

// Check reports whether the service can answer queries.
func (s *Service) Check(_ context.Context) Status {
	idx := s.source.Current()
	if idx == nil || idx.Len() == 0 {
		return Status{}
	}
	return Status{
		Healthy:     true,
		Collections: idx.Len(),
		Records:     idx.Records(),
	}
}
