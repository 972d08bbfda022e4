// Package qa holds the question/answer record aggregate.
package qa

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/lexdex/internal/domain"
)

// DefaultCategory is assigned to records loaded without a category.
const DefaultCategory = "general"

// Record is a single question/answer pair (immutable value object).
// Identity is the record's positional index within its collection.
type Record struct {
	question    string
	answer      string
	category    string
	sectionRefs []string
	actRefs     []string
}

// New validates and creates a Record. Question and answer are required;
// category defaults to DefaultCategory, reference lists may be empty.
func New(question, answer, category string, sectionRefs, actRefs []string) (Record, error) {
	if strings.TrimSpace(question) == "" {
		return Record{}, fmt.Errorf("%w: question is required", domain.ErrMalformedRecord)
	}
	if strings.TrimSpace(answer) == "" {
		return Record{}, fmt.Errorf("%w: answer is required", domain.ErrMalformedRecord)
	}
	if category = strings.ToLower(strings.TrimSpace(category)); category == "" {
		category = DefaultCategory
	}
	return Record{
		question:    question,
		answer:      answer,
		category:    category,
		sectionRefs: sectionRefs,
		actRefs:     actRefs,
	}, nil
}

// Question returns the stored question text.
func (r Record) Question() string { return r.question }

// Answer returns the stored answer text, always returned verbatim.
func (r Record) Answer() string { return r.answer }

// Category returns the record's category label.
func (r Record) Category() string { return r.category }

// SectionRefs returns statute section references attached to the record.
func (r Record) SectionRefs() []string { return r.sectionRefs }

// ActRefs returns act-name references attached to the record.
func (r Record) ActRefs() []string { return r.actRefs }
