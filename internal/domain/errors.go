package domain

import "errors"

var (
	// ErrUnknownDomain signals a domain label outside the declared set.
	ErrUnknownDomain = errors.New("unknown domain")
	// ErrMalformedRecord signals a corpus record missing a required field.
	ErrMalformedRecord = errors.New("malformed corpus record")
	// ErrCollectionNotFound signals a missing collection in the index.
	ErrCollectionNotFound = errors.New("collection not found")
	// ErrEmptyCorpus signals that a collection was built with no records.
	ErrEmptyCorpus = errors.New("empty corpus")
)
