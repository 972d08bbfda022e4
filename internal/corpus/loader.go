// Package corpus loads the dataset files and builds the search index. All
// disk I/O in the service happens here, once at startup or reload; a
// malformed record fails the load so the service never serves a partially
// consistent corpus.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/lexdex/internal/classifier"
	"github.com/kailas-cloud/lexdex/internal/domain"
	"github.com/kailas-cloud/lexdex/internal/domain/qa"
	"github.com/kailas-cloud/lexdex/internal/index"
	"github.com/kailas-cloud/lexdex/internal/refextract"
	"github.com/kailas-cloud/lexdex/internal/vectorizer"
)

// Loader reads per-domain dataset files from a directory.
type Loader struct {
	dir         string
	buildGlobal bool
	opts        vectorizer.Options
	logger      *zap.Logger
}

// NewLoader creates a corpus loader for dir. Each declared domain may have a
// <domain>.json file; at least one must exist. When buildGlobal is set, an
// aggregate collection over every record is built as well.
func NewLoader(dir string, buildGlobal bool, opts vectorizer.Options, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{dir: dir, buildGlobal: buildGlobal, opts: opts, logger: logger}
}

// Load reads every present dataset file and builds the index.
func (l *Loader) Load() (*index.Index, error) {
	var (
		collections []*index.Collection
		all         []qa.Record
	)

	for _, d := range domain.Domains {
		path := filepath.Join(l.dir, string(d)+".json")
		records, err := l.loadDataset(path, d)
		if os.IsNotExist(err) {
			l.logger.Warn("dataset file missing, domain skipped",
				zap.String("domain", string(d)), zap.String("path", path))
			continue
		}
		if err != nil {
			return nil, err
		}

		col, err := index.BuildCollection(d, records, l.opts)
		if err != nil {
			return nil, err
		}
		collections = append(collections, col)
		all = append(all, records...)

		l.logger.Info("loaded collection",
			zap.String("domain", string(d)),
			zap.Int("records", col.Len()),
		)
	}

	if len(collections) == 0 {
		return nil, fmt.Errorf("%w: no dataset files in %s", domain.ErrEmptyCorpus, l.dir)
	}

	if l.buildGlobal {
		global, err := index.BuildCollection(domain.Global, all, l.opts)
		if err != nil {
			return nil, err
		}
		collections = append(collections, global)
		l.logger.Info("built global collection", zap.Int("records", global.Len()))
	}

	return index.New(collections)
}

// loadDataset reads one dataset file. Records with a missing question or
// answer abort the load with the offending index in the error; section and
// act references default from the answer text when absent.
func (l *Loader) loadDataset(path string, d domain.Domain) ([]qa.Record, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	var dtos []recordDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}

	records := make([]qa.Record, 0, len(dtos))
	for i, dto := range dtos {
		category := dto.Category
		if category == "" {
			category = string(d)
		}
		sections := dto.SectionRefs
		if len(sections) == 0 {
			sections = refextract.Sections(dto.Answer)
		}
		acts := dto.ActRefs
		if len(acts) == 0 {
			acts = refextract.Acts(dto.Answer)
		}

		rec, err := qa.New(dto.Question, dto.Answer, category, sections, acts)
		if err != nil {
			return nil, fmt.Errorf("dataset %s record %d: %w", path, i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// LoadKeywords reads a domain keyword map from a YAML file and builds a
// classifier from it. An empty path falls back to the built-in map.
func LoadKeywords(path string) (*classifier.Classifier, error) {
	if path == "" {
		return classifier.Default(), nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read keyword map %s: %w", path, err)
	}

	var dto keywordsDTO
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("parse keyword map %s: %w", path, err)
	}

	keywords := make(map[domain.Domain][]string, len(dto.Domains))
	for label, kws := range dto.Domains {
		d, err := domain.ParseDomain(label)
		if err != nil {
			return nil, fmt.Errorf("keyword map %s: %w", path, err)
		}
		keywords[d] = kws
	}

	c, err := classifier.New(keywords)
	if err != nil {
		return nil, fmt.Errorf("keyword map %s: %w", path, err)
	}
	return c, nil
}
