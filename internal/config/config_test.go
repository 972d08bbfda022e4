package config

import "testing"

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_FloorAboveThreshold(t *testing.T) {
	cfg := Config{
		HTTP:   HTTPConfig{Port: 8080},
		Search: SearchConfig{ConfidenceThreshold: 0.3, InclusionFloor: 0.5},
	}
	cfg.ApplyDefaults()

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error when inclusion floor exceeds confidence threshold")
	}
}

func TestValidate_BoostWeightOutOfRange(t *testing.T) {
	w := 1.5
	cfg := Config{
		HTTP:   HTTPConfig{Port: 8080},
		Search: SearchConfig{KeywordBoostWeight: &w},
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for boost weight above 1")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Corpus.Dir != "datasets" {
		t.Errorf("expected Corpus.Dir='datasets', got %q", cfg.Corpus.Dir)
	}
	if cfg.Corpus.BuildGlobal == nil || !*cfg.Corpus.BuildGlobal {
		t.Error("expected BuildGlobal to default to true")
	}
	if cfg.Corpus.Vectorizer.NGramMax != 2 {
		t.Errorf("expected NGramMax=2, got %d", cfg.Corpus.Vectorizer.NGramMax)
	}
	if cfg.Corpus.Vectorizer.MaxFeatures != 10000 {
		t.Errorf("expected MaxFeatures=10000, got %d", cfg.Corpus.Vectorizer.MaxFeatures)
	}
	if cfg.Search.ConfidenceThreshold != 0.35 {
		t.Errorf("expected ConfidenceThreshold=0.35, got %v", cfg.Search.ConfidenceThreshold)
	}
	if cfg.Search.InclusionFloor != 0.25 {
		t.Errorf("expected InclusionFloor=0.25, got %v", cfg.Search.InclusionFloor)
	}
	if cfg.Search.BoostWeight() != 0.4 {
		t.Errorf("expected BoostWeight=0.4, got %v", cfg.Search.BoostWeight())
	}
	if cfg.Search.MaxSupplementary != 2 {
		t.Errorf("expected MaxSupplementary=2, got %d", cfg.Search.MaxSupplementary)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	f := false
	zero := 0.0
	cfg := Config{
		HTTP:   HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Corpus: CorpusConfig{Dir: "/srv/corpus", BuildGlobal: &f},
		Search: SearchConfig{ConfidenceThreshold: 0.5, InclusionFloor: 0.1, KeywordBoostWeight: &zero},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Corpus.Dir != "/srv/corpus" {
		t.Errorf("expected Corpus.Dir='/srv/corpus', got %q", cfg.Corpus.Dir)
	}
	if *cfg.Corpus.BuildGlobal {
		t.Error("expected explicit BuildGlobal=false to survive defaults")
	}
	if cfg.Search.ConfidenceThreshold != 0.5 {
		t.Errorf("expected ConfidenceThreshold=0.5, got %v", cfg.Search.ConfidenceThreshold)
	}
	if cfg.Search.BoostWeight() != 0 {
		t.Errorf("expected explicit boost weight 0 to disable boosting, got %v", cfg.Search.BoostWeight())
	}
}
