package vectorizer

import (
	"errors"
	"math"
	"testing"

	"github.com/kailas-cloud/lexdex/internal/domain"
)

var corpus = []string{
	"What is the punishment for theft under IPC?",
	"What is the punishment for murder under IPC?",
	"How to get bail in criminal cases?",
	"How to file a consumer complaint for a defective product?",
}

func fitCorpus(t *testing.T) *VectorSpace {
	t.Helper()
	vs, err := Fit(corpus, DefaultOptions())
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	return vs
}

func TestFit_EmptyCorpus(t *testing.T) {
	if _, err := Fit(nil, DefaultOptions()); err == nil {
		t.Fatal("expected error for empty corpus")
	} else if !errors.Is(err, domain.ErrEmptyCorpus) {
		t.Fatalf("expected ErrEmptyCorpus, got %v", err)
	}
}

func TestEmbed_Deterministic(t *testing.T) {
	vs := fitCorpus(t)
	a := vs.Embed("punishment for theft")
	b := vs.Embed("punishment for theft")
	if len(a) != len(b) {
		t.Fatalf("vectors differ in length: %d vs %d", len(a), len(b))
	}
	for idx, w := range a {
		if b[idx] != w {
			t.Errorf("weight mismatch at %d: %v vs %v", idx, w, b[idx])
		}
	}
}

func TestEmbed_OutOfVocabulary(t *testing.T) {
	vs := fitCorpus(t)
	if vec := vs.Embed("zygomorphic quasar"); len(vec) != 0 {
		t.Errorf("expected zero vector for out-of-vocabulary text, got %v", vec)
	}
}

func TestEmbed_StopWordsOnly(t *testing.T) {
	vs := fitCorpus(t)
	if vec := vs.Embed("is the of and"); len(vec) != 0 {
		t.Errorf("expected zero vector for stop-word-only text, got %v", vec)
	}
}

func TestCosine_Reflexive(t *testing.T) {
	vs := fitCorpus(t)
	for _, text := range corpus {
		v := vs.Embed(text)
		if len(v) == 0 {
			t.Fatalf("corpus text %q embedded to zero vector", text)
		}
		if got := Cosine(v, v); math.Abs(got-1.0) > 1e-9 {
			t.Errorf("Cosine(v, v) = %v for %q, want 1.0", got, text)
		}
	}
}

func TestCosine_ZeroVector(t *testing.T) {
	vs := fitCorpus(t)
	v := vs.Embed(corpus[0])
	if got := Cosine(Vector{}, v); got != 0 {
		t.Errorf("Cosine(zero, v) = %v, want 0", got)
	}
	if got := Cosine(v, Vector{}); got != 0 {
		t.Errorf("Cosine(v, zero) = %v, want 0", got)
	}
	if got := Cosine(Vector{}, Vector{}); got != 0 {
		t.Errorf("Cosine(zero, zero) = %v, want 0", got)
	}
}

func TestCosine_RelatedBeatsUnrelated(t *testing.T) {
	vs := fitCorpus(t)
	query := vs.Embed("punishment for theft")
	theft := vs.Embed(corpus[0])
	consumer := vs.Embed(corpus[3])

	if Cosine(query, theft) <= Cosine(query, consumer) {
		t.Errorf("expected theft question to outscore consumer question: %v vs %v",
			Cosine(query, theft), Cosine(query, consumer))
	}
}

func TestCosine_Range(t *testing.T) {
	vs := fitCorpus(t)
	for _, a := range corpus {
		for _, b := range corpus {
			got := Cosine(vs.Embed(a), vs.Embed(b))
			if got < 0 || got > 1 {
				t.Errorf("Cosine(%q, %q) = %v out of [0,1]", a, b, got)
			}
		}
	}
}

func TestFit_MaxFeaturesCap(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxFeatures = 3
	vs, err := Fit(corpus, opts)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if vs.Size() != 3 {
		t.Errorf("expected vocabulary capped at 3, got %d", vs.Size())
	}
}

func TestNgrams(t *testing.T) {
	got := ngrams([]string{"a", "b", "c"}, 2)
	want := []string{"a", "b", "c", "a b", "b c"}
	if len(got) != len(want) {
		t.Fatalf("ngrams = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ngrams[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
