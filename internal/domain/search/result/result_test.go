package result

import (
	"reflect"
	"testing"

	"github.com/kailas-cloud/lexdex/internal/domain"
)

func TestNewCombined_SourceOrder(t *testing.T) {
	primary := New("Primary answer.", 0.82, "theft", domain.IPC, 0)
	supplementary := []Result{
		New("From consumer law.", 0.41, "refunds", domain.Consumer, 2),
		New("From family law.", 0.31, "custody", domain.Family, 1),
	}

	c := NewCombined(primary, supplementary)
	want := []domain.Domain{domain.IPC, domain.Consumer, domain.Family}
	if !reflect.DeepEqual(c.Sources(), want) {
		t.Errorf("Sources() = %v, want %v", c.Sources(), want)
	}
	if got := c.Primary().Answer(); got != "Primary answer." {
		t.Errorf("Primary().Answer() = %q", got)
	}
	if len(c.Supplementary()) != 2 {
		t.Errorf("Supplementary() has %d entries, want 2", len(c.Supplementary()))
	}
}

func TestNewCombined_SourcesDeduped(t *testing.T) {
	primary := New("Primary.", 0.9, "theft", domain.IPC, 0)
	supplementary := []Result{
		New("Also criminal.", 0.5, "assault", domain.IPC, 3),
		New("Cyber angle.", 0.4, "hacking", domain.ITAct, 0),
	}

	c := NewCombined(primary, supplementary)
	want := []domain.Domain{domain.IPC, domain.ITAct}
	if !reflect.DeepEqual(c.Sources(), want) {
		t.Errorf("Sources() = %v, want %v", c.Sources(), want)
	}
}

func TestNoMatch(t *testing.T) {
	c := NoMatch()
	if !c.IsNoMatch() {
		t.Error("NoMatch().IsNoMatch() = false")
	}
	p := c.Primary()
	if p.Score() != 0 {
		t.Errorf("sentinel score = %v, want 0", p.Score())
	}
	if p.Category() != UnknownCategory {
		t.Errorf("sentinel category = %q, want %q", p.Category(), UnknownCategory)
	}
	if p.RecordIndex() != -1 {
		t.Errorf("sentinel record index = %d, want -1", p.RecordIndex())
	}
	if p.Answer() == "" {
		t.Error("sentinel answer must carry guidance text")
	}
	if len(c.Supplementary()) != 0 {
		t.Errorf("sentinel carries supplementary hits: %v", c.Supplementary())
	}
}

func TestIsNoMatch_RealHit(t *testing.T) {
	r := New("An answer.", 0.7, "theft", domain.IPC, 0)
	if r.IsNoMatch() {
		t.Error("real hit reported as no-match")
	}
	c := NewCombined(r, nil)
	if c.IsNoMatch() {
		t.Error("combined real hit reported as no-match")
	}
}
