package chi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/lexdex/internal/classifier"
	"github.com/kailas-cloud/lexdex/internal/domain"
	"github.com/kailas-cloud/lexdex/internal/domain/qa"
	"github.com/kailas-cloud/lexdex/internal/domain/search/request"
	"github.com/kailas-cloud/lexdex/internal/index"
	healthuc "github.com/kailas-cloud/lexdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/lexdex/internal/usecase/search"
	"github.com/kailas-cloud/lexdex/internal/vectorizer"
)

func testIndex(t *testing.T) *index.Index {
	t.Helper()
	datasets := map[domain.Domain][]struct{ q, a string }{
		domain.IPC: {
			{
				"What is the punishment for theft under Section 379?",
				"Theft is punishable with imprisonment of up to three years, or a fine, or both, under Section 379 IPC.",
			},
			{
				"What is Section 420 IPC and what is the punishment?",
				"Section 420 IPC punishes cheating and dishonestly inducing delivery of property, with imprisonment of up to seven years and a fine.",
			},
		},
		domain.Family: {
			{
				"How do I file for divorce?",
				"A divorce petition is filed before the family court under the applicable marriage act.",
			},
		},
	}

	var collections []*index.Collection
	for d, rows := range datasets {
		records := make([]qa.Record, 0, len(rows))
		for _, row := range rows {
			rec, err := qa.New(row.q, row.a, string(d), nil, nil)
			if err != nil {
				t.Fatalf("qa.New: %v", err)
			}
			records = append(records, rec)
		}
		col, err := index.BuildCollection(d, records, vectorizer.DefaultOptions())
		if err != nil {
			t.Fatalf("BuildCollection: %v", err)
		}
		collections = append(collections, col)
	}
	idx, err := index.New(collections)
	if err != nil {
		t.Fatalf("index.New: %v", err)
	}
	return idx
}

func testRouter(t *testing.T, idx *index.Index) http.Handler {
	t.Helper()
	handle := index.NewHandle(idx)
	srv := NewServer(
		searchuc.New(handle, classifier.Default()),
		healthuc.New(handle),
		Tunables{
			Threshold:        request.DefaultThreshold,
			Floor:            request.DefaultFloor,
			BoostWeight:      request.DefaultBoostWeight,
			MaxSupplementary: request.DefaultMaxSupplementary,
		},
		zap.NewNop(),
	)
	r := chi.NewRouter()
	srv.Routes(r)
	return r
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestChat(t *testing.T) {
	h := testRouter(t, testIndex(t))

	rec := postJSON(t, h, "/v1/chat", `{"message": "What is Section 420 IPC and what is the punishment?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Response   string   `json:"response"`
		Confidence string   `json:"confidence"`
		Category   string   `json:"category"`
		Sources    []string `json:"sources"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(resp.Response, "Section 420 IPC punishes cheating") {
		t.Errorf("response missing the answer text:\n%s", resp.Response)
	}
	if resp.Confidence != "1.000" {
		t.Errorf("confidence = %q, want %q", resp.Confidence, "1.000")
	}
	if resp.Category != "ipc" {
		t.Errorf("category = %q, want %q", resp.Category, "ipc")
	}
	if len(resp.Sources) != 1 || resp.Sources[0] != "ipc" {
		t.Errorf("sources = %v, want [ipc]", resp.Sources)
	}
}

func TestChat_NoMatch(t *testing.T) {
	h := testRouter(t, testIndex(t))

	rec := postJSON(t, h, "/v1/chat", `{"message": "recipe for lentil soup"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Response   string `json:"response"`
		Confidence string `json:"confidence"`
		Category   string `json:"category"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Category != "unknown" {
		t.Errorf("category = %q, want %q", resp.Category, "unknown")
	}
	if resp.Confidence != "0.000" {
		t.Errorf("confidence = %q, want %q", resp.Confidence, "0.000")
	}
	if !strings.Contains(resp.Response, "rephrase") {
		t.Errorf("no-match response missing guidance:\n%s", resp.Response)
	}
}

func TestSearch(t *testing.T) {
	h := testRouter(t, testIndex(t))

	rec := postJSON(t, h, "/v1/search", `{"message": "What is the punishment for theft under Section 379?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Answer     string  `json:"answer"`
		Confidence float64 `json:"confidence"`
		NoMatch    bool    `json:"no_match"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.NoMatch {
		t.Fatal("no_match = true for a verbatim question")
	}
	if resp.Confidence < 0.99 {
		t.Errorf("confidence = %v, want >= 0.99", resp.Confidence)
	}
	if !strings.HasPrefix(resp.Answer, "Theft is punishable") {
		t.Errorf("answer = %q", resp.Answer)
	}
}

func TestSearch_DomainHint(t *testing.T) {
	h := testRouter(t, testIndex(t))

	rec := postJSON(t, h, "/v1/search", `{"message": "How do I file for divorce?", "domain": "family"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Sources []string `json:"sources"`
		NoMatch bool     `json:"no_match"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.NoMatch {
		t.Fatal("no_match = true for a verbatim question")
	}
	if len(resp.Sources) != 1 || resp.Sources[0] != "family" {
		t.Errorf("sources = %v, want [family]", resp.Sources)
	}
}

func TestDecodeErrors(t *testing.T) {
	h := testRouter(t, testIndex(t))

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"invalid json", `{"message": `, "bad_request"},
		{"blank message", `{"message": "   "}`, "empty_query"},
		{"unknown domain", `{"message": "theft", "domain": "maritime"}`, "unknown_domain"},
		{"over-long message", `{"message": "` + strings.Repeat("a", request.MaxQueryLength+1) + `"}`, "bad_request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h, "/v1/chat", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			var resp struct {
				Code string `json:"code"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("error code = %q, want %q", resp.Code, tt.wantCode)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	h := testRouter(t, testIndex(t))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Status      string `json:"status"`
		Collections int    `json:"collections"`
		Records     int    `json:"records"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want %q", resp.Status, "ok")
	}
	if resp.Collections != 2 || resp.Records != 3 {
		t.Errorf("collections/records = %d/%d, want 2/3", resp.Collections, resp.Records)
	}
}

func TestHealth_Unavailable(t *testing.T) {
	handle := &index.Handle{}
	srv := NewServer(
		searchuc.New(handle, classifier.Default()),
		healthuc.New(handle),
		Tunables{},
		zap.NewNop(),
	)
	r := chi.NewRouter()
	srv.Routes(r)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
