// Package chi is the HTTP transport: thin handlers that decode requests,
// call the use case services, and encode JSON replies.
package chi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/lexdex/internal/domain"
	"github.com/kailas-cloud/lexdex/internal/domain/search/request"
	"github.com/kailas-cloud/lexdex/internal/domain/search/result"
	"github.com/kailas-cloud/lexdex/internal/logger"
	"github.com/kailas-cloud/lexdex/internal/usecase/format"
	healthuc "github.com/kailas-cloud/lexdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/lexdex/internal/usecase/search"
)

// Tunables carries the configured search defaults applied to every request.
type Tunables struct {
	Threshold        float64
	Floor            float64
	BoostWeight      float64
	MaxSupplementary int
}

// Server holds the HTTP handlers.
type Server struct {
	search   *searchuc.Service
	health   *healthuc.Service
	tunables Tunables
	logger   *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(search *searchuc.Service, health *healthuc.Service, tunables Tunables, logger *zap.Logger) *Server {
	return &Server{search: search, health: health, tunables: tunables, logger: logger}
}

// Routes mounts all endpoints on r.
func (s *Server) Routes(r chi.Router) {
	r.Post("/v1/chat", s.handleChat)
	r.Post("/v1/search", s.handleSearch)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

// handleChat answers a query with the formatted conversational response.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeSearch(w, r)
	if !ok {
		return
	}

	combined, err := s.search.Search(r.Context(), req)
	if err != nil {
		s.writeSearchError(w, r, err)
		return
	}

	primary := combined.Primary()
	writeJSON(w, http.StatusOK, chatResponse{
		Response:   format.Format(combined, req.Query()),
		Confidence: fmt.Sprintf("%.3f", primary.Score()),
		Category:   primary.Category(),
		Sources:    sourceLabels(combined),
	})
}

// handleSearch answers a query with the raw combined result, unformatted.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeSearch(w, r)
	if !ok {
		return
	}

	combined, err := s.search.Search(r.Context(), req)
	if err != nil {
		s.writeSearchError(w, r, err)
		return
	}

	primary := combined.Primary()
	resp := searchResponse{
		Answer:     primary.Answer(),
		Confidence: primary.Score(),
		Category:   primary.Category(),
		Sources:    sourceLabels(combined),
		NoMatch:    combined.IsNoMatch(),
	}
	for _, sup := range combined.Supplementary() {
		resp.Supplementary = append(resp.Supplementary, searchHit{
			Answer:     sup.Answer(),
			Confidence: sup.Score(),
			Category:   sup.Category(),
			Source:     string(sup.Source()),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := s.health.Check(r.Context())
	if !status.Healthy {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:      "ok",
		Collections: status.Collections,
		Records:     status.Records,
	})
}

// decodeSearch parses and validates the request body, writing the error
// reply itself when validation fails.
func (s *Server) decodeSearch(w http.ResponseWriter, r *http.Request) (request.Request, bool) {
	var body chatRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return request.Request{}, false
	}
	if strings.TrimSpace(body.Message) == "" {
		writeError(w, http.StatusBadRequest, "empty_query", "please enter a valid legal query")
		return request.Request{}, false
	}

	opts := []request.Option{
		request.WithThresholds(s.tunables.Threshold, s.tunables.Floor),
		request.WithBoostWeight(s.tunables.BoostWeight),
		request.WithMaxSupplementary(s.tunables.MaxSupplementary),
	}
	if body.Domain != "" {
		d, err := domain.ParseDomain(body.Domain)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unknown_domain",
				fmt.Sprintf("unknown domain %q", body.Domain))
			return request.Request{}, false
		}
		opts = append(opts, request.WithHint(d))
	}

	req, err := request.New(body.Message, opts...)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return request.Request{}, false
	}
	return req, true
}

func (s *Server) writeSearchError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromContext(r.Context()).Error("search failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}

func sourceLabels(c result.Combined) []string {
	labels := make([]string, 0, len(c.Sources()))
	for _, d := range c.Sources() {
		if d != "" {
			labels = append(labels, string(d))
		}
	}
	return labels
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
