// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package api serves the catalog and relevance engine over HTTP. The search
// endpoint's request and response shapes match the remote relevance service
// contract, so this server can stand in for one.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/scholar-atlas/internal/catalog"
	"github.com/pdiddy/scholar-atlas/internal/relevance"
	"github.com/pdiddy/scholar-atlas/pkg/types"
)

// Server handles HTTP requests for the scholar-atlas API.
type Server struct {
	store *catalog.Store
	cache *relevance.Cache
	cfg   types.RelevanceConfig
	addr  string
}

// New creates an API server over the given store. Search reports are cached
// per (query, depth) in a bounded FIFO cache.
func New(store *catalog.Store, cfg types.RelevanceConfig, addr string) *Server {
	return &Server{
		store: store,
		cache: relevance.NewCache(cfg.CacheSize),
		cfg:   cfg,
		addr:  addr,
	}
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	fmt.Printf("Serving scholar-atlas API on %s\n", s.addr)
	return http.ListenAndServe(s.addr, s.Handler())
}

// Handler returns the routed handler; split out so tests can mount it on an
// httptest server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /search", s.search)
	mux.HandleFunc("GET /graph", s.graph)

	mux.HandleFunc("GET /scholars", s.listScholars)
	mux.HandleFunc("POST /scholars", s.upsertScholar)
	mux.HandleFunc("GET /scholars/{slug}", s.getScholar)

	mux.HandleFunc("GET /health", s.health)

	return withCORS(mux)
}

// withCORS adds CORS headers for frontend development.
func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		h.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// searchRequest is the POST /search body; its shape matches the remote
// relevance service contract.
type searchRequest struct {
	Query string      `json:"query"`
	Depth types.Depth `json:"depth"`
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	report, status, err := s.runSearch(r, req.Query, req.Depth)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) graph(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	depth := types.Depth(r.URL.Query().Get("depth"))

	report, status, err := s.runSearch(r, query, depth)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, relevance.ToGraph(report))
}

// runSearch validates the query, consults the cache, and falls through to
// the engine over the full corpus.
func (s *Server) runSearch(r *http.Request, query string, depth types.Depth) (types.SearchReport, int, error) {
	parsed, err := types.ParseDepth(string(depth))
	if err != nil {
		return types.SearchReport{}, http.StatusBadRequest, err
	}
	if strings.TrimSpace(query) == "" {
		return types.SearchReport{}, http.StatusBadRequest, relevance.ErrInvalidQuery
	}

	if report, ok := s.cache.Get(query, parsed); ok {
		return report, http.StatusOK, nil
	}

	corpus, err := s.store.GetAll(r.Context())
	if err != nil {
		// Engine cannot proceed without a corpus.
		return types.SearchReport{}, http.StatusBadGateway, err
	}

	cfg := s.cfg
	cfg.Depth = parsed
	report, err := relevance.Search(query, corpus, cfg)
	if err != nil {
		return types.SearchReport{}, http.StatusBadRequest, err
	}

	s.cache.Put(query, parsed, report)
	return report, http.StatusOK, nil
}

func (s *Server) listScholars(w http.ResponseWriter, r *http.Request) {
	scholars, err := s.store.GetAll(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	if scholars == nil {
		scholars = []types.Scholar{}
	}
	writeJSON(w, http.StatusOK, scholars)
}

func (s *Server) getScholar(w http.ResponseWriter, r *http.Request) {
	scholar, err := s.store.Get(r.Context(), r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, scholar)
}

func (s *Server) upsertScholar(w http.ResponseWriter, r *http.Request) {
	var scholar types.Scholar
	if err := json.NewDecoder(r.Body).Decode(&scholar); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if scholar.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := s.store.Upsert(r.Context(), scholar); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"slug": types.Slug(scholar.Name)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
