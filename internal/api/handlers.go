// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package api implements the enrich-engine REST API using chi.
package api

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/meshintel/enrich-engine/internal/knowledgegraph"
	"github.com/meshintel/enrich-engine/internal/recommend"
	"github.com/meshintel/enrich-engine/internal/wikipedia"
)

// Source selector values accepted by the recommendations endpoint.
const (
	sourceAll = "all"
)

const maxRequestLimit = 50

// Handler serves recommendation queries over HTTP.
type Handler struct {
	sources    []recommend.Source
	maxResults int
}

// NewHandler creates a Handler over the given sources. maxResults bounds
// the merged item list per request.
func NewHandler(sources []recommend.Source, maxResults int) *Handler {
	return &Handler{sources: sources, maxResults: maxResults}
}

// recommendationsRequest carries the parsed query parameters.
type recommendationsRequest struct {
	Query  string
	Source string
	Types  []string
	Limit  int
}

// Validate checks the request parameters.
func (r recommendationsRequest) Validate() error {
	return validation.Errors{
		"q": validation.Validate(r.Query,
			validation.Required.Error("query parameter q is required"),
			validation.Length(1, 200)),
		"source": validation.Validate(r.Source,
			validation.In(sourceAll, knowledgegraph.SourceName, wikipedia.SourceName).
				Error("source must be all, knowledge_graph, or wikipedia")),
		"limit": validation.Validate(r.Limit,
			validation.Min(0), validation.Max(maxRequestLimit)),
	}.Filter()
}

// GetRecommendations handles GET /api/recommendations.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	req, err := parseRecommendationsRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	sources := h.selectSources(req.Source)
	if len(sources) == 0 {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("no recommendation sources configured"))
		return
	}

	query := recommend.Query{Text: req.Query, Types: req.Types, Limit: req.Limit}
	out, err := recommend.Recommend(r.Context(), query, sources, h.maxResults, io.Discard)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// Healthz handles GET /healthz.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func parseRecommendationsRequest(r *http.Request) (recommendationsRequest, error) {
	q := r.URL.Query()

	req := recommendationsRequest{
		Query:  strings.TrimSpace(q.Get("q")),
		Source: q.Get("source"),
	}
	if req.Source == "" {
		req.Source = sourceAll
	}
	if typesParam := q.Get("types"); typesParam != "" {
		for _, t := range strings.Split(typesParam, ",") {
			if t = strings.TrimSpace(t); t != "" {
				req.Types = append(req.Types, t)
			}
		}
	}
	if limitParam := q.Get("limit"); limitParam != "" {
		limit, err := strconv.Atoi(limitParam)
		if err != nil {
			return req, validation.Errors{"limit": validation.NewError(
				"validation_invalid_int", "limit must be an integer")}.Filter()
		}
		req.Limit = limit
	}
	return req, nil
}

// selectSources narrows the configured sources to the requested one.
func (h *Handler) selectSources(selector string) []recommend.Source {
	if selector == sourceAll {
		return h.sources
	}
	for _, s := range h.sources {
		if s.Name() == selector {
			return []recommend.Source{s}
		}
	}
	return nil
}
