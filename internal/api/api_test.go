// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/meshintel/enrich-engine/internal/recommend"
	"github.com/meshintel/enrich-engine/pkg/types"
)

type stubSource struct {
	name  string
	items []types.RecommendationItem
	err   error

	gotQuery recommend.Query
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Recommend(_ context.Context, q recommend.Query) ([]types.RecommendationItem, error) {
	s.gotQuery = q
	return s.items, s.err
}

func testServer(sources ...recommend.Source) *httptest.Server {
	h := NewHandler(sources, 10)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return httptest.NewServer(NewRouter(h, logger))
}

func get(t *testing.T, ts *httptest.Server, path string) (int, string) {
	t.Helper()
	resp, err := ts.Client().Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestHealthz(t *testing.T) {
	ts := testServer(&stubSource{name: "knowledge_graph"})
	defer ts.Close()

	status, body := get(t, ts, "/healthz")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if !strings.Contains(body, `"status":"ok"`) {
		t.Errorf("body = %q", body)
	}
}

func TestGetRecommendations(t *testing.T) {
	src := &stubSource{name: "knowledge_graph", items: []types.RecommendationItem{{
		Name:        "初音ミク",
		Category:    types.CategoryArtists,
		Reason:      "説明",
		Features:    []string{"MusicGroup"},
		ImageURL:    "/placeholder-image.png",
		OfficialURL: "#",
		Source:      "knowledge_graph",
	}}}
	ts := testServer(src)
	defer ts.Close()

	status, body := get(t, ts, "/api/recommendations?q=%E5%88%9D%E9%9F%B3%E3%83%9F%E3%82%AF&limit=3&types=MusicGroup,Person")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", status, body)
	}

	var out recommend.Output
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(out.Items) != 1 || out.Items[0].Name != "初音ミク" {
		t.Errorf("Items = %+v", out.Items)
	}

	if src.gotQuery.Text != "初音ミク" || src.gotQuery.Limit != 3 {
		t.Errorf("query passed to source = %+v", src.gotQuery)
	}
	if len(src.gotQuery.Types) != 2 {
		t.Errorf("Types = %v, want 2 entries", src.gotQuery.Types)
	}
}

func TestGetRecommendationsValidation(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"missing q", "/api/recommendations", "required"},
		{"limit too large", "/api/recommendations?q=x&limit=51", "limit"},
		{"limit not a number", "/api/recommendations?q=x&limit=abc", "integer"},
		{"unknown source", "/api/recommendations?q=x&source=spotify", "source"},
	}
	ts := testServer(&stubSource{name: "knowledge_graph"})
	defer ts.Close()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := get(t, ts, tt.path)
			if status != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body = %s", status, body)
			}
			if !strings.Contains(body, tt.want) {
				t.Errorf("body = %q, want substring %q", body, tt.want)
			}
		})
	}
}

func TestGetRecommendationsSourceFilter(t *testing.T) {
	kg := &stubSource{name: "knowledge_graph", items: []types.RecommendationItem{{Name: "A", Source: "knowledge_graph"}}}
	wiki := &stubSource{name: "wikipedia", items: []types.RecommendationItem{{Name: "B", Source: "wikipedia"}}}
	ts := testServer(kg, wiki)
	defer ts.Close()

	status, body := get(t, ts, "/api/recommendations?q=x&source=wikipedia")
	if status != http.StatusOK {
		t.Fatalf("status = %d; body = %s", status, body)
	}

	var out recommend.Output
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(out.Items) != 1 || out.Items[0].Name != "B" {
		t.Errorf("Items = %+v, want only the wikipedia item", out.Items)
	}
}

func TestGetRecommendationsUpstreamFailureIsSoft(t *testing.T) {
	failing := &stubSource{name: "knowledge_graph", err: fmt.Errorf("HTTP 503")}
	ok := &stubSource{name: "wikipedia", items: []types.RecommendationItem{{Name: "B", Source: "wikipedia"}}}
	ts := testServer(failing, ok)
	defer ts.Close()

	status, body := get(t, ts, "/api/recommendations?q=x")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200 (upstream failure is not a request failure)", status)
	}

	var out recommend.Output
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(out.Items) != 1 {
		t.Errorf("Items = %+v", out.Items)
	}
	if len(out.SourceErrors) != 1 || !strings.Contains(out.SourceErrors[0], "knowledge_graph") {
		t.Errorf("SourceErrors = %v", out.SourceErrors)
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	ts := testServer(&stubSource{name: "knowledge_graph"})
	defer ts.Close()

	status, _ := get(t, ts, "/api/nope")
	if status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
}
