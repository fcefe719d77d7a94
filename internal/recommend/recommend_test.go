// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/meshintel/enrich-engine/pkg/types"
)

// stubSource returns canned items or an error.
type stubSource struct {
	name  string
	items []types.RecommendationItem
	err   error
}

func (s stubSource) Name() string { return s.name }

func (s stubSource) Recommend(_ context.Context, _ Query) ([]types.RecommendationItem, error) {
	return s.items, s.err
}

func item(name, source string) types.RecommendationItem {
	return types.RecommendationItem{
		Name:        name,
		Category:    types.CategoryCelebrities,
		Reason:      name + "の説明",
		Features:    []string{"feature"},
		ImageURL:    "/placeholder-image.png",
		OfficialURL: "#",
		Source:      source,
	}
}

func TestRecommendEmptyQuery(t *testing.T) {
	_, err := Recommend(context.Background(), Query{Text: "  "},
		[]Source{stubSource{name: "a"}}, 0, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected error for empty query")
	}
	if !strings.Contains(err.Error(), "empty") {
		t.Errorf("error = %q, want substring 'empty'", err.Error())
	}
}

func TestRecommendNoSources(t *testing.T) {
	_, err := Recommend(context.Background(), Query{Text: "q"}, nil, 0, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected error for no sources")
	}
}

func TestRecommendMergesInSourceOrder(t *testing.T) {
	sources := []Source{
		stubSource{name: "knowledge_graph", items: []types.RecommendationItem{
			item("初音ミク", "knowledge_graph"),
		}},
		stubSource{name: "wikipedia", items: []types.RecommendationItem{
			item("鏡音リン", "wikipedia"),
		}},
	}

	out, err := Recommend(context.Background(), Query{Text: "ボーカロイド"}, sources, 0, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(out.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(out.Items))
	}
	// Items appear in source submission order regardless of goroutine
	// completion order.
	if out.Items[0].Name != "初音ミク" || out.Items[1].Name != "鏡音リン" {
		t.Errorf("order = %q, %q", out.Items[0].Name, out.Items[1].Name)
	}
}

func TestRecommendFailedSourceIsRecordedNotFatal(t *testing.T) {
	sources := []Source{
		stubSource{name: "knowledge_graph", err: fmt.Errorf("HTTP 503")},
		stubSource{name: "wikipedia", items: []types.RecommendationItem{item("X", "wikipedia")}},
	}

	var warnings bytes.Buffer
	out, err := Recommend(context.Background(), Query{Text: "q"}, sources, 0, &warnings)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(out.Items) != 1 {
		t.Errorf("len(Items) = %d, want 1", len(out.Items))
	}
	if len(out.SourceErrors) != 1 || !strings.Contains(out.SourceErrors[0], "knowledge_graph") {
		t.Errorf("SourceErrors = %v", out.SourceErrors)
	}
	if !strings.Contains(warnings.String(), "knowledge_graph") {
		t.Errorf("warning output = %q", warnings.String())
	}
}

func TestRecommendAllSourcesFailing(t *testing.T) {
	sources := []Source{
		stubSource{name: "a", err: fmt.Errorf("boom")},
		stubSource{name: "b", err: fmt.Errorf("bang")},
	}

	out, err := Recommend(context.Background(), Query{Text: "q"}, sources, 0, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(out.Items) != 0 {
		t.Errorf("len(Items) = %d, want 0", len(out.Items))
	}
	if len(out.SourceErrors) != 2 {
		t.Errorf("len(SourceErrors) = %d, want 2", len(out.SourceErrors))
	}
}

func TestDeduplicateMergesByNormalizedName(t *testing.T) {
	kg := item("初音ミク", "knowledge_graph")
	kg.OfficialURL = "https://piapro.net/"

	wiki := item("初音ミク", "wikipedia")
	wiki.Reason = "Wikipedia側の説明"

	deduped, removed := deduplicate([]types.RecommendationItem{kg, wiki})
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if len(deduped) != 1 {
		t.Fatalf("len(deduped) = %d, want 1", len(deduped))
	}
	merged := deduped[0]
	// First occurrence wins; the duplicate contributed its source tag.
	if merged.OfficialURL != "https://piapro.net/" {
		t.Errorf("OfficialURL = %q", merged.OfficialURL)
	}
	if merged.Source != "knowledge_graph,wikipedia" {
		t.Errorf("Source = %q, want merged source list", merged.Source)
	}
}

func TestDeduplicateFillsEmptyFields(t *testing.T) {
	first := types.RecommendationItem{Name: "X", Source: "knowledge_graph", OfficialURL: "#"}
	second := types.RecommendationItem{
		Name:        "X",
		Source:      "wikipedia",
		Reason:      "説明",
		Features:    []string{"f"},
		ImageURL:    "/api/image-proxy?url=x",
		OfficialURL: "https://example.com/",
	}

	deduped, _ := deduplicate([]types.RecommendationItem{first, second})
	merged := deduped[0]
	if merged.Reason != "説明" {
		t.Errorf("Reason = %q", merged.Reason)
	}
	if len(merged.Features) != 1 {
		t.Errorf("Features = %v", merged.Features)
	}
	if merged.ImageURL != "/api/image-proxy?url=x" {
		t.Errorf("ImageURL = %q", merged.ImageURL)
	}
	if merged.OfficialURL != "https://example.com/" {
		t.Errorf("OfficialURL = %q, want # replaced", merged.OfficialURL)
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hatsune  Miku!", "hatsune miku"},
		{"初音ミク", "初音ミク"},
		{"", ""},
		{"--- ", ""},
	}
	for _, tt := range tests {
		if got := normalizeName(tt.in); got != tt.want {
			t.Errorf("normalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRecommendMaxResults(t *testing.T) {
	var items []types.RecommendationItem
	for i := 0; i < 5; i++ {
		items = append(items, item(fmt.Sprintf("Entity%d", i), "knowledge_graph"))
	}
	sources := []Source{stubSource{name: "knowledge_graph", items: items}}

	out, err := Recommend(context.Background(), Query{Text: "q"}, sources, 3, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(out.Items) != 3 {
		t.Errorf("len(Items) = %d, want 3", len(out.Items))
	}
}

func TestFormatTable(t *testing.T) {
	out := Output{Items: []types.RecommendationItem{item("初音ミク", "knowledge_graph")}, DupsRemoved: 1}
	var buf bytes.Buffer
	FormatTable(out, &buf)

	s := buf.String()
	if !strings.Contains(s, "初音ミク") {
		t.Errorf("table output missing item name: %q", s)
	}
	if !strings.Contains(s, "1 recommendations (1 duplicates merged)") {
		t.Errorf("table output missing summary: %q", s)
	}
}

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(Output{}, &buf)
	if !strings.Contains(buf.String(), "No recommendations found.") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestFormatJSONRoundTrips(t *testing.T) {
	out := Output{Items: []types.RecommendationItem{item("X", "wikipedia")}}
	var buf bytes.Buffer
	if err := FormatJSON(out, &buf); err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}

	var decoded Output
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(decoded.Items) != 1 || decoded.Items[0].Name != "X" {
		t.Errorf("decoded = %+v", decoded)
	}
}
