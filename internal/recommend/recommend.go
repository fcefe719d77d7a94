// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package recommend fans a query out to the configured recommendation
// sources, merges and deduplicates their items, and formats the result.
// Upstream failures never fail the whole query: they are collected into
// the output so callers and tests can inspect them.
package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode"

	"github.com/meshintel/enrich-engine/internal/knowledgegraph"
	"github.com/meshintel/enrich-engine/internal/wikipedia"
	"github.com/meshintel/enrich-engine/pkg/types"
)

// Source produces recommendation items for a query. Each upstream client
// adapts onto this interface.
type Source interface {
	Name() string
	Recommend(ctx context.Context, query Query) ([]types.RecommendationItem, error)
}

// Query holds the recommendation parameters.
type Query struct {
	// Text is the free-text entity query.
	Text string

	// Types optionally restricts Knowledge Graph results to schema.org
	// types; sources without type filtering ignore it.
	Types []string

	// Limit is the per-source result limit. Zero uses source defaults.
	Limit int
}

// IsEmpty reports whether the query contains no searchable text.
func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.Text) == ""
}

// Output holds merged items plus per-source failure notes. A source that
// failed contributes nothing to Items and one entry to SourceErrors.
type Output struct {
	Items        []types.RecommendationItem `json:"items" yaml:"items"`
	DupsRemoved  int                        `json:"dups_removed" yaml:"dups_removed"`
	SourceErrors []string                   `json:"source_errors,omitempty" yaml:"source_errors,omitempty"`
}

// Recommend queries all sources concurrently and merges their items in
// source order, deduplicating by normalized name. maxResults bounds the
// final list (zero means unbounded). Warnings for failed sources are
// written to w.
func Recommend(ctx context.Context, query Query, sources []Source, maxResults int, w io.Writer) (Output, error) {
	if query.IsEmpty() {
		return Output{}, fmt.Errorf("query is empty: provide an entity name or free text")
	}
	if len(sources) == 0 {
		return Output{}, fmt.Errorf("no recommendation sources configured")
	}

	perSource := make([][]types.RecommendationItem, len(sources))
	errs := make([]error, len(sources))

	var wg sync.WaitGroup
	for i, s := range sources {
		wg.Add(1)
		go func(i int, s Source) {
			defer wg.Done()
			items, err := s.Recommend(ctx, query)
			perSource[i], errs[i] = items, err
		}(i, s)
	}
	wg.Wait()

	var all []types.RecommendationItem
	var sourceErrors []string
	for i, s := range sources {
		if errs[i] != nil {
			msg := fmt.Sprintf("%s: %v", s.Name(), errs[i])
			sourceErrors = append(sourceErrors, msg)
			fmt.Fprintf(w, "warning: source %s failed: %v\n", s.Name(), errs[i])
			continue
		}
		all = append(all, perSource[i]...)
	}

	deduped, removed := deduplicate(all)

	if maxResults > 0 && len(deduped) > maxResults {
		deduped = deduped[:maxResults]
	}

	return Output{
		Items:        deduped,
		DupsRemoved:  removed,
		SourceErrors: sourceErrors,
	}, nil
}

// deduplicate merges items that share a normalized name. The first
// occurrence wins; later duplicates fill its empty fields.
func deduplicate(items []types.RecommendationItem) ([]types.RecommendationItem, int) {
	seen := make(map[string]int) // normalized name → index in deduped
	var deduped []types.RecommendationItem
	removed := 0

	for _, item := range items {
		key := normalizeName(item.Name)
		if key == "" {
			deduped = append(deduped, item)
			continue
		}
		if idx, ok := seen[key]; ok {
			mergeInto(&deduped[idx], item)
			removed++
			continue
		}
		seen[key] = len(deduped)
		deduped = append(deduped, item)
	}
	return deduped, removed
}

// mergeInto fills empty fields of dst from src and records the extra
// source.
func mergeInto(dst *types.RecommendationItem, src types.RecommendationItem) {
	if dst.Reason == "" && src.Reason != "" {
		dst.Reason = src.Reason
	}
	if len(dst.Features) == 0 && len(src.Features) > 0 {
		dst.Features = src.Features
	}
	if dst.ImageURL == "" && src.ImageURL != "" {
		dst.ImageURL = src.ImageURL
	}
	if (dst.OfficialURL == "" || dst.OfficialURL == "#") && src.OfficialURL != "" && src.OfficialURL != "#" {
		dst.OfficialURL = src.OfficialURL
	}
	if src.Source != "" && dst.Source != src.Source && !strings.Contains(dst.Source, src.Source) {
		dst.Source = dst.Source + "," + src.Source
	}
}

// normalizeName lowercases a name and strips everything but letters,
// digits, and single spaces.
func normalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// FormatTable writes items as a human-readable table to w.
func FormatTable(out Output, w io.Writer) {
	if len(out.Items) == 0 {
		fmt.Fprintln(w, "No recommendations found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-30s  %-12s  %-40s  %s\n",
		"Rank", "Name", "Category", "Official URL", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, item := range out.Items {
		fmt.Fprintf(w, "%-4d  %-30s  %-12s  %-40s  %s\n",
			i+1,
			truncate(item.Name, 30),
			item.Category,
			truncate(item.OfficialURL, 40),
			item.Source)
	}

	fmt.Fprintf(w, "\n%d recommendations", len(out.Items))
	if out.DupsRemoved > 0 {
		fmt.Fprintf(w, " (%d duplicates merged)", out.DupsRemoved)
	}
	fmt.Fprintln(w)
}

// FormatJSON writes items as indented JSON to w.
func FormatJSON(out Output, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// KnowledgeGraphSource adapts the Knowledge Graph client.
type KnowledgeGraphSource struct {
	Client *knowledgegraph.Client
}

// Name returns the source identifier.
func (s KnowledgeGraphSource) Name() string { return knowledgegraph.SourceName }

// Recommend delegates to the Knowledge Graph client.
func (s KnowledgeGraphSource) Recommend(ctx context.Context, query Query) ([]types.RecommendationItem, error) {
	return s.Client.Recommend(ctx, query.Text, query.Types, query.Limit)
}

// WikipediaSource adapts the Wikipedia client.
type WikipediaSource struct {
	Client *wikipedia.Client
}

// Name returns the source identifier.
func (s WikipediaSource) Name() string { return wikipedia.SourceName }

// Recommend delegates to the Wikipedia client; the type filter does not
// apply to article search.
func (s WikipediaSource) Recommend(ctx context.Context, query Query) ([]types.RecommendationItem, error) {
	return s.Client.Recommend(ctx, query.Text, query.Limit)
}
