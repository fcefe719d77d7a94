// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wikipedia queries the Japanese Wikipedia API for article
// search, article content, and derived recommendation items. Search and
// content responses are cached for a configurable window (24 h default).
package wikipedia

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/meshintel/enrich-engine/internal/cache"
	"github.com/meshintel/enrich-engine/internal/httputil"
	"github.com/meshintel/enrich-engine/internal/imageurl"
	"github.com/meshintel/enrich-engine/pkg/types"
)

// apiBase is the Wikipedia API endpoint. Declared as a var so tests can
// substitute an httptest server.
var apiBase = "https://ja.wikipedia.org/w/api.php"

// articleBase is the page URL prefix used for official links.
var articleBase = "https://ja.wikipedia.org/?curid="

// SourceName identifies this client in RecommendationItem.Source.
const SourceName = "wikipedia"

const (
	defaultLimit  = 5
	thumbnailSize = 500
	extractLimit  = 100
)

// SearchResult is one entry from the Wikipedia search list.
type SearchResult struct {
	Title   string `json:"title"`
	PageID  int    `json:"pageid"`
	Snippet string `json:"snippet"`
}

// Page is the content of a single Wikipedia article: intro extract plus
// an optional thumbnail.
type Page struct {
	PageID       int    `json:"pageid"`
	Title        string `json:"title"`
	Extract      string `json:"extract"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// Client queries the Wikipedia API. Both caches are injected so tests and
// callers control their lifetime; they expire lazily per their TTL.
type Client struct {
	http      *http.Client
	userAgent string
	base      string // overrides apiBase when non-empty
	limit     int
	images    *imageurl.Builder

	searchCache  *cache.Cache[[]SearchResult]
	contentCache *cache.Cache[*Page]
}

// NewClient builds a Wikipedia client. Cache TTLs come from cacheCfg; the
// 24 h defaults are applied by EngineConfig.ApplyDefaults.
func NewClient(httpClient *http.Client, httpCfg types.HTTPConfig, wikiCfg types.WikipediaConfig, cacheCfg types.CacheConfig, images *imageurl.Builder) *Client {
	if httpClient == nil {
		httpClient = httputil.NewClient(httpCfg.Timeout)
	}
	return &Client{
		http:         httpClient,
		userAgent:    httpCfg.UserAgent,
		base:         wikiCfg.APIBase,
		limit:        wikiCfg.Limit,
		images:       images,
		searchCache:  cache.New[[]SearchResult](cacheCfg.SearchTTL),
		contentCache: cache.New[*Page](cacheCfg.ContentTTL),
	}
}

func (c *Client) endpoint() string {
	if c.base != "" {
		return c.base
	}
	return apiBase
}

// searchResponse mirrors the list=search response shape.
type searchResponse struct {
	Query struct {
		Search []SearchResult `json:"search"`
	} `json:"query"`
	Error *apiError `json:"error,omitempty"`
}

// contentResponse mirrors the prop=extracts|pageimages response shape.
type contentResponse struct {
	Query struct {
		Pages map[string]struct {
			PageID    int    `json:"pageid"`
			Title     string `json:"title"`
			Extract   string `json:"extract"`
			Missing   string `json:"missing,omitempty"`
			Thumbnail *struct {
				Source string `json:"source"`
				Width  int    `json:"width"`
				Height int    `json:"height"`
			} `json:"thumbnail,omitempty"`
		} `json:"pages"`
	} `json:"query"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

// Search queries the Japanese Wikipedia search list. Results for the same
// (query, limit) pair are served from the cache within its TTL window.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = c.limit
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	key := "search_" + query + "_" + strconv.Itoa(limit)
	if cached, ok := c.searchCache.Get(key); ok {
		return cached, nil
	}

	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {query},
		"format":   {"json"},
		"srlimit":  {strconv.Itoa(limit)},
		"origin":   {"*"},
	}

	var sr searchResponse
	if err := httputil.GetJSON(ctx, c.http, c.endpoint()+"?"+params.Encode(), c.userAgent, &sr); err != nil {
		return nil, fmt.Errorf("Wikipedia search: %w", err)
	}
	if sr.Error != nil {
		return nil, fmt.Errorf("Wikipedia search: API error %s: %s", sr.Error.Code, sr.Error.Info)
	}

	results := sr.Query.Search
	c.searchCache.Put(key, results)
	return results, nil
}

// PageContent fetches the intro extract and thumbnail for a page id. The
// id is a string so Wikidata Q-ids can be routed through the same call
// when the Knowledge Graph client pivots here for an image. Responses are
// cached per id within the TTL window.
func (c *Client) PageContent(ctx context.Context, pageID string) (*Page, error) {
	if pageID == "" {
		return nil, fmt.Errorf("Wikipedia content: empty page id")
	}

	key := "content_" + pageID
	if cached, ok := c.contentCache.Get(key); ok {
		return cached, nil
	}

	params := url.Values{
		"action":      {"query"},
		"prop":        {"extracts|pageimages"},
		"exintro":     {"1"},
		"explaintext": {"1"},
		"pageids":     {pageID},
		"format":      {"json"},
		"pithumbsize": {strconv.Itoa(thumbnailSize)},
		"origin":      {"*"},
	}

	var cr contentResponse
	if err := httputil.GetJSON(ctx, c.http, c.endpoint()+"?"+params.Encode(), c.userAgent, &cr); err != nil {
		return nil, fmt.Errorf("Wikipedia content: %w", err)
	}
	if cr.Error != nil {
		return nil, fmt.Errorf("Wikipedia content: API error %s: %s", cr.Error.Code, cr.Error.Info)
	}

	for _, p := range cr.Query.Pages {
		if p.PageID == 0 && p.Extract == "" {
			continue
		}
		page := &Page{
			PageID:  p.PageID,
			Title:   p.Title,
			Extract: p.Extract,
		}
		if p.Thumbnail != nil {
			page.ThumbnailURL = p.Thumbnail.Source
		}
		c.contentCache.Put(key, page)
		return page, nil
	}
	return nil, fmt.Errorf("Wikipedia content: page %s not found", pageID)
}

// Recommend searches for query and assembles recommendation items from
// the top limit hits. Content fetches fan out concurrently; a failed
// fetch drops only its own entry. An empty search yields an empty slice.
func (c *Client) Recommend(ctx context.Context, query string, limit int) ([]types.RecommendationItem, error) {
	if limit <= 0 {
		limit = c.limit
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	results, err := c.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return []types.RecommendationItem{}, nil
	}
	if len(results) > limit {
		results = results[:limit]
	}

	pages := make([]*Page, len(results))
	g, gctx := errgroup.WithContext(ctx)
	for i, r := range results {
		i, r := i, r
		g.Go(func() error {
			page, err := c.PageContent(gctx, strconv.Itoa(r.PageID))
			if err != nil {
				// A single failed article must not sink the batch.
				return nil
			}
			pages[i] = page
			return nil
		})
	}
	_ = g.Wait() // goroutines never return errors; failures become nil pages

	items := make([]types.RecommendationItem, 0, len(results))
	for i, r := range results {
		page := pages[i]
		if page == nil {
			continue
		}
		items = append(items, c.toItem(r, page))
	}
	return items, nil
}

func (c *Client) toItem(r SearchResult, page *Page) types.RecommendationItem {
	reason := page.Extract
	if reason == "" {
		reason = fmt.Sprintf("「%s」はWikipediaに掲載されています。", r.Title)
	}

	features := filterEmpty([]string{
		truncateRunes(page.Extract, extractLimit),
		"Wikipedia掲載",
		"日本語の詳細情報あり",
	})

	imageURL := c.images.Placeholder()
	if page.ThumbnailURL != "" {
		imageURL = c.images.Proxied(page.ThumbnailURL)
	}

	return types.RecommendationItem{
		Name:        r.Title,
		Category:    types.CategoryCelebrities,
		Reason:      reason,
		Features:    features,
		ImageURL:    imageURL,
		OfficialURL: articleBase + strconv.Itoa(r.PageID),
		Source:      SourceName,
		APIData:     page,
	}
}

// truncateRunes shortens s to max runes, appending an ellipsis when
// anything was cut. Counting runes keeps multi-byte Japanese text intact.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func filterEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
