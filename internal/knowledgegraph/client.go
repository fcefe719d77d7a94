// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package knowledgegraph queries the Google Knowledge Graph search API,
// classifies returned entities into topical categories, and assembles
// normalized recommendation items. Image resolution may pivot into the
// Wikipedia client via a Wikidata id embedded in the entity identifier.
package knowledgegraph

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/meshintel/enrich-engine/internal/cache"
	"github.com/meshintel/enrich-engine/internal/httputil"
	"github.com/meshintel/enrich-engine/internal/imageurl"
	"github.com/meshintel/enrich-engine/internal/wikipedia"
	"github.com/meshintel/enrich-engine/pkg/types"
)

// searchBase is the Knowledge Graph search endpoint. Declared as a var so
// tests can substitute an httptest server.
var searchBase = "https://kgsearch.googleapis.com/v1/entities:search"

// SourceName identifies this client in RecommendationItem.Source.
const SourceName = "knowledge_graph"

const defaultLimit = 10

// ErrNoAPIKey is returned before any network call when the client has no
// Knowledge Graph API key configured.
var ErrNoAPIKey = errors.New("knowledge graph API key not configured: set GOOGLE_KNOWLEDGE_GRAPH_API_KEY")

// Client queries the Knowledge Graph API. The entity cache has no TTL by
// default (entities are stable); a TTL can be configured per deployment.
type Client struct {
	http      *http.Client
	cfg       types.KnowledgeGraphConfig
	userAgent string

	entityCache *cache.Cache[[]types.KnowledgeGraphEntity]

	wiki   *wikipedia.Client
	images *imageurl.Builder
}

// NewClient builds a Knowledge Graph client. wiki may be nil, in which
// case the Wikidata image pivot is skipped and entities without a direct
// image fall back to the placeholder.
func NewClient(httpClient *http.Client, httpCfg types.HTTPConfig, kgCfg types.KnowledgeGraphConfig, cacheCfg types.CacheConfig, wiki *wikipedia.Client, images *imageurl.Builder) *Client {
	if httpClient == nil {
		httpClient = httputil.NewClient(httpCfg.Timeout)
	}
	if kgCfg.Languages == "" {
		kgCfg.Languages = types.DefaultLanguages
	}
	return &Client{
		http:        httpClient,
		cfg:         kgCfg,
		userAgent:   httpCfg.UserAgent,
		entityCache: cache.New[[]types.KnowledgeGraphEntity](cacheCfg.EntityTTL),
		wiki:        wiki,
		images:      images,
	}
}

// searchResponse mirrors the entities:search response shape.
type searchResponse struct {
	ItemListElement []struct {
		Result      *types.KnowledgeGraphEntity `json:"result"`
		ResultScore float64                     `json:"resultScore"`
	} `json:"itemListElement"`
}

// SearchEntities queries the Knowledge Graph for entities matching query.
// typeFilter restricts results to the given schema.org types (empty means
// no restriction). The API key is checked before any network activity;
// failures are never cached.
func (c *Client) SearchEntities(ctx context.Context, query string, typeFilter []string, limit int) ([]types.KnowledgeGraphEntity, error) {
	if c.cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	key := query + "_" + strings.Join(typeFilter, ",") + "_" + strconv.Itoa(limit)
	if cached, ok := c.entityCache.Get(key); ok {
		return cached, nil
	}

	params := url.Values{
		"query":     {query},
		"key":       {c.cfg.APIKey},
		"limit":     {strconv.Itoa(limit)},
		"indent":    {"true"},
		"languages": {c.cfg.Languages},
	}
	if len(typeFilter) > 0 {
		params.Set("types", strings.Join(typeFilter, ","))
	}

	var sr searchResponse
	if err := httputil.GetJSON(ctx, c.http, searchBase+"?"+params.Encode(), c.userAgent, &sr); err != nil {
		return nil, fmt.Errorf("Knowledge Graph search: %w", err)
	}

	entities := make([]types.KnowledgeGraphEntity, 0, len(sr.ItemListElement))
	for _, el := range sr.ItemListElement {
		if el.Result == nil || el.Result.Name == "" {
			continue
		}
		entities = append(entities, *el.Result)
	}

	c.entityCache.Put(key, entities)
	return entities, nil
}

// ToRecommendationItem normalizes one entity into a recommendation item.
// Image resolution may call into the Wikipedia client; everything else is
// pure field mapping.
func (c *Client) ToRecommendationItem(ctx context.Context, entity types.KnowledgeGraphEntity) types.RecommendationItem {
	reason := ""
	if entity.DetailedDescription != nil {
		reason = entity.DetailedDescription.ArticleBody
	}
	if reason == "" {
		reason = entity.Description
	}
	if reason == "" {
		reason = fmt.Sprintf("%sに関する情報です。", entity.Name)
	}

	features := make([]string, 0, 4)
	for _, tag := range entity.Types {
		if len(features) == 3 {
			break
		}
		if stripped := stripNamespace(tag); stripped != "" {
			features = append(features, stripped)
		}
	}
	if entity.URL != "" {
		features = append(features, "公式サイトあり")
	}

	officialURL := entity.URL
	if officialURL == "" && entity.DetailedDescription != nil {
		officialURL = entity.DetailedDescription.URL
	}
	if officialURL == "" {
		officialURL = "#"
	}

	return types.RecommendationItem{
		Name:        entity.Name,
		Category:    Category(entity),
		Reason:      reason,
		Features:    features,
		ImageURL:    c.resolveImage(ctx, entity),
		OfficialURL: officialURL,
		Source:      SourceName,
		APIData:     entity,
	}
}

// resolveImage picks the best displayable image for an entity: the direct
// image content URL, then the image page URL, then a Wikipedia thumbnail
// reached through the entity's Wikidata id, then the placeholder. A
// Freebase id may also be present in the identifier but feeds no lookup.
func (c *Client) resolveImage(ctx context.Context, entity types.KnowledgeGraphEntity) string {
	if entity.Image != nil {
		if entity.Image.ContentURL != "" {
			return c.images.Proxied(entity.Image.ContentURL)
		}
		if entity.Image.URL != "" {
			return c.images.Proxied(entity.Image.URL)
		}
	}

	if wikidataID := ExtractWikidataID(entity.ID); wikidataID != "" && c.wiki != nil {
		page, err := c.wiki.PageContent(ctx, wikidataID)
		if err == nil && page != nil && page.ThumbnailURL != "" {
			return c.images.Proxied(page.ThumbnailURL)
		}
	}

	return c.images.Placeholder()
}

// Recommend searches for query and converts every returned entity into a
// recommendation item, preserving API order.
func (c *Client) Recommend(ctx context.Context, query string, typeFilter []string, limit int) ([]types.RecommendationItem, error) {
	entities, err := c.SearchEntities(ctx, query, typeFilter, limit)
	if err != nil {
		return nil, err
	}

	items := make([]types.RecommendationItem, 0, len(entities))
	for _, entity := range entities {
		items = append(items, c.ToRecommendationItem(ctx, entity))
	}
	return items, nil
}

// stripNamespace removes a leading "namespace:" prefix from a type tag,
// e.g. "kg:MusicGroup" becomes "MusicGroup".
func stripNamespace(tag string) string {
	if i := strings.Index(tag, ":"); i >= 0 {
		return tag[i+1:]
	}
	return tag
}
