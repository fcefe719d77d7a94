// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// HTTPConfig holds shared HTTP settings used by clients that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Upstream APIs occasionally
	// hang; a zero timeout would hang the caller with them.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "enrich-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// CacheConfig holds per-cache lifetimes and bounds. The original design
// mixed a 24 h TTL (Wikipedia) with forever-caches (Knowledge Graph, URL
// builder); that split is deliberate configuration here, not an accident
// to be unified.
type CacheConfig struct {
	// SearchTTL bounds Wikipedia search cache entries (default 24 h).
	SearchTTL time.Duration `json:"search_ttl" yaml:"search_ttl"`

	// ContentTTL bounds Wikipedia page-content cache entries (default 24 h).
	ContentTTL time.Duration `json:"content_ttl" yaml:"content_ttl"`

	// EntityTTL bounds Knowledge Graph entity cache entries. Zero means
	// entries never expire.
	EntityTTL time.Duration `json:"entity_ttl" yaml:"entity_ttl"`

	// URLCacheMaxEntries is the bound applied when the URL cache is
	// trimmed. Zero disables trimming.
	URLCacheMaxEntries int `json:"url_cache_max_entries" yaml:"url_cache_max_entries"`
}

// KnowledgeGraphConfig holds settings for the Knowledge Graph client.
type KnowledgeGraphConfig struct {
	// APIKey authenticates against the Knowledge Graph search API.
	// Required: the client refuses to issue requests without it.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Languages is the language preference sent with every search
	// (default "ja,en").
	Languages string `json:"languages" yaml:"languages"`
}

// WikipediaConfig holds settings for the Wikipedia client.
type WikipediaConfig struct {
	// Limit is the default number of search results (default 5).
	Limit int `json:"limit" yaml:"limit"`

	// APIBase overrides the Wikipedia API endpoint, e.g. to point at a
	// different language edition. Empty uses the Japanese Wikipedia.
	APIBase string `json:"api_base,omitempty" yaml:"api_base,omitempty"`
}

// ImageConfig holds settings for the image URL builder.
type ImageConfig struct {
	// PlaceholderURL is returned whenever no image can be resolved
	// (default "/placeholder-image.png").
	PlaceholderURL string `json:"placeholder_url" yaml:"placeholder_url"`

	// ProxyPath is the same-origin image proxy endpoint
	// (default "/api/image-proxy").
	ProxyPath string `json:"proxy_path" yaml:"proxy_path"`
}

// ServerConfig holds settings for the HTTP API server.
type ServerConfig struct {
	// Addr is the listen address (default ":8480").
	Addr string `json:"addr" yaml:"addr"`
}

// Validate checks the server configuration.
func (c ServerConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Addr, validation.Required),
	)
}

// EngineConfig groups all configuration for the enrichment engine.
type EngineConfig struct {
	HTTP           HTTPConfig           `json:"http" yaml:"http"`
	Cache          CacheConfig          `json:"cache" yaml:"cache"`
	KnowledgeGraph KnowledgeGraphConfig `json:"knowledge_graph" yaml:"knowledge_graph"`
	Wikipedia      WikipediaConfig      `json:"wikipedia" yaml:"wikipedia"`
	Image          ImageConfig          `json:"image" yaml:"image"`
	Server         ServerConfig         `json:"server" yaml:"server"`

	// MaxResults is the default maximum number of recommendation items
	// returned per query (default 10).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// Defaults for EngineConfig fields left unset.
const (
	DefaultTimeout        = 15 * time.Second
	DefaultUserAgent      = "enrich-engine/0.1 (entity enrichment)"
	DefaultSearchTTL      = 24 * time.Hour
	DefaultContentTTL     = 24 * time.Hour
	DefaultLanguages      = "ja,en"
	DefaultWikipediaLimit = 5
	DefaultMaxResults     = 10
	DefaultPlaceholderURL = "/placeholder-image.png"
	DefaultProxyPath      = "/api/image-proxy"
	DefaultServerAddr     = ":8480"
	DefaultURLCacheMax    = 100
)

// ApplyDefaults fills zero-valued fields with package defaults and
// returns the result.
func (c EngineConfig) ApplyDefaults() EngineConfig {
	if c.HTTP.Timeout <= 0 {
		c.HTTP.Timeout = DefaultTimeout
	}
	if c.HTTP.UserAgent == "" {
		c.HTTP.UserAgent = DefaultUserAgent
	}
	if c.Cache.SearchTTL <= 0 {
		c.Cache.SearchTTL = DefaultSearchTTL
	}
	if c.Cache.ContentTTL <= 0 {
		c.Cache.ContentTTL = DefaultContentTTL
	}
	if c.Cache.URLCacheMaxEntries <= 0 {
		c.Cache.URLCacheMaxEntries = DefaultURLCacheMax
	}
	if c.KnowledgeGraph.Languages == "" {
		c.KnowledgeGraph.Languages = DefaultLanguages
	}
	if c.Wikipedia.Limit <= 0 {
		c.Wikipedia.Limit = DefaultWikipediaLimit
	}
	if c.Image.PlaceholderURL == "" {
		c.Image.PlaceholderURL = DefaultPlaceholderURL
	}
	if c.Image.ProxyPath == "" {
		c.Image.ProxyPath = DefaultProxyPath
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	if c.MaxResults <= 0 {
		c.MaxResults = DefaultMaxResults
	}
	return c
}
