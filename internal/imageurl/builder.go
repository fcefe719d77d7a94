// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package imageurl maps raw external image references (Knowledge Graph
// image blocks, TMDb paths, Spotify image arrays, Wikidata entity ids) to
// displayable URLs, rewriting most of them through the same-origin image
// proxy. Every builder returns a non-empty URL and never fails: absent
// input yields the configured placeholder.
package imageurl

import (
	"fmt"
	"net/url"

	"github.com/meshintel/enrich-engine/internal/cache"
	"github.com/meshintel/enrich-engine/pkg/types"
)

const (
	tmdbBase    = "https://image.tmdb.org/t/p/"
	commonsBase = "https://commons.wikimedia.org/wiki/Special:FilePath/"

	// DefaultTMDbSize is the TMDb size segment used when none is given.
	DefaultTMDbSize = "w500"

	commonsWidth = 800
)

// Builder constructs displayable image URLs. Built URLs are memoized in a
// single shared cache keyed by a source prefix; the cache has no TTL and
// grows until Trim is called.
type Builder struct {
	cfg  types.ImageConfig
	urls *cache.Cache[string]
}

// NewBuilder creates a Builder around the given URL cache.
func NewBuilder(cfg types.ImageConfig, urls *cache.Cache[string]) *Builder {
	return &Builder{cfg: cfg, urls: urls}
}

// Placeholder returns the fixed fallback image URL.
func (b *Builder) Placeholder() string {
	return b.cfg.PlaceholderURL
}

// Proxied rewrites a remote image URL through the image-proxy endpoint.
// An empty input returns the placeholder.
func (b *Builder) Proxied(raw string) string {
	if raw == "" {
		return b.cfg.PlaceholderURL
	}
	key := "proxy_" + raw
	if cached, ok := b.urls.Get(key); ok {
		return cached
	}
	proxied := b.cfg.ProxyPath + "?url=" + url.QueryEscape(raw)
	b.urls.Put(key, proxied)
	return proxied
}

// TMDb builds a TMDb image URL for the given poster path and size
// segment. An empty size uses DefaultTMDbSize; an empty path returns the
// placeholder.
func (b *Builder) TMDb(path, size string) string {
	if path == "" {
		return b.cfg.PlaceholderURL
	}
	if size == "" {
		size = DefaultTMDbSize
	}
	key := "tmdb_" + path + "_" + size
	if cached, ok := b.urls.Get(key); ok {
		return cached
	}
	built := tmdbBase + size + path
	b.urls.Put(key, built)
	return built
}

// Spotify returns the first image URL from a Spotify image array,
// unmodified. Spotify CDN URLs permit direct hotlinking, so they bypass
// the proxy; an empty array or a first element without a URL returns the
// placeholder.
func (b *Builder) Spotify(images []types.SpotifyImage) string {
	if len(images) == 0 || images[0].URL == "" {
		return b.cfg.PlaceholderURL
	}
	raw := images[0].URL
	key := "spotify_" + raw
	if cached, ok := b.urls.Get(key); ok {
		return cached
	}
	b.urls.Put(key, raw)
	return raw
}

// Wikidata builds a Wikimedia Commons file-path URL for a Wikidata entity
// id and routes it through the proxy. An empty id returns the placeholder.
func (b *Builder) Wikidata(entityID string) string {
	if entityID == "" {
		return b.cfg.PlaceholderURL
	}
	key := "wiki_" + entityID
	if cached, ok := b.urls.Get(key); ok {
		return cached
	}
	commons := fmt.Sprintf("%s%s?width=%d", commonsBase, entityID, commonsWidth)
	built := b.Proxied(commons)
	b.urls.Put(key, built)
	return built
}

// Trim bounds the URL cache to maxSize entries, evicting oldest-inserted
// first. Nothing calls this automatically.
func (b *Builder) Trim(maxSize int) {
	b.urls.Trim(maxSize)
}
