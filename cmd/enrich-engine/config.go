package main

import (
	"github.com/spf13/viper"

	"github.com/meshintel/enrich-engine/internal/cache"
	"github.com/meshintel/enrich-engine/internal/httputil"
	"github.com/meshintel/enrich-engine/internal/imageurl"
	"github.com/meshintel/enrich-engine/internal/knowledgegraph"
	"github.com/meshintel/enrich-engine/internal/recommend"
	"github.com/meshintel/enrich-engine/internal/secrets"
	"github.com/meshintel/enrich-engine/internal/wikipedia"
	"github.com/meshintel/enrich-engine/pkg/types"
)

// buildConfig assembles the engine configuration from the config file,
// environment, and loaded secrets, then fills defaults.
func buildConfig() types.EngineConfig {
	cfg := types.EngineConfig{
		HTTP: types.HTTPConfig{
			Timeout:   viper.GetDuration("http.timeout"),
			UserAgent: viper.GetString("http.user_agent"),
		},
		Cache: types.CacheConfig{
			SearchTTL:          viper.GetDuration("cache.search_ttl"),
			ContentTTL:         viper.GetDuration("cache.content_ttl"),
			EntityTTL:          viper.GetDuration("cache.entity_ttl"),
			URLCacheMaxEntries: viper.GetInt("cache.url_cache_max_entries"),
		},
		KnowledgeGraph: types.KnowledgeGraphConfig{
			APIKey:    secrets.KnowledgeGraphKey(loadedSecrets),
			Languages: viper.GetString("knowledge_graph.languages"),
		},
		Wikipedia: types.WikipediaConfig{
			Limit:   viper.GetInt("wikipedia.limit"),
			APIBase: viper.GetString("wikipedia.api_base"),
		},
		Image: types.ImageConfig{
			PlaceholderURL: viper.GetString("image.placeholder_url"),
			ProxyPath:      viper.GetString("image.proxy_path"),
		},
		Server: types.ServerConfig{
			Addr: viper.GetString("server.addr"),
		},
		MaxResults: viper.GetInt("max_results"),
	}
	return cfg.ApplyDefaults()
}

// engine bundles the constructed clients behind the pipeline entry points.
type engine struct {
	cfg     types.EngineConfig
	images  *imageurl.Builder
	wiki    *wikipedia.Client
	kg      *knowledgegraph.Client
	sources []recommend.Source
}

// buildEngine wires the HTTP client, caches, image builder, and API
// clients. The Wikipedia client doubles as the Wikidata pivot lookup for
// Knowledge Graph entities without a usable image.
func buildEngine(cfg types.EngineConfig) *engine {
	httpClient := httputil.NewClient(cfg.HTTP.Timeout)
	images := imageurl.NewBuilder(cfg.Image, cache.New[string](0))
	wiki := wikipedia.NewClient(httpClient, cfg.HTTP, cfg.Wikipedia, cfg.Cache, images)
	kg := knowledgegraph.NewClient(httpClient, cfg.HTTP, cfg.KnowledgeGraph, cfg.Cache, wiki, images)

	return &engine{
		cfg:    cfg,
		images: images,
		wiki:   wiki,
		kg:     kg,
		sources: []recommend.Source{
			recommend.KnowledgeGraphSource{Client: kg},
			recommend.WikipediaSource{Client: wiki},
		},
	}
}

// selectSources filters the engine's sources by name. An empty name or
// "all" keeps every source.
func (e *engine) selectSources(name string) []recommend.Source {
	if name == "" || name == "all" {
		return e.sources
	}
	var out []recommend.Source
	for _, s := range e.sources {
		if s.Name() == name {
			out = append(out, s)
		}
	}
	return out
}
