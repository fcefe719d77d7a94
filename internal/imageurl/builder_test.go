// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package imageurl

import (
	"testing"

	"github.com/meshintel/enrich-engine/internal/cache"
	"github.com/meshintel/enrich-engine/pkg/types"
)

func testBuilder() *Builder {
	cfg := types.ImageConfig{
		PlaceholderURL: "/placeholder-image.png",
		ProxyPath:      "/api/image-proxy",
	}
	return NewBuilder(cfg, cache.New[string](0))
}

func TestAbsentInputsReturnPlaceholder(t *testing.T) {
	b := testBuilder()
	tests := []struct {
		name string
		got  string
	}{
		{"proxied empty", b.Proxied("")},
		{"tmdb empty path", b.TMDb("", "w500")},
		{"spotify nil array", b.Spotify(nil)},
		{"spotify empty array", b.Spotify([]types.SpotifyImage{})},
		{"spotify first without url", b.Spotify([]types.SpotifyImage{{Height: 640}})},
		{"wikidata empty id", b.Wikidata("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != "/placeholder-image.png" {
				t.Errorf("got %q, want placeholder", tt.got)
			}
		})
	}
}

func TestProxiedEncodesURL(t *testing.T) {
	b := testBuilder()
	got := b.Proxied("https://example.com/a b.jpg?x=1&y=2")
	want := "/api/image-proxy?url=" + "https%3A%2F%2Fexample.com%2Fa+b.jpg%3Fx%3D1%26y%3D2"
	if got != want {
		t.Errorf("Proxied() = %q, want %q", got, want)
	}
}

func TestProxiedIdempotentUnderCaching(t *testing.T) {
	urls := cache.New[string](0)
	b := NewBuilder(types.ImageConfig{
		PlaceholderURL: "/placeholder-image.png",
		ProxyPath:      "/api/image-proxy",
	}, urls)

	first := b.Proxied("https://example.com/x.jpg")
	second := b.Proxied("https://example.com/x.jpg")

	if first != second {
		t.Errorf("repeat call returned %q, want %q", second, first)
	}

	// Second call must come from the cache, not a re-encode.
	hits, _ := urls.Stats()
	if hits != 1 {
		t.Errorf("cache hits = %d, want 1", hits)
	}
	if urls.Len() != 1 {
		t.Errorf("cache entries = %d, want 1", urls.Len())
	}
}

func TestTMDbURL(t *testing.T) {
	b := testBuilder()
	tests := []struct {
		name string
		path string
		size string
		want string
	}{
		{"explicit size", "/abc123.jpg", "w185", "https://image.tmdb.org/t/p/w185/abc123.jpg"},
		{"default size", "/abc123.jpg", "", "https://image.tmdb.org/t/p/w500/abc123.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.TMDb(tt.path, tt.size); got != tt.want {
				t.Errorf("TMDb() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpotifyReturnsFirstURLUnproxied(t *testing.T) {
	b := testBuilder()
	images := []types.SpotifyImage{
		{URL: "https://i.scdn.co/image/big", Height: 640, Width: 640},
		{URL: "https://i.scdn.co/image/small", Height: 64, Width: 64},
	}
	got := b.Spotify(images)
	if got != "https://i.scdn.co/image/big" {
		t.Errorf("Spotify() = %q, want the first image URL untouched", got)
	}
}

func TestWikidataRoutesThroughProxy(t *testing.T) {
	b := testBuilder()
	got := b.Wikidata("Q12345")
	want := "/api/image-proxy?url=" +
		"https%3A%2F%2Fcommons.wikimedia.org%2Fwiki%2FSpecial%3AFilePath%2FQ12345%3Fwidth%3D800"
	if got != want {
		t.Errorf("Wikidata() = %q, want %q", got, want)
	}
}

func TestTrimBoundsCache(t *testing.T) {
	urls := cache.New[string](0)
	b := NewBuilder(types.ImageConfig{
		PlaceholderURL: "/placeholder-image.png",
		ProxyPath:      "/api/image-proxy",
	}, urls)

	b.Proxied("https://example.com/1.jpg")
	b.Proxied("https://example.com/2.jpg")
	b.Proxied("https://example.com/3.jpg")

	b.Trim(1)

	if urls.Len() != 1 {
		t.Fatalf("cache entries after Trim(1) = %d, want 1", urls.Len())
	}
	// The surviving entry is not the first one inserted.
	if _, ok := urls.Get("proxy_https://example.com/1.jpg"); ok {
		t.Error("first-inserted entry survived Trim, want it evicted")
	}
}
