// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the enrich-engine
// pipeline: the normalized recommendation record produced by every source
// client and the external API shapes those clients decode.
package types

// Category is the topical bucket a recommendation item is filed under.
type Category string

const (
	CategoryArtists     Category = "artists"
	CategoryCelebrities Category = "celebrities"
	CategoryMedia       Category = "media"
	CategoryFashion     Category = "fashion"
)

// RecommendationItem is the normalized record consumed by rendering
// surfaces. Invariants: Features contains no empty strings and ImageURL is
// always a resolvable URL (a placeholder when nothing better exists,
// never empty).
type RecommendationItem struct {
	// Name is the display name of the entity.
	Name string `json:"name" yaml:"name"`

	// Category is the topical bucket derived from the entity's type tags.
	Category Category `json:"category" yaml:"category"`

	// Reason is a one-paragraph description of why the entity is shown.
	Reason string `json:"reason" yaml:"reason"`

	// Features lists up to four short descriptive strings in display order.
	Features []string `json:"features" yaml:"features"`

	// ImageURL is a displayable (usually proxied) image URL.
	ImageURL string `json:"image_url" yaml:"image_url"`

	// OfficialURL is the entity's canonical page, or "#" when unknown.
	OfficialURL string `json:"official_url" yaml:"official_url"`

	// Source identifies which client produced the item
	// (e.g. "knowledge_graph", "wikipedia").
	Source string `json:"source" yaml:"source"`

	// APIData carries the raw upstream record for debugging and display.
	APIData any `json:"api_data,omitempty" yaml:"api_data,omitempty"`
}

// KnowledgeGraphEntity is the external shape returned by the Google
// Knowledge Graph search API. Fields are decoded loosely; absent fields
// stay zero-valued.
type KnowledgeGraphEntity struct {
	// ID is the entity identifier, e.g. "kg:/m/0dl567" or a
	// wikidata.org/entity URL.
	ID string `json:"@id"`

	// Name is the entity display name.
	Name string `json:"name"`

	// Types lists schema.org type tags in source order, e.g.
	// ["Thing", "Person", "MusicGroup"].
	Types []string `json:"@type"`

	// Description is the short one-line description.
	Description string `json:"description"`

	// DetailedDescription carries the article body and its source.
	DetailedDescription *EntityDetailedDescription `json:"detailedDescription,omitempty"`

	// Image references the entity's representative image, if any.
	Image *EntityImage `json:"image,omitempty"`

	// URL is the entity's canonical (official) site.
	URL string `json:"url"`
}

// EntityDetailedDescription is the Knowledge Graph detailed description
// block: a body paragraph plus the page it was sourced from.
type EntityDetailedDescription struct {
	ArticleBody string `json:"articleBody"`
	URL         string `json:"url"`
	License     string `json:"license"`
}

// EntityImage is the Knowledge Graph image block.
type EntityImage struct {
	ContentURL string `json:"contentUrl"`
	URL        string `json:"url"`
	License    string `json:"license"`
}

// SpotifyImage is one element of a Spotify API image array.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}
