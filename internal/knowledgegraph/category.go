// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package knowledgegraph

import (
	"strings"

	"github.com/meshintel/enrich-engine/pkg/types"
)

// categoryRule maps substring keywords over an entity's joined type tags
// to a category. Rules are checked in order and the first match wins, so
// a MusicGroup that is also an Actor classifies as artists.
type categoryRule struct {
	category types.Category
	keywords []string
}

var categoryRules = []categoryRule{
	{types.CategoryArtists, []string{"music", "artist", "band", "musician", "singer"}},
	{types.CategoryCelebrities, []string{"actor", "actress", "celebrity", "person", "director", "athlete"}},
	{types.CategoryMedia, []string{"movie", "film", "show", "series", "book", "game", "anime"}},
	{types.CategoryFashion, []string{"brand", "clothing", "organization", "company"}},
}

// Category classifies an entity by its type tags. Entities matching no
// rule (including those with no tags at all) default to celebrities.
func Category(entity types.KnowledgeGraphEntity) types.Category {
	joined := strings.ToLower(strings.Join(entity.Types, " "))
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(joined, kw) {
				return rule.category
			}
		}
	}
	return types.CategoryCelebrities
}
