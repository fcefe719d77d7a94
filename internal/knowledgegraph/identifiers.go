// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package knowledgegraph

import "regexp"

var (
	wikidataIDPattern = regexp.MustCompile(`wikidata\.org/entity/(Q\d+)`)
	freebaseIDPattern = regexp.MustCompile(`(/m/[a-z0-9_]+)`)
)

// ExtractWikidataID pulls a Wikidata Q-id out of an entity identifier
// such as "https://www.wikidata.org/entity/Q12345". Returns "" when the
// identifier carries none.
func ExtractWikidataID(id string) string {
	m := wikidataIDPattern.FindStringSubmatch(id)
	if m == nil {
		return ""
	}
	return m[1]
}

// ExtractFreebaseID pulls a legacy Freebase id ("/m/<token>") out of an
// entity identifier such as "kg:/m/0dl567". Freebase was discontinued and
// no lookup consumes these ids; the extractor exists because Knowledge
// Graph identifiers still carry them.
func ExtractFreebaseID(id string) string {
	m := freebaseIDPattern.FindStringSubmatch(id)
	if m == nil {
		return ""
	}
	return m[1]
}
