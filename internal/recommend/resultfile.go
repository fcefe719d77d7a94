// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recommend

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/meshintel/enrich-engine/pkg/types"
)

// ResultFile is the on-disk representation of a recommendation query and
// its merged items. A query can be saved to a file and reloaded later
// without re-querying the upstream APIs.
type ResultFile struct {
	Query   QueryParams                `yaml:"query"`
	Items   []types.RecommendationItem `yaml:"items"`
	Summary ResultSummary              `yaml:"summary"`
}

// QueryParams stores the query in a serializable form.
type QueryParams struct {
	Text  string   `yaml:"text"`
	Types []string `yaml:"types,omitempty"`
	Limit int      `yaml:"limit,omitempty"`
}

// ResultSummary stores result statistics and a timestamp.
type ResultSummary struct {
	Total        int       `yaml:"total"`
	DupsRemoved  int       `yaml:"dups_removed"`
	SourceErrors []string  `yaml:"source_errors,omitempty"`
	Timestamp    time.Time `yaml:"timestamp"`
}

// WriteResultFile saves a query and its output to a YAML file.
func WriteResultFile(path string, query Query, out Output) error {
	rf := ResultFile{
		Query: QueryParams{
			Text:  query.Text,
			Types: query.Types,
			Limit: query.Limit,
		},
		Items: out.Items,
		Summary: ResultSummary{
			Total:        len(out.Items),
			DupsRemoved:  out.DupsRemoved,
			SourceErrors: out.SourceErrors,
			Timestamp:    time.Now(),
		},
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling result file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadResultFile loads a previously saved result file from disk.
func ReadResultFile(path string) (*ResultFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file: %w", err)
	}
	var rf ResultFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing result file: %w", err)
	}
	return &rf, nil
}

// ToQuery converts stored QueryParams back into a Query.
func (p QueryParams) ToQuery() Query {
	return Query{Text: p.Text, Types: p.Types, Limit: p.Limit}
}
