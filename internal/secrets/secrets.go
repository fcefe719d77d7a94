// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the
// key name and the file contents (trimmed) are the value.
//
// Supported key files: google-knowledge-graph-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// KnowledgeGraphKeyFile is the secret file name for the Knowledge Graph
// API key. The GOOGLE_KNOWLEDGE_GRAPH_API_KEY environment variable takes
// precedence over the file.
const KnowledgeGraphKeyFile = "google-knowledge-graph-api-key"

// KnowledgeGraphKeyEnv is the environment variable holding the Knowledge
// Graph API key.
const KnowledgeGraphKeyEnv = "GOOGLE_KNOWLEDGE_GRAPH_API_KEY"

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory or missing files are not errors; Load
// returns an empty map. Unreadable files produce a warning on stderr but
// do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// KnowledgeGraphKey resolves the Knowledge Graph API key: environment
// first, then the loaded secrets map. Returns "" when neither is set.
func KnowledgeGraphKey(loaded map[string]string) string {
	if v := os.Getenv(KnowledgeGraphKeyEnv); v != "" {
		return v
	}
	return loaded[KnowledgeGraphKeyFile]
}
