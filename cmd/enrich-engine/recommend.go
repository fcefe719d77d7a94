package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meshintel/enrich-engine/internal/recommend"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend [query]",
	Short: "Produce recommendation items for a free-text query",
	Long: `Recommend queries the Google Knowledge Graph and Wikipedia for entities
matching a free-text query, merges and deduplicates the results, and
prints enriched recommendation items with category, reason, features,
and image URL.

With --load, a previously saved result file is printed instead of
querying the APIs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		loadPath, _ := cmd.Flags().GetString("load")

		if loadPath != "" {
			rf, err := recommend.ReadResultFile(loadPath)
			if err != nil {
				return err
			}
			out := recommend.Output{
				Items:        rf.Items,
				DupsRemoved:  rf.Summary.DupsRemoved,
				SourceErrors: rf.Summary.SourceErrors,
			}
			return printOutput(out, asJSON)
		}

		if len(args) == 0 {
			return fmt.Errorf("query argument is required (or use --load)")
		}

		source, _ := cmd.Flags().GetString("source")
		typesFlag, _ := cmd.Flags().GetString("types")
		maxResults, _ := cmd.Flags().GetInt("max-results")
		savePath, _ := cmd.Flags().GetString("save")

		cfg := buildConfig()
		if maxResults <= 0 {
			maxResults = cfg.MaxResults
		}
		eng := buildEngine(cfg)
		sources := eng.selectSources(source)
		if len(sources) == 0 {
			return fmt.Errorf("unknown source %q (want all, knowledge_graph, or wikipedia)", source)
		}

		query := recommend.Query{Text: args[0]}
		if typesFlag != "" {
			query.Types = strings.Split(typesFlag, ",")
		}

		out, err := recommend.Recommend(cmd.Context(), query, sources, maxResults, os.Stderr)
		if err != nil {
			return err
		}

		if savePath != "" {
			if err := recommend.WriteResultFile(savePath, query, out); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Saved results to %s\n", savePath)
		}

		return printOutput(out, asJSON)
	},
}

func printOutput(out recommend.Output, asJSON bool) error {
	if asJSON {
		return recommend.FormatJSON(out, os.Stdout)
	}
	recommend.FormatTable(out, os.Stdout)
	return nil
}

func init() {
	recommendCmd.Flags().String("source", "all", "source to query: all, knowledge_graph, or wikipedia")
	recommendCmd.Flags().String("types", "", "Knowledge Graph type filter (comma-separated, e.g. Person,MusicGroup)")
	recommendCmd.Flags().Int("max-results", 0, "maximum number of items to return (default from config)")
	recommendCmd.Flags().Bool("json", false, "output results as JSON")
	recommendCmd.Flags().String("save", "", "save results to a YAML file")
	recommendCmd.Flags().String("load", "", "print a previously saved result file instead of querying")

	rootCmd.AddCommand(recommendCmd)
}
