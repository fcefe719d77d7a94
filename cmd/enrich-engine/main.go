// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the enrich-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meshintel/enrich-engine/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the enrich-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "enrich-engine",
	Short: "Entity enrichment and recommendation engine",
	Long: `enrich-engine turns free-text queries into enriched recommendation items
by combining the Google Knowledge Graph Search API with the Wikipedia API.
Entities are categorized, described, and given display-ready image URLs.

Run recommendations from the command line with the recommend subcommand,
or start the HTTP API with serve.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./enrich-engine.yaml or ~/.config/enrich-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("enrich-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "enrich-engine"))
		}
	}

	viper.SetEnvPrefix("ENRICH_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
