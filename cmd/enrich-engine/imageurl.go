package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meshintel/enrich-engine/internal/imageurl"
	"github.com/meshintel/enrich-engine/pkg/types"
)

var imageURLCmd = &cobra.Command{
	Use:   "image-url",
	Short: "Build display-ready image URLs",
	Long: `Image-url prints the URL the engine would hand to a frontend for a given
image reference: a raw URL routed through the image proxy, a TMDb poster
path, a Spotify image URL (passed through untouched), or a Wikidata
entity ID resolved to a Wikimedia Commons file.

Exactly one of --proxy, --tmdb, --spotify, or --wikidata must be given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		proxyURL, _ := cmd.Flags().GetString("proxy")
		tmdbPath, _ := cmd.Flags().GetString("tmdb")
		size, _ := cmd.Flags().GetString("size")
		spotifyURL, _ := cmd.Flags().GetString("spotify")
		wikidataID, _ := cmd.Flags().GetString("wikidata")

		set := 0
		for _, v := range []string{proxyURL, tmdbPath, spotifyURL, wikidataID} {
			if v != "" {
				set++
			}
		}
		if set != 1 {
			return fmt.Errorf("exactly one of --proxy, --tmdb, --spotify, or --wikidata must be given")
		}

		eng := buildEngine(buildConfig())
		switch {
		case proxyURL != "":
			fmt.Println(eng.images.Proxied(proxyURL))
		case tmdbPath != "":
			fmt.Println(eng.images.TMDb(tmdbPath, size))
		case spotifyURL != "":
			fmt.Println(eng.images.Spotify([]types.SpotifyImage{{URL: spotifyURL}}))
		case wikidataID != "":
			fmt.Println(eng.images.Wikidata(wikidataID))
		}
		return nil
	},
}

func init() {
	imageURLCmd.Flags().String("proxy", "", "raw image URL to route through the image proxy")
	imageURLCmd.Flags().String("tmdb", "", "TMDb image path (e.g. /abc123.jpg)")
	imageURLCmd.Flags().String("size", imageurl.DefaultTMDbSize, "TMDb image size variant")
	imageURLCmd.Flags().String("spotify", "", "Spotify image URL (returned without proxying)")
	imageURLCmd.Flags().String("wikidata", "", "Wikidata entity ID (e.g. Q12345)")

	rootCmd.AddCommand(imageURLCmd)
}
