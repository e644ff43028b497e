package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/community"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/config"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/model"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Writes the merged community feed as CSV",
	Long: `The export command loads the canonical community posts, merges the posts
kept in the overlay store and writes the result with the canonical header.
Replacing the published community_posts.csv with this file makes local posts
visible to everyone. Use '-o -' to write to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var w io.Writer = cmd.OutOrStdout()
		if exportOutput != "-" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create '%s': %w", exportOutput, err)
			}
			defer f.Close()
			w = f
		}
		stats, err := runExport(cmd.Context(), appConfig, siteData, w)
		if err != nil {
			return err
		}
		log.Noticef("exported %d posts (%d likes) to %s", stats.Posts, stats.Likes, exportOutput)
		return nil
	},
}

func runExport(ctx context.Context, cfg config.Config, data *model.SiteData, w io.Writer) (community.Stats, error) {
	s, closeStorage, err := newSite(cfg, data, offlineFetcher(cfg))
	if err != nil {
		return community.Stats{}, err
	}
	defer closeStorage()

	if _, err := s.Feed.Load(ctx); err != nil {
		return community.Stats{}, fmt.Errorf("failed to load community feed: %w", err)
	}
	if err := s.Feed.Export(w); err != nil {
		return community.Stats{}, fmt.Errorf("failed to export community feed: %w", err)
	}
	return s.Feed.Stats(), nil
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", community.ExportFilename, "file to write, '-' for stdout")
	rootCmd.AddCommand(exportCmd)
}
