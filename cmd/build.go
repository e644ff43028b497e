package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/config"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/model"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/router"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Renders every page into the output directory",
	Long: `The build command renders each registered page (markdown pages and the
data pages, with their CSV resources read from the static directory) into
'<outputDir>/<path>/index.html', one page per calendar month under
'<outputDir>/calendar/YYYY-MM/', and publishes the static directory alongside,
so the site can be hosted by any static file server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runBuildProcess(cmd.Context(), appConfig, siteData)
		return err
	},
}

// runBuildProcess renders the site into cfg.OutputDir and returns the number
// of pages written.
func runBuildProcess(ctx context.Context, cfg config.Config, data *model.SiteData) (int, error) {
	s, closeStorage, err := newSite(cfg, data, offlineFetcher(cfg))
	if err != nil {
		return 0, err
	}
	defer closeStorage()

	outputDir := cfg.OutputDir
	log.Infof("cleaning output directory %s", outputDir)
	if err := os.RemoveAll(outputDir); err != nil {
		return 0, fmt.Errorf("failed to remove output directory '%s': %w", outputDir, err)
	}
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return 0, fmt.Errorf("failed to create output directory '%s': %w", outputDir, err)
	}

	if _, err := os.Stat(cfg.StaticDir); err == nil {
		n, err := publishStatic(cfg.StaticDir, outputDir)
		if err != nil {
			return 0, fmt.Errorf("failed to publish static resources: %w", err)
		}
		log.Infof("published %d static files from %s", n, cfg.StaticDir)
	} else {
		log.Warningf("static directory '%s' not found, skipping", cfg.StaticDir)
	}

	if _, err := s.Feed.Load(ctx); err != nil {
		log.Errorf("%v", err)
	}

	// Every page is reached the way a visitor reaches it: through a link
	// activating the router.
	nav := router.New(s.Table)
	var renderErr error
	written := 0
	nav.OnNavigate(func(path string, page router.Page) {
		if renderErr != nil {
			return
		}
		if renderErr = writePage(ctx, s, outputDir, path, page); renderErr == nil {
			written++
		}
	})
	for _, path := range s.Table.Paths() {
		router.Link{To: path}.Activate(nav)
		if renderErr != nil {
			return written, renderErr
		}
	}

	// Month pages sit outside the route table.
	for path, page := range s.CalendarMonths(ctx) {
		if err := writePage(ctx, s, outputDir, path, page); err != nil {
			return written, err
		}
		written++
	}

	log.Noticef("build complete: %d pages in %s", written, outputDir)
	return written, nil
}

func writePage(ctx context.Context, s *site.Site, outputDir, path string, page router.Page) error {
	var buf bytes.Buffer
	if err := s.Render(ctx, &buf, path, page); err != nil {
		return err
	}
	outputPath := filepath.Join(outputDir, filepath.FromSlash(path), "index.html")
	if err := os.MkdirAll(filepath.Dir(outputPath), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory for '%s': %w", path, err)
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write '%s': %w", outputPath, err)
	}
	log.Debugf("generated %s", outputPath)
	return nil
}

// publishStatic mirrors the static directory into the output, skipping dot
// files (editor swap files, .DS_Store). It returns the number of files.
func publishStatic(src, dst string) (int, error) {
	files := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != src && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %s: %w", path, err)
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, os.ModePerm)
		}

		in, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer in.Close()
		out, err := os.Create(target)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", target, err)
		}
		if _, err := io.Copy(out, in); err != nil {
			out.Close()
			return fmt.Errorf("failed to copy %s: %w", path, err)
		}
		files++
		return out.Close()
	})
	return files, err
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
