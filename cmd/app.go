package cmd

import (
	"fmt"

	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/config"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/content"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/model"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/overlay"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/site"
)

// openStorage returns the overlay backend: sqlite when a path is configured,
// memory otherwise. The returned func releases it.
func openStorage(cfg config.Config) (overlay.Storage, func(), error) {
	if cfg.OverlayPath == "" {
		log.Notice("no overlayPath configured, community posts are kept in memory")
		return overlay.NewMemoryStorage(), func() {}, nil
	}
	db, err := overlay.OpenSQLite(cfg.OverlayPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open overlay store '%s': %w", cfg.OverlayPath, err)
	}
	return db, func() {
		if err := db.Close(); err != nil {
			log.Errorf("closing overlay store: %v", err)
		}
	}, nil
}

// offlineFetcher reads resources from the static directory unless a remote
// resource base is configured.
func offlineFetcher(cfg config.Config) content.Fetcher {
	if cfg.ResourceBaseURL != "" {
		return content.NewLoader(cfg.ResourceBaseURL)
	}
	return content.DirLoader{Dir: cfg.StaticDir}
}

func newSite(cfg config.Config, data *model.SiteData, fetcher content.Fetcher) (*site.Site, func(), error) {
	storage, closeStorage, err := openStorage(cfg)
	if err != nil {
		return nil, nil, err
	}
	s, err := site.New(site.Options{
		Config:  cfg,
		Data:    data,
		Fetcher: fetcher,
		Storage: storage,
	})
	if err != nil {
		closeStorage()
		return nil, nil, fmt.Errorf("failed to assemble site: %w", err)
	}
	return s, closeStorage, nil
}
