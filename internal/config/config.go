package config

import (
	"strconv"
	"time"
)

const DefaultPort = 1313

type Config struct {
	SiteTitle string `mapstructure:"siteTitle"`
	OutputDir string `mapstructure:"outputDir"`
	// BaseURL prefixes asset links in rendered pages.
	BaseURL string `mapstructure:"baseURL"`
	// ResourceBaseURL is where CSV resources are fetched from.
	ResourceBaseURL string        `mapstructure:"resourceBaseURL"`
	ContentDir      string        `mapstructure:"contentDir"`
	StaticDir       string        `mapstructure:"staticDir"`
	OverlayPath     string        `mapstructure:"overlayPath"`
	PollInterval    time.Duration `mapstructure:"pollInterval"`
	Port            int           `mapstructure:"port"`
}

// ResourceURL is the base the server fetches CSV resources from. Without a
// ResourceBaseURL the site fetches from its own server.
func (c Config) ResourceURL() string {
	if c.ResourceBaseURL != "" {
		return c.ResourceBaseURL
	}
	port := c.Port
	if port == 0 {
		port = DefaultPort
	}
	return "http://localhost:" + strconv.Itoa(port)
}
