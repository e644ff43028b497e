package model

import (
	"html/template"
)

// ContentItem represents a single markdown page (about, faq, ...).
type ContentItem struct {
	Title       string
	Summary     string
	Path        string
	SourcePath  string
	ContentHTML template.HTML
	Frontmatter map[string]interface{}
}

// NavItem is one entry of the header navigation.
type NavItem struct {
	Title string `yaml:"title"`
	Path  string `yaml:"path"`
}

// SiteData holds site-wide metadata read from config.yaml.
type SiteData struct {
	Title   string    `yaml:"title"`
	Tagline string    `yaml:"tagline"`
	Footer  string    `yaml:"footer"`
	Nav     []NavItem `yaml:"nav"`
}
