package pages

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/model"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/router"
)

// Markdown is the set of content pages read from a directory of .md files
// with optional YAML frontmatter (title, summary, path).
type Markdown struct {
	dir       string
	md        goldmark.Markdown
	templates *Templates

	mu    sync.RWMutex
	items map[string]*model.ContentItem
}

func NewMarkdown(dir string, templates *Templates) *Markdown {
	return &Markdown{
		dir:       dir,
		templates: templates,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				gmhtml.WithHardWraps(),
				// Content pages carry the contact and join forms.
				gmhtml.WithUnsafe(),
			),
		),
		items: make(map[string]*model.ContentItem),
	}
}

func (m *Markdown) Dir() string {
	return m.dir
}

// Reload reads every markdown file again and swaps the whole set.
func (m *Markdown) Reload() error {
	if _, err := os.Stat(m.dir); os.IsNotExist(err) {
		return fmt.Errorf("content directory '%s' not found", m.dir)
	}

	items := make(map[string]*model.ContentItem)
	err := filepath.WalkDir(m.dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("error accessing path '%s' during walk: %w", path, walkErr)
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}
		item, err := m.load(path)
		if err != nil {
			return err
		}
		if prev, ok := items[item.Path]; ok {
			log.Warningf("%s and %s both claim path %s, keeping the first", prev.SourcePath, path, item.Path)
			return nil
		}
		items[item.Path] = item
		return nil
	})
	if err != nil {
		return fmt.Errorf("error during content walk: %w", err)
	}

	m.mu.Lock()
	m.items = items
	m.mu.Unlock()
	log.Infof("loaded %d content pages from %s", len(items), m.dir)
	return nil
}

func (m *Markdown) load(path string) (*model.ContentItem, error) {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file '%s': %w", path, err)
	}

	var fm map[string]interface{}
	body, err := frontmatter.Parse(bytes.NewReader(fileBytes), &fm)
	if err != nil {
		log.Warningf("could not parse frontmatter for %s: %v, treating as pure markdown", path, err)
		body = fileBytes
		fm = nil
	}
	if fm == nil {
		fm = make(map[string]interface{})
	}

	var html bytes.Buffer
	if err := m.md.Convert(body, &html); err != nil {
		return nil, fmt.Errorf("failed to convert markdown to HTML for file '%s': %w", path, err)
	}

	rel, _ := filepath.Rel(m.dir, path)
	item := &model.ContentItem{
		Title:       stringField(fm, "title"),
		Summary:     stringField(fm, "summary"),
		Path:        stringField(fm, "path"),
		SourcePath:  path,
		ContentHTML: template.HTML(html.String()),
		Frontmatter: fm,
	}
	if item.Path == "" {
		item.Path = routePath(rel)
	}
	if item.Title == "" {
		item.Title = titleFromFile(rel)
	}
	return item, nil
}

func stringField(fm map[string]interface{}, key string) string {
	if v, ok := fm[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// routePath maps "about.md" to "/about" and "index.md" to "/".
func routePath(rel string) string {
	p := filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
	if p == "index" {
		return "/"
	}
	return "/" + strings.TrimSuffix(p, "/index")
}

func titleFromFile(rel string) string {
	base := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
	if base == "index" {
		return "Home"
	}
	base = strings.ReplaceAll(strings.ReplaceAll(base, "-", " "), "_", " ")
	return cases.Title(language.English).String(base)
}

func (m *Markdown) Get(path string) (*model.ContentItem, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.items[path]
	return item, ok
}

func (m *Markdown) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	paths := make([]string, 0, len(m.items))
	for p := range m.items {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Page returns the route entry for a content path. The entry reads the
// current content on each render, so Reload is picked up without rebuilding
// the route table.
func (m *Markdown) Page(path string) router.Page {
	return &markdownPage{set: m, path: path}
}

type markdownPage struct {
	set  *Markdown
	path string
}

func (p *markdownPage) Title() string {
	if item, ok := p.set.Get(p.path); ok {
		return item.Title
	}
	return ""
}

func (p *markdownPage) Body(context.Context) (template.HTML, error) {
	item, ok := p.set.Get(p.path)
	if !ok {
		return p.set.templates.Execute("placeholder", "This page is no longer available.")
	}
	return p.set.templates.Execute("markdown", struct {
		Header Header
		Item   *model.ContentItem
	}{
		Header: Header{Title: item.Title, Subtitle: item.Summary},
		Item:   item,
	})
}
