// Package pages renders the site's pages: markdown content pages and the
// data pages backed by CSV resources.
package pages

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/leaderboard"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/model"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/router"
)

var log = commonlog.GetLogger("clubsite.pages")

//go:embed layouts/*.html
var layoutFS embed.FS

const baseLayout = "base.html"

var funcs = template.FuncMap{
	"score": leaderboard.FormatScore,
	"percent": func(b leaderboard.Board, s leaderboard.Standing) string {
		return fmt.Sprintf("%.1f", b.Percent(s))
	},
	"pad2": func(n int) string {
		return fmt.Sprintf("%02d", n)
	},
}

// Templates holds the base layout and the page partials.
type Templates struct {
	tmpl *template.Template
}

func ParseTemplates() (*Templates, error) {
	tmpl, err := template.New(baseLayout).Funcs(funcs).ParseFS(layoutFS, "layouts/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded layouts: %w", err)
	}
	return &Templates{tmpl: tmpl}, nil
}

// Execute renders a named partial into HTML.
func (t *Templates) Execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := t.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template '%s': %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// Header is the title block at the top of each page.
type Header struct {
	Title    string
	Subtitle string
}

// Layout wraps page bodies in the site shell.
type Layout struct {
	templates *Templates
	site      *model.SiteData
	siteTitle string
	baseURL   string
}

func NewLayout(templates *Templates, site *model.SiteData, siteTitle, baseURL string) *Layout {
	if site.Title != "" {
		siteTitle = site.Title
	}
	return &Layout{
		templates: templates,
		site:      site,
		siteTitle: siteTitle,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// Nav renders the header navigation; each entry is an in-app link.
func (l *Layout) Nav() template.HTML {
	var b strings.Builder
	for _, item := range l.site.Nav {
		link := router.Link{
			To:       item.Path,
			Class:    "nav-link",
			Children: template.HTML(template.HTMLEscapeString(item.Title)),
		}
		b.WriteString(string(link.HTML()))
	}
	return template.HTML(b.String())
}

func (l *Layout) Render(w io.Writer, state *model.AppState, path string, page router.Page, body template.HTML) error {
	data := model.PageData{
		SiteTitle: l.siteTitle,
		PageTitle: page.Title(),
		Path:      path,
		Content:   body,
		BaseURL:   l.baseURL,
		Theme:     state.Theme,
		Nav:       l.Nav(),
		Footer:    l.site.Footer,
	}
	if err := l.templates.tmpl.ExecuteTemplate(w, baseLayout, data); err != nil {
		return fmt.Errorf("failed to execute base layout for '%s': %w", path, err)
	}
	return nil
}
