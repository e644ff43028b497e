// Package site wires content, pages and handlers into the served website.
package site

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/tliron/commonlog"

	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/calendar"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/community"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/config"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/content"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/model"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/overlay"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/pages"
	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/router"
)

var log = commonlog.GetLogger("clubsite.site")

// Routes are the site's pages. Data pages are always registered; the others
// need a markdown file in the content directory.
var Routes = []string{
	"/",
	"/about",
	"/projects",
	"/events",
	"/calendar",
	"/learn",
	"/members",
	"/gallery",
	"/community",
	"/contact",
	"/portal",
	"/join",
	"/news",
	"/faq",
	"/partner",
	"/leaderboard",
}

type Options struct {
	Config  config.Config
	Data    *model.SiteData
	Fetcher content.Fetcher
	Storage overlay.Storage
	Now     func() time.Time
}

type Site struct {
	Table    *router.Table
	Layout   *pages.Layout
	Markdown *pages.Markdown
	Feed     *community.Feed

	members   *pages.Members
	calendar  *pages.Calendar
	staticDir string
}

func New(opts Options) (*Site, error) {
	templates, err := pages.ParseTemplates()
	if err != nil {
		return nil, err
	}
	md := pages.NewMarkdown(opts.Config.ContentDir, templates)
	if err := md.Reload(); err != nil {
		return nil, err
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	data := opts.Data
	if data == nil {
		data = &model.SiteData{}
	}

	events := content.NewSource(opts.Fetcher, calendar.ResourcePath, calendar.EventFromRow)
	feed := community.NewFeed(opts.Fetcher, opts.Storage)
	membersPage := pages.NewMembers(templates, opts.Fetcher)
	calendarPage := pages.NewCalendar(templates, events, now)

	dataPages := map[string]router.Page{
		"/":            pages.NewHome(templates, md, opts.Fetcher),
		"/members":     membersPage,
		"/community":   pages.NewCommunity(templates, feed),
		"/leaderboard": pages.NewLeaderboard(templates, opts.Fetcher),
		"/events":      pages.NewEvents(templates, events, now),
		"/calendar":    calendarPage,
	}

	routes := make(map[string]router.Page)
	for _, path := range Routes {
		if page, ok := dataPages[path]; ok {
			routes[path] = page
			continue
		}
		if _, ok := md.Get(path); ok {
			routes[path] = md.Page(path)
			continue
		}
		log.Warningf("no content for %s, route not registered", path)
	}
	for _, path := range md.Paths() {
		if _, ok := routes[path]; !ok {
			routes[path] = md.Page(path)
		}
	}

	table, err := router.NewTable(routes, "/")
	if err != nil {
		return nil, fmt.Errorf("failed to build route table: %w", err)
	}

	return &Site{
		Table:     table,
		Layout:    pages.NewLayout(templates, data, opts.Config.SiteTitle, opts.Config.BaseURL),
		Markdown:  md,
		Feed:      feed,
		members:   membersPage,
		calendar:  calendarPage,
		staticDir: opts.Config.StaticDir,
	}, nil
}

// Handler serves pages, static resources and the form endpoints.
func (s *Site) Handler() http.Handler {
	pageHandler := router.NewHandler(s.Table, s.Layout)
	mux := http.NewServeMux()
	mux.Handle("GET /calendar/{month}", s.calendarMonth(pageHandler))
	mux.HandleFunc("POST /community/posts", s.submitPost)
	mux.HandleFunc("POST /community/posts/{id}/like", s.likePost)
	mux.HandleFunc("POST /community/posts/{id}/comments", s.addComment)
	mux.HandleFunc("GET /community/export", s.exportPosts)
	mux.HandleFunc("POST /members/search", s.searchMembers)
	mux.HandleFunc("POST /theme", s.toggleTheme)
	mux.Handle("/", &staticOrPage{
		static: staticFiles{dir: s.staticDir},
		pages:  pageHandler,
	})
	return mux
}

// CalendarMonths are the month pages a static build publishes, by path.
func (s *Site) CalendarMonths(ctx context.Context) map[string]router.Page {
	out := make(map[string]router.Page)
	for _, key := range s.calendar.MonthKeys(ctx) {
		year, month, _ := calendar.ParseMonthKey(key)
		out[pages.MonthPath(key)] = s.calendar.MonthPage(year, month)
	}
	return out
}

// Render writes the full document for path, as a first visit would get it.
func (s *Site) Render(ctx context.Context, w io.Writer, path string, page router.Page) error {
	body, err := page.Body(ctx)
	if err != nil {
		return fmt.Errorf("failed to render '%s': %w", path, err)
	}
	return s.Layout.Render(w, model.NewAppState(""), path, page, body)
}

// respond writes body alone for fragment navigation, or inside the layout.
func (s *Site) respond(w http.ResponseWriter, r *http.Request, path string, body template.HTML) {
	page, resolved := s.Table.Lookup(path)
	router.SetNoCache(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if router.IsPartial(r) {
		w.Header().Set(router.TitleHeader, page.Title())
		_, _ = io.WriteString(w, string(body))
		return
	}
	if err := s.Layout.Render(w, themeState(r), resolved, page, body); err != nil {
		log.Errorf("layout for %s: %v", resolved, err)
	}
}

type staticOrPage struct {
	static staticFiles
	pages  http.Handler
}

func (h *staticOrPage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		if path, ok := h.static.lookup(r.URL.Path); ok {
			h.static.serve(w, r, path)
			return
		}
	}
	h.pages.ServeHTTP(w, r)
}
