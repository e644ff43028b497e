package router

import (
	"html/template"
	"io"
	"net/http"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/Sonu-Thomas-001/AI-Club-HCLTech-Madurai/internal/model"
)

var log = commonlog.GetLogger("clubsite.router")

// PartialHeader marks requests made by the fragment navigation script; they
// get the page body without the surrounding layout.
const PartialHeader = "HX-Request"

// TitleHeader carries the page title on partial responses.
const TitleHeader = "X-Page-Title"

// Layout wraps a page body into a full document.
type Layout interface {
	Render(w io.Writer, state *model.AppState, path string, page Page, body template.HTML) error
}

// Handler serves the route table over HTTP.
type Handler struct {
	table  *Table
	layout Layout
}

func NewHandler(table *Table, layout Layout) *Handler {
	return &Handler{table: table, layout: layout}
}

func IsPartial(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get(PartialHeader), "true")
}

// SetNoCache marks a response as always revalidated.
func SetNoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if redirectTrailingSlash(w, r) {
		return
	}

	page, resolved := h.table.Lookup(r.URL.Path)
	body, err := page.Body(r.Context())
	if err != nil {
		log.Errorf("rendering %s: %v", resolved, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	SetNoCache(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if IsPartial(r) {
		w.Header().Set(TitleHeader, page.Title())
		_, _ = io.WriteString(w, string(body))
		return
	}

	state := model.NewAppState("")
	if c, err := r.Cookie(model.ThemeCookie); err == nil {
		state = model.NewAppState(c.Value)
	}
	if err := h.layout.Render(w, state, resolved, page, body); err != nil {
		log.Errorf("layout for %s: %v", resolved, err)
	}
}

// redirectTrailingSlash canonicalizes "/about/" to "/about". It returns true
// when a redirect was written.
func redirectTrailingSlash(w http.ResponseWriter, r *http.Request) bool {
	original := r.URL.Path
	canonical := strings.TrimRight(original, "/")
	if canonical == "" {
		canonical = "/"
	}
	if canonical == original {
		return false
	}
	http.Redirect(w, r, canonical, http.StatusMovedPermanently)
	return true
}
