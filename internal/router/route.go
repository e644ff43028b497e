// Package router maps fragment paths such as "#/about" to pages, both for a
// navigation session and for the HTTP surface that serves them.
package router

import (
	"context"
	"html/template"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Page renders the main content of one route.
type Page interface {
	Title() string
	Body(ctx context.Context) (template.HTML, error)
}

// Table is the immutable path to page mapping built at startup. Paths that
// are not registered resolve to the fallback entry.
type Table struct {
	routes   map[string]Page
	fallback string
}

func NewTable(routes map[string]Page, fallback string) (*Table, error) {
	if _, ok := routes[fallback]; !ok {
		return nil, errors.Errorf("fallback route %q is not registered", fallback)
	}
	copied := make(map[string]Page, len(routes))
	for path, page := range routes {
		if page == nil {
			return nil, errors.Errorf("route %q has no page", path)
		}
		copied[path] = page
	}
	return &Table{routes: copied, fallback: fallback}, nil
}

// Lookup returns the page for path and the path it resolved to.
func (t *Table) Lookup(path string) (Page, string) {
	if page, ok := t.routes[path]; ok {
		return page, path
	}
	return t.routes[t.fallback], t.fallback
}

func (t *Table) Has(path string) bool {
	_, ok := t.routes[path]
	return ok
}

func (t *Table) Fallback() string {
	return t.fallback
}

func (t *Table) Paths() []string {
	paths := make([]string, 0, len(t.routes))
	for path := range t.routes {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// PathFromFragment turns a URL fragment into a route path. The fragment is
// not validated: "#/x" and "/x" both give "/x", and empty gives "/".
func PathFromFragment(fragment string) string {
	path := strings.TrimPrefix(fragment, "#")
	if path == "" {
		return "/"
	}
	return path
}
