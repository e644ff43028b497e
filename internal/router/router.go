package router

import "sync"

// Navigator accepts fragment navigations.
type Navigator interface {
	Navigate(fragment string)
}

// Listener is told about every navigation, including repeated ones.
type Listener func(path string, page Page)

// Router is one navigation session: the current path and scroll offset.
type Router struct {
	table *Table

	mu        sync.Mutex
	path      string
	scrollY   int
	listeners []Listener
}

func New(table *Table) *Router {
	return &Router{table: table, path: "/"}
}

func (r *Router) OnNavigate(l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, l)
}

// Navigate switches to the page for fragment, resets the scroll offset and
// notifies listeners.
func (r *Router) Navigate(fragment string) {
	path := PathFromFragment(fragment)
	page, _ := r.table.Lookup(path)

	r.mu.Lock()
	r.path = path
	r.scrollY = 0
	listeners := append([]Listener(nil), r.listeners...)
	r.mu.Unlock()

	for _, l := range listeners {
		l(path, page)
	}
}

// Current returns the current path as navigated to and the page shown for it.
func (r *Router) Current() (string, Page) {
	r.mu.Lock()
	path := r.path
	r.mu.Unlock()
	page, _ := r.table.Lookup(path)
	return path, page
}

func (r *Router) ScrollTo(y int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scrollY = y
}

func (r *Router) ScrollY() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scrollY
}
