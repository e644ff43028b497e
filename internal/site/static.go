package site

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// staticFiles serves files from the static directory (CSV resources,
// stylesheet, images). Directories are never listed.
type staticFiles struct {
	dir string
}

func (s staticFiles) lookup(urlPath string) (string, bool) {
	if s.dir == "" || urlPath == "/" {
		return "", false
	}
	clean := path.Clean("/" + urlPath)
	full := filepath.Join(s.dir, filepath.FromSlash(strings.TrimPrefix(clean, "/")))
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return "", false
	}
	return full, true
}

// serve answers with a content hash ETag and asks clients to revalidate, so a
// republished CSV is picked up by the next fetch.
func (s staticFiles) serve(w http.ResponseWriter, r *http.Request, full string) {
	data, err := os.ReadFile(full)
	if err != nil {
		log.Errorf("reading %s: %v", full, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	info, err := os.Stat(full)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("ETag", fmt.Sprintf(`"%016x"`, xxhash.Sum64(data)))
	if strings.HasSuffix(full, ".csv") {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	}
	http.ServeContent(w, r, filepath.Base(full), info.ModTime(), bytes.NewReader(data))
}
