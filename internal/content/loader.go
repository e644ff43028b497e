package content

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const defaultTimeout = 15 * time.Second

// StatusError reports a non-success HTTP status for a resource.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

// Fetcher retrieves a tabular resource by its site path.
type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]Row, error)
}

// Loader fetches CSV resources over HTTP, bypassing caches.
type Loader struct {
	BaseURL string
	Client  *http.Client
}

func NewLoader(baseURL string) *Loader {
	return &Loader{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: defaultTimeout},
	}
}

// URL joins the loader's base with a resource path.
func (l *Loader) URL(path string) string {
	return strings.TrimRight(l.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// FetchText returns the raw body of a resource.
func (l *Loader) FetchText(ctx context.Context, path string) ([]byte, error) {
	url := l.URL(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "build request for %s", url)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", url)
	}
	return body, nil
}

// Fetch retrieves and parses a resource into rows.
func (l *Loader) Fetch(ctx context.Context, path string) ([]Row, error) {
	body, err := l.FetchText(ctx, path)
	if err != nil {
		return nil, err
	}
	rows, skipped, err := Parse(bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	if skipped > 0 {
		log.Warningf("%s: skipped %d malformed rows", path, skipped)
	}
	log.Debugf("%s: loaded %d rows", path, len(rows))
	return rows, nil
}
