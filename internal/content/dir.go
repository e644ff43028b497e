package content

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// DirLoader reads resources straight from a directory. It serves the build
// and export commands, which run without a web server.
type DirLoader struct {
	Dir string
}

func (d DirLoader) Fetch(ctx context.Context, path string) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := filepath.Join(d.Dir, filepath.FromSlash(strings.TrimLeft(path, "/")))
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	rows, skipped, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	if skipped > 0 {
		log.Warningf("%s: skipped %d malformed rows", path, skipped)
	}
	return rows, nil
}
