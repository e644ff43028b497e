// Package content loads the site's tabular resources (members, core team,
// leaderboard, events, community posts) from delimited text.
package content

import (
	"encoding/csv"
	stderrors "errors"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("clubsite.content")

// ErrNoHeader is returned when a resource has no header row.
var ErrNoHeader = errors.New("csv resource has no header row")

// Row maps a header column name to the value of one record.
type Row map[string]string

// Parse reads a header row followed by data rows. Empty lines are ignored.
// Records that fail to parse or whose width differs from the header are
// skipped one by one and counted in skipped; only a missing header fails the
// whole parse.
func Parse(r io.Reader) (rows []Row, skipped int, err error) {
	rdr := csv.NewReader(r)
	// Rows may be uneven, width is checked against the header below.
	rdr.FieldsPerRecord = -1

	header, err := rdr.Read()
	if err == io.EOF {
		return nil, 0, ErrNoHeader
	}
	if err != nil {
		return nil, 0, errors.Wrap(err, "read header")
	}
	header = cleanHeader(header)
	if len(header) == 0 || (len(header) == 1 && header[0] == "") {
		return nil, 0, ErrNoHeader
	}

	rows = make([]Row, 0)
	for {
		record, err := rdr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if stderrors.As(err, &perr) {
				log.Warningf("skipping malformed record at line %d: %v", perr.StartLine, perr.Err)
				skipped++
				continue
			}
			return rows, skipped, errors.Wrap(err, "read record")
		}
		if blank(record) {
			continue
		}
		if len(record) != len(header) {
			line, _ := rdr.FieldPos(0)
			log.Warningf("skipping record at line %d: %d fields, header has %d", line, len(record), len(header))
			skipped++
			continue
		}
		row := make(Row, len(header))
		for i, name := range header {
			row[name] = record[i]
		}
		rows = append(rows, row)
	}
	return rows, skipped, nil
}

func cleanHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		out[i] = strings.TrimSpace(h)
	}
	return out
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// SplitList splits a delimiter-separated sub-field such as "Go; Python".
// Items are trimmed and empty items dropped.
func SplitList(value, sep string) []string {
	items := make([]string, 0)
	for _, item := range strings.Split(value, sep) {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
