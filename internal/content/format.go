package content

import (
	"encoding/csv"
	"io"

	"github.com/pkg/errors"
)

// Format writes header and then every row in header order. Missing columns
// are written as empty strings.
func Format(w io.Writer, header []string, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return errors.Wrap(err, "write header")
	}
	record := make([]string, len(header))
	for _, row := range rows {
		for i, name := range header {
			record[i] = row[name]
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrap(err, "write record")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush csv")
}
