package dbexport

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// PlainEncoder writes a space-separated text table: a header of the first
// row's column names sorted lexicographically, a line of dashes under each
// name, then one line per row.
type PlainEncoder struct{}

func (PlainEncoder) Encode(w io.Writer, rows RowIter) error {
	var keys []string
	first := true
	for rows.Next() {
		row := rows.Row()
		if first {
			keys = append([]string(nil), row.Columns...)
			sort.Strings(keys)
			dashes := make([]string, len(keys))
			for i, k := range keys {
				dashes[i] = strings.Repeat("-", runewidth.StringWidth(k))
			}
			if _, err := fmt.Fprintf(w, "%s\n%s\n", strings.Join(keys, " "), strings.Join(dashes, " ")); err != nil {
				return fmt.Errorf("error writing header: %w", err)
			}
			first = false
		}
		fields := make([]string, len(keys))
		for i, k := range keys {
			v, _ := row.Get(k)
			fields[i] = plainField(FormatValue(v, "NULL"))
		}
		if _, err := io.WriteString(w, strings.Join(fields, " ")+"\n"); err != nil {
			return fmt.Errorf("error writing row: %w", err)
		}
	}
	return rows.Err()
}

// plainField quotes values that would otherwise not read back as exactly
// one space-separated field.
func plainField(s string) string {
	if s == "" || strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return strconv.Quote(s)
	}
	return s
}
