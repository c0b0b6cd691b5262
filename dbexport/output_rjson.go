package dbexport

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-sql/civil"
)

// RJSONEncoder writes one JSON object per line, keys in column order.
// Date and time values are written as ISO-8601 strings.
type RJSONEncoder struct{}

func (RJSONEncoder) Encode(w io.Writer, rows RowIter) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// encode appends v and drops the newline json.Encoder adds.
	encode := func(v any) error {
		if err := enc.Encode(v); err != nil {
			return err
		}
		buf.Truncate(buf.Len() - 1)
		return nil
	}
	for rows.Next() {
		row := rows.Row()
		buf.Reset()
		buf.WriteByte('{')
		for i, col := range row.Columns {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encode(col); err != nil {
				return fmt.Errorf("error encoding column name %q: %w", col, err)
			}
			buf.WriteByte(':')
			v, err := jsonValue(col, row.Values[i])
			if err != nil {
				return err
			}
			if err := encode(v); err != nil {
				return &EncodingError{Column: col, Value: row.Values[i]}
			}
		}
		buf.WriteString("}\n")
		if _, err := w.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("error writing JSON row: %w", err)
		}
	}
	return rows.Err()
}

// jsonValue maps a Row value to something encoding/json represents natively.
func jsonValue(col string, v any) (any, error) {
	switch t := v.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return t, nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, &EncodingError{Column: col, Value: v}
		}
		return t, nil
	case float32:
		if math.IsNaN(float64(t)) || math.IsInf(float64(t), 0) {
			return nil, &EncodingError{Column: col, Value: v}
		}
		return t, nil
	case civil.Date:
		return t.String(), nil
	case civil.DateTime:
		return t.String(), nil
	case civil.Time:
		return t.String(), nil
	case time.Time:
		return t.Format(time.RFC3339Nano), nil
	}
	return nil, &EncodingError{Column: col, Value: v}
}
