package dbexport

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-sql/civil"
	"go.uber.org/multierr"
)

// scanner adapts a driver result set to RowIter, normalizing every value
// according to its column's database type name.
type scanner struct {
	query string
	rows  Rows
	cols  []string
	types []string
	row   Row
	err   error
}

// newScanner wraps rows. types holds one database type name per column; an
// empty or short slice means the types are unknown.
func newScanner(rows Rows, types []string) (*scanner, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("error getting columns: %w", err), rows.Close())
	}
	return &scanner{rows: rows, cols: cols, types: types}, nil
}

// scanSQLRows wraps a *sql.Rows, reading the column types from the driver.
func scanSQLRows(rows *sql.Rows) (*scanner, error) {
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("error getting column types: %w", err), rows.Close())
	}
	types := make([]string, len(colTypes))
	for i, ct := range colTypes {
		types[i] = ct.DatabaseTypeName()
	}
	return newScanner(rows, types)
}

func (s *scanner) Next() bool {
	if s.err != nil || !s.rows.Next() {
		return false
	}
	vals, err := ScanRowValues(s.rows, s.cols, s.types)
	if err != nil {
		s.err = err
		return false
	}
	s.row = Row{Columns: s.cols, Values: vals}
	return true
}

func (s *scanner) Row() Row { return s.row }

func (s *scanner) Err() error {
	if s.err != nil {
		return s.err
	}
	if err := s.rows.Err(); err != nil {
		return &QueryError{Query: s.query, Err: err}
	}
	return nil
}

func (s *scanner) Close() error { return s.rows.Close() }

// ScanRowValues scans the current row into a slice of values, converting
// them with ConvertValue.
func ScanRowValues(rows Rows, cols []string, types []string) ([]any, error) {
	columns := make([]any, len(cols))
	columnPointers := make([]any, len(cols))
	for i := range columns {
		columnPointers[i] = &columns[i]
	}
	if err := rows.Scan(columnPointers...); err != nil {
		return nil, fmt.Errorf("error scanning row: %w", err)
	}
	vals := make([]any, len(cols))
	for i, v := range columns {
		var dbType string
		if i < len(types) {
			dbType = types[i]
		}
		vals[i] = ConvertValue(dbType, v)
	}
	return vals, nil
}

// ConvertValue maps a raw driver value to the scalar kept in a Row.
// dbType is the column's database type name as reported by the driver
// (e.g. "VARCHAR", "UNSIGNED BIGINT", "DATETIME"); it may be empty.
func ConvertValue(dbType string, v any) any {
	dbType = strings.ToUpper(dbType)
	switch t := v.(type) {
	case nil:
		return nil
	case time.Time:
		return convertTime(dbType, t)
	case []byte:
		return convertBytes(dbType, t)
	default:
		return v
	}
}

func convertTime(dbType string, t time.Time) any {
	switch dbType {
	case "DATE":
		return civil.DateOf(t)
	case "DATETIME", "TIMESTAMP":
		return civil.DateTimeOf(t)
	}
	return t
}

func convertBytes(dbType string, b []byte) any {
	s := string(b)
	switch {
	case isBinaryType(dbType):
		return b
	case strings.Contains(dbType, "INT"), dbType == "YEAR":
		if strings.HasPrefix(dbType, "UNSIGNED") {
			if u, err := strconv.ParseUint(s, 10, 64); err == nil {
				return u
			}
		} else if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
	case dbType == "FLOAT", dbType == "DOUBLE":
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	case dbType == "DATE":
		if d, err := civil.ParseDate(s); err == nil {
			return d
		}
	case dbType == "DATETIME", dbType == "TIMESTAMP":
		if dt, err := civil.ParseDateTime(strings.Replace(s, " ", "T", 1)); err == nil {
			return dt
		}
	case dbType == "TIME":
		if tm, err := civil.ParseTime(s); err == nil {
			return tm
		}
	}
	return s
}

func isBinaryType(dbType string) bool {
	switch dbType {
	case "BLOB", "TINYBLOB", "MEDIUMBLOB", "LONGBLOB", "BINARY", "VARBINARY", "BIT", "GEOMETRY":
		return true
	}
	return false
}

// FormatValue renders a Row value as text for the plain and csv encoders.
// nilText is used for SQL NULL.
func FormatValue(v any, nilText string) string {
	switch t := v.(type) {
	case nil:
		return nilText
	case string:
		return t
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(time.RFC3339Nano)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
