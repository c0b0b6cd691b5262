package dbexport

// Row is one result record: column names in server order and their values.
type Row struct {
	Columns []string
	Values  []any
}

// Get returns the value stored under col.
func (r Row) Get(col string) (any, bool) {
	for i, c := range r.Columns {
		if c == col {
			return r.Values[i], true
		}
	}
	return nil, false
}

// RowIter is a lazy, single-pass sequence of rows. Callers must check Err
// once Next returns false and always Close the iterator.
type RowIter interface {
	Next() bool
	Row() Row
	Err() error
	Close() error
}

// Rows is the subset of *sql.Rows used by the scanner.
// Used for dependency injection and testability.
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Columns() ([]string, error)
	Close() error
	Err() error
}
