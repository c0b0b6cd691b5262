package dbexport

import "fmt"

// ConnectionError reports a failure to reach or authenticate to the server.
type ConnectionError struct {
	Addr string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cannot connect to database at %s: %v", e.Addr, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// QueryError reports a failed SQL statement.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("error running %q: %v", e.Query, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// UnsupportedFormatError is returned by ParseFormat for an unknown tag.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unknown output format %q (expected plain, csv or rjson)", e.Format)
}

// EncodingError reports a row value that the rjson encoder cannot represent.
type EncodingError struct {
	Column string
	Value  any
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("column %q: type %T not serializable", e.Column, e.Value)
}
