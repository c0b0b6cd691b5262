package dbexport

import "io"

// Format is one of the supported output encodings.
type Format int

const (
	Plain Format = iota
	CSV
	RJSON
)

// ParseFormat resolves an -o value. Tags are matched exactly. It is called
// before any connection is opened or file is created, so a bad tag never
// produces output.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "plain":
		return Plain, nil
	case "csv":
		return CSV, nil
	case "rjson":
		return RJSON, nil
	}
	return 0, &UnsupportedFormatError{Format: s}
}

func (f Format) String() string {
	switch f {
	case Plain:
		return "plain"
	case CSV:
		return "csv"
	case RJSON:
		return "rjson"
	}
	return "unknown"
}

// Extension is the file suffix used by dump database.
func (f Format) Extension() string {
	switch f {
	case CSV:
		return ".csv"
	case RJSON:
		return ".rjson"
	}
	return ".txt"
}

// Encoder writes a row sequence to w, consuming it exactly once.
type Encoder interface {
	Encode(w io.Writer, rows RowIter) error
}

// Encoder returns the encoder implementing f.
func (f Format) Encoder() Encoder {
	switch f {
	case CSV:
		return CSVEncoder{}
	case RJSON:
		return RJSONEncoder{}
	}
	return PlainEncoder{}
}
