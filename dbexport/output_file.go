package dbexport

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
)

// Stdout is the destination token meaning standard output.
const Stdout = "-"

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// OpenOutput opens destination for writing. Stdout ("-") maps to stdout,
// which is never closed; anything else is created or truncated.
func OpenOutput(destination string, stdout io.Writer) (io.WriteCloser, error) {
	if destination == Stdout {
		return nopCloser{stdout}, nil
	}
	file, err := os.Create(destination)
	if err != nil {
		return nil, fmt.Errorf("error creating output file: %w", err)
	}
	return file, nil
}

// WriteOutput encodes rows in format f to destination. The destination is
// flushed and closed on every path; rows are consumed but not closed.
func WriteOutput(rows RowIter, f Format, destination string, stdout io.Writer) (err error) {
	out, err := OpenOutput(destination, stdout)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(out)
	defer func() {
		err = multierr.Combine(err, w.Flush(), out.Close())
	}()
	return f.Encoder().Encode(w, rows)
}
