package dbexport

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// sliceIter is an in-memory RowIter.
type sliceIter struct {
	rows   []Row
	pos    int
	err    error
	closed bool
}

func newSliceIter(rows ...Row) *sliceIter { return &sliceIter{rows: rows, pos: -1} }

func (it *sliceIter) Next() bool {
	if it.pos+1 >= len(it.rows) {
		return false
	}
	it.pos++
	return true
}

func (it *sliceIter) Row() Row     { return it.rows[it.pos] }
func (it *sliceIter) Err() error   { return it.err }
func (it *sliceIter) Close() error { it.closed = true; return nil }

func row(cols []string, vals ...any) Row { return Row{Columns: cols, Values: vals} }

// newMockSession returns a Session backed by sqlmock with exact query matching.
func newMockSession(t *testing.T) (*Session, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	s, err := NewSession(context.Background(), db, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, mock
}

func drain(t *testing.T, it RowIter) []Row {
	t.Helper()
	var out []Row
	for it.Next() {
		out = append(out, it.Row())
	}
	require.NoError(t, it.Err())
	require.NoError(t, it.Close())
	return out
}
