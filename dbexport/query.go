package dbexport

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// QuoteIdentifier quotes name for use as a MySQL identifier.
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (s *Session) query(ctx context.Context, query string) (*scanner, error) {
	s.log.Debug("query", zap.String("sql", query))
	rows, err := s.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, &QueryError{Query: query, Err: err}
	}
	sc, err := scanSQLRows(rows)
	if err != nil {
		return nil, &QueryError{Query: query, Err: err}
	}
	sc.query = query
	return sc, nil
}

// Databases lists every database visible to the connected user.
func (s *Session) Databases(ctx context.Context) (RowIter, error) {
	sc, err := s.query(ctx, "SHOW DATABASES")
	if err != nil {
		return nil, err
	}
	return sc, nil
}

// Tables lists the tables of each database in turn as {Database, Table}
// rows. The per-database queries are issued lazily while iterating.
func (s *Session) Tables(ctx context.Context, databases ...string) RowIter {
	return &tableIter{ctx: ctx, s: s, pending: databases}
}

// TableRows selects every row of database.table.
func (s *Session) TableRows(ctx context.Context, database, table string) (RowIter, error) {
	sc, err := s.query(ctx, fmt.Sprintf("SELECT * FROM %s.%s", QuoteIdentifier(database), QuoteIdentifier(table)))
	if err != nil {
		return nil, err
	}
	return sc, nil
}

// DatabaseNames drains Databases into a slice. The list is small, and the
// single connection must be free before the next query is issued.
func (s *Session) DatabaseNames(ctx context.Context) ([]string, error) {
	rows, err := s.Databases(ctx)
	if err != nil {
		return nil, err
	}
	return firstColumn(rows)
}

// TableNames drains Tables for one database into a slice.
func (s *Session) TableNames(ctx context.Context, database string) ([]string, error) {
	rows := s.Tables(ctx, database)
	var names []string
	for rows.Next() {
		v, _ := rows.Row().Get("Table")
		names = append(names, FormatValue(v, ""))
	}
	return names, multierr.Append(rows.Err(), rows.Close())
}

func firstColumn(rows RowIter) ([]string, error) {
	var names []string
	for rows.Next() {
		r := rows.Row()
		if len(r.Values) > 0 {
			names = append(names, FormatValue(r.Values[0], ""))
		}
	}
	return names, multierr.Append(rows.Err(), rows.Close())
}

// tableIter chains SHOW TABLES over several databases, normalizing the
// driver's "Tables_in_<db>" column away.
type tableIter struct {
	ctx     context.Context
	s       *Session
	pending []string
	db      string
	cur     *scanner
	row     Row
	err     error
}

var tableColumns = []string{"Database", "Table"}

func (it *tableIter) Next() bool {
	for it.err == nil {
		if it.cur == nil {
			if len(it.pending) == 0 {
				return false
			}
			it.db, it.pending = it.pending[0], it.pending[1:]
			cur, err := it.s.query(it.ctx, "SHOW TABLES FROM "+QuoteIdentifier(it.db))
			if err != nil {
				it.err = err
				return false
			}
			it.cur = cur
		}
		if it.cur.Next() {
			r := it.cur.Row()
			var name any
			if len(r.Values) > 0 {
				name = FormatValue(r.Values[0], "")
			}
			it.row = Row{Columns: tableColumns, Values: []any{it.db, name}}
			return true
		}
		it.err = multierr.Append(it.cur.Err(), it.cur.Close())
		it.cur = nil
	}
	return false
}

func (it *tableIter) Row() Row { return it.row }

func (it *tableIter) Err() error { return it.err }

func (it *tableIter) Close() error {
	it.pending = nil
	if it.cur == nil {
		return nil
	}
	err := it.cur.Close()
	it.cur = nil
	return err
}
