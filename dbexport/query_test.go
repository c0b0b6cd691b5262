package dbexport

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mysqlexport/config"
)

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, "`orders`", QuoteIdentifier("orders"))
	assert.Equal(t, "`weird``name`", QuoteIdentifier("weird`name"))
	assert.Equal(t, "`a b; DROP TABLE x`", QuoteIdentifier("a b; DROP TABLE x"))
}

func TestDriverConfig_Defaults(t *testing.T) {
	mc := DriverConfig(config.Config{})
	assert.Equal(t, "tcp", mc.Net)
	assert.Equal(t, "localhost:3306", mc.Addr)
	assert.Equal(t, "root", mc.User)
	assert.Equal(t, "", mc.Passwd)
	// dates arrive as text so zero dates are kept verbatim
	assert.False(t, mc.ParseTime)

	mc = DriverConfig(config.Config{Host: "db", Port: 3307, User: "u", Password: "p"})
	assert.Equal(t, "db:3307", mc.Addr)
	assert.Equal(t, "u", mc.User)
	assert.Equal(t, "p", mc.Passwd)
	assert.True(t, strings.HasPrefix(mc.FormatDSN(), "u:p@tcp(db:3307)/"))
}

func TestConnect_OpenError(t *testing.T) {
	origOpen := sqlOpen
	defer func() { sqlOpen = origOpen }()
	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		return nil, fmt.Errorf("open fail")
	}
	_, err := Connect(context.Background(), config.Config{}, zap.NewNop())
	var cerr *ConnectionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "localhost:3306", cerr.Addr)
	assert.Contains(t, err.Error(), "open fail")
}

func TestConnect_PingError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	origOpen, origPing := sqlOpen, dbPing
	defer func() { sqlOpen, dbPing = origOpen, origPing }()
	var gotDSN string
	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		gotDSN = dsn
		return db, nil
	}
	dbPing = func(ctx context.Context, db *sql.DB) error {
		return &mysql.MySQLError{Number: 1045, Message: "Access denied for user 'root'@'localhost'"}
	}
	_, err = Connect(context.Background(), config.Config{Host: "example"}, zap.NewNop())
	var cerr *ConnectionError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, err.Error(), "Access denied")
	assert.True(t, strings.HasPrefix(gotDSN, "root@tcp(example:3306)/"), gotDSN)
}

func TestConnect_Success(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	origOpen, origPing := sqlOpen, dbPing
	defer func() { sqlOpen, dbPing = origOpen, origPing }()
	sqlOpen = func(driver, dsn string) (*sql.DB, error) { return db, nil }
	dbPing = func(ctx context.Context, db *sql.DB) error { return nil }

	s, err := Connect(context.Background(), config.Config{}, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	mock.ExpectQuery("SHOW DATABASES").WillReturnRows(sqlmock.NewRows([]string{"Database"}).AddRow("app"))
	names, err := s.DatabaseNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"app"}, names)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_Databases(t *testing.T) {
	s, mock := newMockSession(t)
	mock.ExpectQuery("SHOW DATABASES").WillReturnRows(
		sqlmock.NewRows([]string{"Database"}).AddRow("information_schema").AddRow("shop"))

	rows, err := s.Databases(context.Background())
	require.NoError(t, err)
	got := drain(t, rows)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"Database"}, got[0].Columns)
	assert.Equal(t, "shop", got[1].Values[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_TablesRekeys(t *testing.T) {
	s, mock := newMockSession(t)
	mock.ExpectQuery("SHOW TABLES FROM `shop`").WillReturnRows(
		sqlmock.NewRows([]string{"Tables_in_shop"}).AddRow("orders").AddRow("users"))

	got := drain(t, s.Tables(context.Background(), "shop"))
	assert.Equal(t, []Row{
		row([]string{"Database", "Table"}, "shop", "orders"),
		row([]string{"Database", "Table"}, "shop", "users"),
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_TablesUnionOfDatabases(t *testing.T) {
	tables := map[string][]string{"db1": {"a", "b"}, "db2": {"c"}}
	expect := func(mock sqlmock.Sqlmock, db string) {
		r := sqlmock.NewRows([]string{"Tables_in_" + db})
		for _, tbl := range tables[db] {
			r.AddRow(tbl)
		}
		mock.ExpectQuery("SHOW TABLES FROM " + QuoteIdentifier(db)).WillReturnRows(r)
	}

	s, mock := newMockSession(t)
	expect(mock, "db1")
	expect(mock, "db2")
	combined := drain(t, s.Tables(context.Background(), "db1", "db2"))

	var separate []Row
	for _, db := range []string{"db1", "db2"} {
		s, mock := newMockSession(t)
		expect(mock, db)
		separate = append(separate, drain(t, s.Tables(context.Background(), db))...)
	}
	assert.ElementsMatch(t, separate, combined)
	assert.Len(t, combined, 3)
}

func TestSession_TablesLazy(t *testing.T) {
	s, mock := newMockSession(t)
	mock.ExpectQuery("SHOW TABLES FROM `db1`").WillReturnRows(
		sqlmock.NewRows([]string{"Tables_in_db1"}).AddRow("a"))

	it := s.Tables(context.Background(), "db1", "db2")
	require.True(t, it.Next())
	// db2 has not been queried yet; closing stops the chain.
	require.NoError(t, it.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_TablesUnknownDatabase(t *testing.T) {
	s, mock := newMockSession(t)
	mock.ExpectQuery("SHOW TABLES FROM `db1`").WillReturnRows(
		sqlmock.NewRows([]string{"Tables_in_db1"}).AddRow("a"))
	mock.ExpectQuery("SHOW TABLES FROM `nope`").WillReturnError(
		&mysql.MySQLError{Number: 1049, Message: "Unknown database 'nope'"})

	it := s.Tables(context.Background(), "db1", "nope")
	require.True(t, it.Next())
	require.False(t, it.Next())
	var qerr *QueryError
	require.ErrorAs(t, it.Err(), &qerr)
	assert.Equal(t, "SHOW TABLES FROM `nope`", qerr.Query)
	var merr *mysql.MySQLError
	require.True(t, errors.As(it.Err(), &merr))
	assert.EqualValues(t, 1049, merr.Number)
	require.NoError(t, it.Close())
}

func TestSession_TableRows(t *testing.T) {
	s, mock := newMockSession(t)
	mock.ExpectQuery("SELECT * FROM `shop`.`order items`").WillReturnRows(
		mock.NewRowsWithColumnDefinition(
			mock.NewColumn("id").OfType("BIGINT", int64(0)),
			mock.NewColumn("sku").OfType("VARCHAR", ""),
			mock.NewColumn("created").OfType("DATETIME", ""),
		).AddRow([]byte("7"), []byte("A-1"), []byte("2024-03-01 10:20:30")))

	rows, err := s.TableRows(context.Background(), "shop", "order items")
	require.NoError(t, err)
	got := drain(t, rows)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"id", "sku", "created"}, got[0].Columns)
	assert.Equal(t, int64(7), got[0].Values[0])
	assert.Equal(t, "A-1", got[0].Values[1])
	assert.Equal(t, "2024-03-01T10:20:30", FormatValue(got[0].Values[2], ""))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_TableRowsError(t *testing.T) {
	s, mock := newMockSession(t)
	mock.ExpectQuery("SELECT * FROM `shop`.`missing`").WillReturnError(
		&mysql.MySQLError{Number: 1146, Message: "Table 'shop.missing' doesn't exist"})

	_, err := s.TableRows(context.Background(), "shop", "missing")
	var qerr *QueryError
	require.ErrorAs(t, err, &qerr)
	assert.Contains(t, err.Error(), "doesn't exist")
}

func TestSession_RowErrorSurfaces(t *testing.T) {
	s, mock := newMockSession(t)
	mock.ExpectQuery("SELECT * FROM `shop`.`t`").WillReturnRows(
		sqlmock.NewRows([]string{"a"}).AddRow("1").AddRow("2").RowError(1, fmt.Errorf("connection lost")))

	rows, err := s.TableRows(context.Background(), "shop", "t")
	require.NoError(t, err)
	defer rows.Close()
	n := 0
	for rows.Next() {
		n++
	}
	assert.Equal(t, 1, n)
	var qerr *QueryError
	require.ErrorAs(t, rows.Err(), &qerr)
	assert.Contains(t, rows.Err().Error(), "connection lost")
}
