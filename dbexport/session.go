package dbexport

import (
	"context"
	"database/sql"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"mysqlexport/config"
)

// sqlOpen and dbPing are package-level variables to allow test injection.
var sqlOpen = sql.Open
var dbPing = func(ctx context.Context, db *sql.DB) error { return db.PingContext(ctx) }

// Session is the single server connection shared by every query of one
// command invocation. Queries run strictly one after another on it.
type Session struct {
	db   *sql.DB
	conn *sql.Conn
	log  *zap.Logger
}

// DriverConfig builds the go-sql-driver configuration for cfg, applying the
// documented defaults to unset fields.
func DriverConfig(cfg config.Config) *mysql.Config {
	cfg = cfg.WithDefaults()
	mc := mysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	return mc
}

// Connect opens the connection described by cfg and verifies it with a ping.
func Connect(ctx context.Context, cfg config.Config, log *zap.Logger) (*Session, error) {
	mc := DriverConfig(cfg)
	log.Debug("connecting", zap.String("addr", mc.Addr), zap.String("user", mc.User))
	db, err := sqlOpen("mysql", mc.FormatDSN())
	if err != nil {
		return nil, &ConnectionError{Addr: mc.Addr, Err: err}
	}
	if err := dbPing(ctx, db); err != nil {
		return nil, multierr.Append(&ConnectionError{Addr: mc.Addr, Err: err}, db.Close())
	}
	s, err := NewSession(ctx, db, log)
	if err != nil {
		return nil, multierr.Append(&ConnectionError{Addr: mc.Addr, Err: err}, db.Close())
	}
	log.Debug("connected", zap.String("addr", mc.Addr))
	return s, nil
}

// NewSession pins one connection of db for the lifetime of the session.
func NewSession(ctx context.Context, db *sql.DB, log *zap.Logger) (*Session, error) {
	db.SetMaxOpenConns(1)
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{db: db, conn: conn, log: log}, nil
}

// Close releases the pinned connection and the underlying pool.
func (s *Session) Close() error {
	return multierr.Append(s.conn.Close(), s.db.Close())
}
