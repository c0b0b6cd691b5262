package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers that get a hint.
const (
	errDBAccessDenied    = 1044
	errAccessDenied      = 1045
	errBadDB             = 1049
	errNoSuchTable       = 1146
	errTableAccessDenied = 1142
)

// hintFor returns a suggestion for errors caused by a mistyped name or bad
// credentials, or "" when none applies.
func hintFor(err error) string {
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		switch merr.Number {
		case errBadDB:
			return "check the database name with 'mysqlexport list databases'"
		case errNoSuchTable:
			return "check the table name with 'mysqlexport list tables -d <database>'"
		case errAccessDenied, errDBAccessDenied, errTableAccessDenied:
			return "check --user/--password, MYSQLEXPORT_USER/MYSQLEXPORT_PASSWORD or the config file"
		}
		return ""
	}
	if err == nil {
		return ""
	}
	msg := strings.ToLower(err.Error())
	for _, pat := range []string{"unknown database", "doesn't exist", "no such table"} {
		if strings.Contains(msg, pat) {
			return "check the database and table names with 'mysqlexport list tables'"
		}
	}
	return ""
}

// withHint appends the hint for err, if any, keeping err wrapped.
func withHint(err error) error {
	if hint := hintFor(err); hint != "" {
		return fmt.Errorf("%w\n\n%s", err, hint)
	}
	return err
}
