package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mysqlexport/config"
	"mysqlexport/dbexport"
)

// containsAll returns true if all substrings in subs are present in s.
func containsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

// resetFlags puts every flag of c and its subcommands back to its default.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the root command with args in a clean working directory and
// environment, returning what was written to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		resetFlags(rootCmd)
		rootCmd.SetArgs([]string{})
		rootCmd.SetOut(nil)
	})
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// isolate moves the test into an empty directory and clears the
// MYSQLEXPORT_* variables.
func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, v := range []string{config.EnvHost, config.EnvPort, config.EnvUser, config.EnvPassword} {
		t.Setenv(v, "")
	}
}

// useMock replaces connect with a session over sqlmock. The returned config
// pointer receives the parameters connect was called with.
func useMock(t *testing.T) (sqlmock.Sqlmock, *config.Config) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	got := &config.Config{}
	orig := connect
	connect = func(ctx context.Context, cfg config.Config, log *zap.Logger) (*dbexport.Session, error) {
		*got = cfg
		return dbexport.NewSession(ctx, db, log)
	}
	t.Cleanup(func() {
		connect = orig
		db.Close()
	})
	return mock, got
}

// forbidConnect fails the test if a command reaches the server.
func forbidConnect(t *testing.T) {
	t.Helper()
	orig := connect
	connect = func(ctx context.Context, cfg config.Config, log *zap.Logger) (*dbexport.Session, error) {
		t.Fatal("unexpected connection attempt")
		return nil, nil
	}
	t.Cleanup(func() { connect = orig })
}
