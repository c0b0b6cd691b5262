// Package cmd contains the command-line interface of mysqlexport.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Connection flags shared by every command. They override the config file
// and the MYSQLEXPORT_* environment variables.
var (
	FlagHost     string
	FlagPort     int
	FlagUser     string
	FlagPassword string
	FlagConfig   string
	FlagVerbose  bool
)

// exitFunc is swapped in tests.
var exitFunc = os.Exit

// logger writes diagnostics to stderr; stdout is reserved for exported data.
var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "mysqlexport",
	Short: "Export MySQL tables to text, CSV or line-delimited JSON",
	Long: `A CLI tool to list the databases and tables of a MySQL server and export
table contents as plain text, CSV or line-delimited JSON (rjson).

Connection parameters are read from mysqlexport.yml, mysqlexport.yaml,
mysqlexport.json or mysqlexport.toml in the working directory, then from the
MYSQLEXPORT_HOST, MYSQLEXPORT_PORT, MYSQLEXPORT_USER and MYSQLEXPORT_PASSWORD
environment variables (a .env file is honoured), then from flags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(FlagVerbose)
		if err != nil {
			return fmt.Errorf("error creating logger: %w", err)
		}
		logger = l
		return nil
	},
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", withHint(err))
		exitFunc(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&FlagHost, "host", "", "MySQL server hostname or IP (env: MYSQLEXPORT_HOST, default localhost)")
	pf.IntVar(&FlagPort, "port", 0, "MySQL server port (env: MYSQLEXPORT_PORT, default 3306)")
	pf.StringVar(&FlagUser, "user", "", "MySQL username (env: MYSQLEXPORT_USER, default root)")
	pf.StringVar(&FlagPassword, "password", "", "MySQL password (env: MYSQLEXPORT_PASSWORD)")
	pf.StringVar(&FlagConfig, "config", "", "Config file to use instead of mysqlexport.{yml,yaml,json,toml}")
	pf.BoolVarP(&FlagVerbose, "verbose", "v", false, "Log connection details and queries to stderr")
}
