package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"mysqlexport/dbexport"
)

var (
	listDatabasesFormat string
	listTablesFormat    string
	listTablesDatabases string
	listTablesAll       bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List databases or tables",
}

var listDatabasesCmd = &cobra.Command{
	Use:   "databases",
	Short: "List the databases of the server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := dbexport.ParseFormat(listDatabasesFormat)
		if err != nil {
			return err
		}
		return withDB(cmd, func(ctx context.Context, s *dbexport.Session) error {
			rows, err := s.Databases(ctx)
			if err != nil {
				return err
			}
			return writeList(cmd, rows, f)
		})
	},
}

var listTablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the tables of some or all databases",
	Example: `  mysqlexport list tables -d shop,crm
  mysqlexport list tables --all -o csv`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := dbexport.ParseFormat(listTablesFormat)
		if err != nil {
			return err
		}
		return withDB(cmd, func(ctx context.Context, s *dbexport.Session) error {
			databases := splitList(listTablesDatabases)
			if listTablesAll || len(databases) == 0 {
				if databases, err = s.DatabaseNames(ctx); err != nil {
					return err
				}
			}
			return writeList(cmd, s.Tables(ctx, databases...), f)
		})
	},
}

func writeList(cmd *cobra.Command, rows dbexport.RowIter, f dbexport.Format) error {
	return multierr.Append(dbexport.WriteOutput(rows, f, dbexport.Stdout, cmd.OutOrStdout()), rows.Close())
}

// splitList splits a comma separated flag value, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func init() {
	listDatabasesCmd.Flags().StringVarP(&listDatabasesFormat, "output-format", "o", "plain", "Output format: plain, csv or rjson")

	listTablesCmd.Flags().StringVarP(&listTablesDatabases, "database", "d", "", "Comma separated list of databases")
	listTablesCmd.Flags().BoolVar(&listTablesAll, "all", false, "List the tables of every database (default when --database is omitted)")
	listTablesCmd.Flags().StringVarP(&listTablesFormat, "output-format", "o", "plain", "Output format: plain, csv or rjson")
	listTablesCmd.MarkFlagsMutuallyExclusive("database", "all")

	listCmd.AddCommand(listDatabasesCmd, listTablesCmd)
	rootCmd.AddCommand(listCmd)
}
