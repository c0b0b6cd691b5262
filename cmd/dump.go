package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"mysqlexport/dbexport"
)

var (
	dumpTableFormat    string
	dumpTableFile      string
	dumpDatabaseFormat string
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Export a table or a whole database",
}

var dumpTableCmd = &cobra.Command{
	Use:   "table DATABASE TABLE",
	Short: "Export the rows of one table",
	Long: `Export every row of DATABASE.TABLE to stdout, or to the file given
with --output-file. An existing file is overwritten.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := dbexport.ParseFormat(dumpTableFormat)
		if err != nil {
			return err
		}
		return withDB(cmd, func(ctx context.Context, s *dbexport.Session) error {
			return dbexport.DumpTable(ctx, s, args[0], args[1], f, dumpTableFile, cmd.OutOrStdout())
		})
	},
}

var dumpDatabaseCmd = &cobra.Command{
	Use:   "database DATABASE",
	Short: "Export every table of a database",
	Long: `Export every table of DATABASE into a directory named DATABASE in the
current working directory, one file per table named TABLE.<ext>, where ext
is txt, csv or rjson depending on the output format.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := dbexport.ParseFormat(dumpDatabaseFormat)
		if err != nil {
			return err
		}
		return withDB(cmd, func(ctx context.Context, s *dbexport.Session) error {
			return dbexport.DumpDatabase(ctx, s, args[0], f)
		})
	},
}

func init() {
	dumpTableCmd.Flags().StringVarP(&dumpTableFormat, "output-format", "o", "plain", "Output format: plain, csv or rjson")
	dumpTableCmd.Flags().StringVarP(&dumpTableFile, "output-file", "f", dbexport.Stdout, "Output file, - for stdout")
	dumpDatabaseCmd.Flags().StringVarP(&dumpDatabaseFormat, "output-format", "o", "plain", "Output format: plain, csv or rjson")

	dumpCmd.AddCommand(dumpTableCmd, dumpDatabaseCmd)
	rootCmd.AddCommand(dumpCmd)
}
