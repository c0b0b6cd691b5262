// mysqlexport is a CLI tool for listing and exporting the contents of a MySQL
// server.
//
// Usage:
//
//	mysqlexport list databases [-o FORMAT]
//	  List every database of the server
//	mysqlexport list tables (-d DB[,DB...] | --all) [-o FORMAT]
//	  List the tables of the given databases, or of every database
//	mysqlexport dump table DATABASE TABLE [-o FORMAT] [-f FILE]
//	  Export one table to stdout or to FILE
//	mysqlexport dump database DATABASE [-o FORMAT]
//	  Export every table of DATABASE into the directory DATABASE/
//
// FORMAT is one of plain, csv or rjson (default: plain).
package main

import (
	"mysqlexport/cmd"

	_ "github.com/go-sql-driver/mysql"
)

func main() {
	cmd.Execute()
}
