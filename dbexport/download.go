package dbexport

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// countingIter counts the rows handed out by the wrapped iterator.
type countingIter struct {
	RowIter
	n int
}

func (c *countingIter) Next() bool {
	if c.RowIter.Next() {
		c.n++
		return true
	}
	return false
}

// DumpTable exports every row of database.table to destination.
func DumpTable(ctx context.Context, s *Session, database, table string, f Format, destination string, stdout io.Writer) error {
	start := time.Now()
	rows, err := s.TableRows(ctx, database, table)
	if err != nil {
		return err
	}
	counted := &countingIter{RowIter: rows}
	err = multierr.Append(WriteOutput(counted, f, destination, stdout), rows.Close())
	if err != nil {
		return err
	}
	if destination != Stdout {
		s.log.Info("table written",
			zap.String("table", database+"."+table),
			zap.String("file", destination),
			zap.Int("rows", counted.n),
			zap.Duration("elapsed", time.Since(start)))
	}
	return nil
}

// DumpDatabase writes one file per table of database into a directory named
// after it. The table list is read in full before the first table is
// exported. Export stops at the first failing table; files already written
// are left in place.
func DumpDatabase(ctx context.Context, s *Session, database string, f Format) error {
	tables, err := s.TableNames(ctx, database)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(database, 0o755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}
	s.log.Info("dumping database", zap.String("database", database), zap.Int("tables", len(tables)))
	for _, table := range tables {
		path := filepath.Join(database, table+f.Extension())
		if err := DumpTable(ctx, s, database, table, f, path, nil); err != nil {
			return fmt.Errorf("error dumping table %s: %w", table, err)
		}
	}
	return nil
}
