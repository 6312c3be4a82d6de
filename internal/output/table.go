// Package output persists scraped rows: the CSV tables, the raw record
// archive and the run manifest.
package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Table is a long-lived CSV writer over a single file. Rows are buffered
// until Flush, which also syncs the file to disk.
type Table struct {
	path string
	f    *os.File
	w    *csv.Writer
	rows int
}

// OpenTable opens path for appending, creating it (and its directory) if
// needed. No header is written.
func OpenTable(path string) (*Table, error) {
	return openTable(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND)
}

// CreateTable truncates path and writes header as the first row.
func CreateTable(path string, header []string) (*Table, error) {
	t, err := openTable(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC)
	if err != nil {
		return nil, err
	}
	if err := t.w.Write(header); err != nil {
		_ = t.f.Close()
		return nil, fmt.Errorf("write header %s: %w", path, err)
	}
	if err := t.Flush(); err != nil {
		_ = t.f.Close()
		return nil, err
	}
	return t, nil
}

func openTable(path string, flag int) (*Table, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create directory for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, flag, 0o644) //#nosec G304 -- path comes from the run configuration
	if err != nil {
		return nil, fmt.Errorf("open table %s: %w", path, err)
	}
	return &Table{path: path, f: f, w: csv.NewWriter(f)}, nil
}

// Append buffers rows. Call Flush to make them durable.
func (t *Table) Append(rows ...[]string) error {
	for _, row := range rows {
		if err := t.w.Write(row); err != nil {
			return fmt.Errorf("append to %s: %w", t.path, err)
		}
		t.rows++
	}
	return nil
}

// Flush writes buffered rows and syncs the file.
func (t *Table) Flush() error {
	t.w.Flush()
	if err := t.w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", t.path, err)
	}
	if err := t.f.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", t.path, err)
	}
	return nil
}

// Rows returns the number of rows appended through this handle, header
// excluded.
func (t *Table) Rows() int {
	return t.rows
}

// Close flushes and closes the file.
func (t *Table) Close() error {
	flushErr := t.Flush()
	closeErr := t.f.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
