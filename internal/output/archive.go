package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jmylchreest/yumscrape/pkg/recipe"
)

// ArchivedRecord is one line of the raw record archive.
type ArchivedRecord struct {
	CookingID  string        `json:"cooking_id"`
	CategoryID int           `json:"category_id"`
	Record     recipe.Record `json:"record"`
}

// JSONLWriter writes newline-delimited JSON (JSONL), flushing after every
// line.
type JSONLWriter struct {
	w *bufio.Writer
	c io.Closer
}

// NewJSONLWriter creates a JSONL writer over w.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	jw := &JSONLWriter{w: bufio.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		jw.c = c
	}
	return jw
}

// OpenArchive opens path for appending raw records.
func OpenArchive(path string) (*JSONLWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create directory for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) //#nosec G304 -- path comes from the run configuration
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	return NewJSONLWriter(f), nil
}

// Write writes a single item as a JSON line.
func (w *JSONLWriter) Write(data any) error {
	output, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := w.w.Write(output); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}

	return w.w.Flush()
}

// Flush flushes the buffer.
func (w *JSONLWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer and closes the underlying file, if any.
func (w *JSONLWriter) Close() error {
	if err := w.Flush(); err != nil {
		return err
	}
	if w.c != nil {
		return w.c.Close()
	}
	return nil
}
