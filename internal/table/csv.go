package table

// csv.go - CSV loading with per-line recovery

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoColumns is returned for a file without a header line.
var ErrNoColumns = errors.New("no columns to parse from file")

const utf8BOM = "\ufeff"

// ReadFile loads a CSV file. The table is named after the file's base name.
func ReadFile(path string, logger *slog.Logger) (*Table, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path comes from input discovery
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	t, err := Read(filepath.Base(path), f, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return t, nil
}

// Read loads CSV data from r. Every cell is read as a string; invalid UTF-8
// bytes are dropped. Lines that fail to parse or carry more fields than the
// header are skipped with a warning; short lines are padded with absent cells.
func Read(name string, r io.Reader, logger *slog.Logger) (*Table, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoColumns
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}
	header = cleanRecord(header)
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	t := &Table{Name: name, columns: uniqueColumns(header)}

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				logger.Warn("skipping malformed line", "file", name, "line", pe.StartLine, "error", pe.Err)
				continue
			}
			return nil, err
		}

		if len(record) > len(t.columns) {
			line, _ := cr.FieldPos(0)
			logger.Warn("skipping malformed line", "file", name, "line", line,
				"error", fmt.Sprintf("expected %d fields, saw %d", len(t.columns), len(record)))
			continue
		}

		t.rows = append(t.rows, t.makeRow(cleanRecord(record)))
	}

	logger.Debug("loaded table", "file", name, "columns", len(t.columns), "rows", len(t.rows))
	return t, nil
}

func cleanRecord(record []string) []string {
	for i, field := range record {
		record[i] = strings.ToValidUTF8(field, "")
	}
	return record
}
