package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/leapstack-labs/leadsunifier/pkg/core"
)

// CSVSink writes contacts as name,email,phone rows. Absent fields are empty.
type CSVSink struct {
	Path string
}

// NewCSV creates a CSV sink writing to path.
func NewCSV(path string) *CSVSink {
	return &CSVSink{Path: path}
}

// Write implements Sink.
func (s *CSVSink) Write(ctx context.Context, _ core.RunSummary, contacts []core.Contact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeAtomic(s.Path, func(w io.Writer) error {
		cw := csv.NewWriter(w)

		header := make([]string, len(core.FieldTypes))
		for i, f := range core.FieldTypes {
			header[i] = f.String()
		}
		if err := cw.Write(header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}

		record := make([]string, len(core.FieldTypes))
		for _, c := range contacts {
			for i, f := range core.FieldTypes {
				record[i] = c.Field(f).String()
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write contact: %w", err)
			}
		}

		cw.Flush()
		if err := cw.Error(); err != nil {
			return fmt.Errorf("failed to write %s: %w", s.Path, err)
		}
		return nil
	})
}
