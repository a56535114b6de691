package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/leapstack-labs/leadsunifier/pkg/core"
)

// JSONSink writes contacts as an array of objects. Absent fields are null.
type JSONSink struct {
	Path string
}

// NewJSON creates a JSON sink writing to path.
func NewJSON(path string) *JSONSink {
	return &JSONSink{Path: path}
}

// Write implements Sink.
func (s *JSONSink) Write(ctx context.Context, _ core.RunSummary, contacts []core.Contact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if contacts == nil {
		contacts = []core.Contact{}
	}
	return writeAtomic(s.Path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(contacts); err != nil {
			return fmt.Errorf("failed to encode contacts: %w", err)
		}
		return nil
	})
}
