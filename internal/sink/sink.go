// Package sink writes the result of a unification run.
//
// File sinks write to a temporary file next to the target and rename it
// into place; SQL sinks write a run in one transaction. A failed or
// interrupted write leaves any previous output untouched.
package sink

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leadsunifier/pkg/core"
)

// Sink persists the contacts of one run.
type Sink interface {
	Write(ctx context.Context, summary core.RunSummary, contacts []core.Contact) error
}

// Format names an output format.
type Format string

// Supported formats.
const (
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatSQLite   Format = "sqlite"
	FormatPostgres Format = "postgres"
)

// Formats lists the supported formats.
var Formats = []Format{FormatCSV, FormatJSON, FormatSQLite, FormatPostgres}

// ParseFormat converts a string to a Format. An empty string is allowed and
// means "infer from the target".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "", FormatCSV, FormatJSON, FormatSQLite, FormatPostgres:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected csv, json, sqlite or postgres)", s)
	}
}

// Infer picks a format from the output target.
func Infer(target string) Format {
	lower := strings.ToLower(target)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return FormatPostgres
	}
	switch filepath.Ext(lower) {
	case ".json":
		return FormatJSON
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatCSV
	}
}

// New creates the sink for format and target. An empty format is inferred
// from target.
func New(format Format, target string) (Sink, error) {
	if target == "" {
		return nil, fmt.Errorf("output target is empty")
	}
	if format == "" {
		format = Infer(target)
	}
	switch format {
	case FormatCSV:
		return NewCSV(target), nil
	case FormatJSON:
		return NewJSON(target), nil
	case FormatSQLite:
		return NewSQLite(target), nil
	case FormatPostgres:
		return NewPostgres(target), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
