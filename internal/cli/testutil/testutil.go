// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/leadsunifier/internal/cli/output"
)

// CRMExport is a Portuguese CRM export with two contacts.
const CRMExport = `Nome Completo,E-mail,Telefone
Maria Silva,Maria@Example.com,(11) 91234-5678
João Pedro de Souza,joao@example.com,(21) 98765-4321
`

// EventSignups is an English sign-up sheet sharing Maria with CRMExport.
const EventSignups = `Full Name,Email Address,Mobile Phone
Maria Silva,maria@example.com,11912345678
Peter Parker,peter@example.com,+1 (212) 555-0187
`

// SetupWorkspace creates a temporary workspace whose input directory holds
// CRMExport and EventSignups, and returns its root.
func SetupWorkspace(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	inputDir := filepath.Join(tmpDir, "input")
	if err := os.MkdirAll(inputDir, 0750); err != nil {
		t.Fatalf("failed to create directory %s: %v", inputDir, err)
	}

	files := map[string]string{
		"crm_export.csv":    CRMExport,
		"event_signups.csv": EventSignups,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(inputDir, name), []byte(content), 0600); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}

	return tmpDir
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.Mode) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRenderer(out, errOut, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// Reset clears both output buffers.
func (tr *TestRenderer) Reset() {
	tr.Out.Reset()
	tr.ErrOut.Reset()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertContains checks that the string contains the expected substring.
func AssertContains(t *testing.T, s, expected string) {
	t.Helper()
	if !strings.Contains(s, expected) {
		t.Errorf("string %q does not contain expected %q", s, expected)
	}
}

// AssertNotContains checks that the string does not contain the substring.
func AssertNotContains(t *testing.T, s, unexpected string) {
	t.Helper()
	if strings.Contains(s, unexpected) {
		t.Errorf("string %q unexpectedly contains %q", s, unexpected)
	}
}

// AssertValidMarkdown performs basic markdown validation: balanced code
// fences, non-empty headers and tables whose rows share the header's
// column count.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	if n := strings.Count(md, "```"); n%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", n)
	}

	cols := 0
	for i, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}

		if !strings.HasPrefix(trimmed, "|") {
			cols = 0
			continue
		}
		n := strings.Count(strings.ReplaceAll(trimmed, `\|`, ""), "|")
		if cols == 0 {
			cols = n
		} else if n != cols {
			t.Errorf("table row at line %d has %d separators, want %d: %q", i+1, n, cols, line)
		}
	}
}

// AssertOutputMode checks that the renderer output matches expected mode characteristics.
func AssertOutputMode(t *testing.T, tr *TestRenderer, expectedMode output.Mode) {
	t.Helper()

	switch expectedMode {
	case output.ModeMarkdown:
		AssertNoANSI(t, tr.Output()+tr.ErrorOutput())
		AssertValidMarkdown(t, tr.Output())
	case output.ModeJSON:
		AssertNoANSI(t, tr.Output()+tr.ErrorOutput())
		trimmed := strings.TrimSpace(tr.Output())
		if trimmed != "" && !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
			t.Errorf("JSON output does not start with an object or array: %q", trimmed)
		}
	}
}
