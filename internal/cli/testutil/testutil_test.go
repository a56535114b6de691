package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leadsunifier/internal/cli/output"
)

func TestSetupWorkspace(t *testing.T) {
	ws := SetupWorkspace(t)

	for _, name := range []string{"crm_export.csv", "event_signups.csv"} {
		if _, err := os.Stat(filepath.Join(ws, "input", name)); err != nil {
			t.Errorf("missing fixture %s: %v", name, err)
		}
	}
}

func TestTestRenderer(t *testing.T) {
	tr := NewTestRenderer(output.ModeMarkdown)
	tr.Header(1, "Processing Complete")
	tr.Error("broken.csv: bad quote")

	AssertOutputMode(t, tr, output.ModeMarkdown)
	AssertContains(t, tr.Output(), "# Processing Complete")
	AssertNotContains(t, tr.Output(), "bad quote")
	AssertContains(t, tr.ErrorOutput(), "bad quote")

	tr.Reset()
	if tr.Output() != "" || tr.ErrorOutput() != "" {
		t.Error("Reset should clear both buffers")
	}

	js := NewTestRenderer(output.ModeJSON)
	if err := js.JSON(map[string]int{"files": 2}); err != nil {
		t.Fatal(err)
	}
	AssertOutputMode(t, js, output.ModeJSON)
}
