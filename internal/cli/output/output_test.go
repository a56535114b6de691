package output

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leadsunifier/internal/selector"
	"github.com/leapstack-labs/leadsunifier/pkg/core"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeAuto, false},
		{"auto", ModeAuto, false},
		{"text", ModeText, false},
		{"markdown", ModeMarkdown, false},
		{"json", ModeJSON, false},
		{"yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderer_EffectiveMode(t *testing.T) {
	buf := new(bytes.Buffer)

	assert.Equal(t, ModeMarkdown, NewRenderer(buf, buf, ModeAuto).EffectiveMode(), "buffers are not terminals")
	assert.Equal(t, ModeText, NewRenderer(buf, buf, ModeText).EffectiveMode())
	assert.Equal(t, ModeJSON, NewRenderer(buf, buf, ModeJSON).EffectiveMode())
	assert.False(t, NewRenderer(buf, buf, "").IsTTY())
}

func TestRenderer_PlainWithoutTerminal(t *testing.T) {
	buf := new(bytes.Buffer)
	r := NewRenderer(buf, buf, ModeText)

	r.Success("done")
	r.Header(1, "Summary")

	assert.Contains(t, buf.String(), "✓ done")
	assert.Contains(t, buf.String(), "Summary")
	assert.NotContains(t, buf.String(), "\x1b[", "no ANSI escapes without a terminal")
}

func TestRenderer_MarkdownHeader(t *testing.T) {
	buf := new(bytes.Buffer)
	NewRenderer(buf, buf, ModeMarkdown).Header(2, "Files")
	assert.Equal(t, "## Files\n", buf.String())
}

func TestRenderer_ErrorGoesToErrWriter(t *testing.T) {
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	NewRenderer(out, errOut, ModeText).Error("broken")

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "broken")
}

func TestRenderer_JSON(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, NewRenderer(buf, buf, ModeJSON).JSON(map[string]int{"n": 1}))
	assert.JSONEq(t, `{"n": 1}`, buf.String())
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "# Title", FormatHeader(0, "Title"))
	assert.Equal(t, "### Title", FormatHeader(3, "Title"))
	assert.Equal(t, "- **Files**: 2", FormatKeyValue("Files", "2"))
	assert.Equal(t, "66.7%", FormatPercent(200.0/3))
}

func TestTable(t *testing.T) {
	rows := [][]string{{"Maria Silva", "maria@example.com"}}

	md := new(bytes.Buffer)
	Table(md, []string{"Name", "Email"}, rows, true)
	assert.Contains(t, md.String(), "| Name | Email |")
	assert.Contains(t, md.String(), "| Maria Silva | maria@example.com |")

	text := new(bytes.Buffer)
	Table(text, []string{"Name", "Email"}, rows, false)
	assert.Contains(t, text.String(), "Maria Silva")
	assert.Contains(t, text.String(), "┌")
}

func TestProgress(t *testing.T) {
	p := NewProgress(4, false)

	assert.Contains(t, p.View(2), "50%")
	assert.Contains(t, p.View(4), "100%")
	assert.Contains(t, NewProgress(0, false).View(0), "0%")
}

func TestConsoleReporter(t *testing.T) {
	t.Run("json mode is silent", func(t *testing.T) {
		buf := new(bytes.Buffer)
		c := NewConsoleReporter(NewRenderer(buf, buf, ModeJSON))

		c.FileStarted(0, 1, "input/a.csv")
		c.FileDone("input/a.csv", 2, 1)
		c.RunCompleted(core.RunSummary{})

		assert.Empty(t, buf.String())
	})

	t.Run("markdown lists files", func(t *testing.T) {
		buf := new(bytes.Buffer)
		c := NewConsoleReporter(NewRenderer(buf, buf, ModeMarkdown))

		c.FileStarted(0, 2, "input/a.csv")
		c.ColumnsSelected("input/a.csv", selector.Selection{
			Email:  &selector.Candidate{Column: "E-mail"},
			Phones: []selector.Candidate{{Column: "Tel"}, {Column: "Cel"}},
		})
		c.FileFailed("input/b.csv", errors.New("bad quote"))

		out := buf.String()
		assert.Contains(t, out, "- [1/2] a.csv")
		assert.Contains(t, out, "email=E-mail phone=Tel|Cel")
		assert.Contains(t, out, "no name column found")
		assert.Contains(t, out, "b.csv: bad quote")
	})

	t.Run("text draws a progress bar", func(t *testing.T) {
		buf := new(bytes.Buffer)
		c := NewConsoleReporter(NewRenderer(buf, buf, ModeText))

		c.FileStarted(0, 2, "a.csv")
		c.FileDone("a.csv", 3, 3)
		c.RunCompleted(core.RunSummary{})

		out := buf.String()
		assert.Contains(t, out, "0%")
		assert.Contains(t, out, "[1/2] a.csv")
		assert.Contains(t, out, "3 contacts from 3 rows")
		assert.Contains(t, out, "100%")
	})
}
