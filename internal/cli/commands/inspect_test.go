package commands

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leadsunifier/internal/cli/output"
)

func TestInspectCommand_JSON(t *testing.T) {
	cfg := testConfig(t)
	cfg.OutputFormat = "json"
	crm := writeCSV(t, cfg.InputDir, "crm.csv", mariaCRM)
	missing := filepath.Join(cfg.InputDir, "missing.csv")

	out, err := executeCommand(t, NewInspectCommand(), cfg, crm, missing)
	require.NoError(t, err)

	var got output.InspectOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Files, 2)

	f := got.Files[0]
	assert.Equal(t, 2, f.Rows)
	require.Len(t, f.Columns, 3)
	assert.Equal(t, "Nome Completo", f.Columns[0].Column)
	assert.InDelta(t, 5.0, f.Columns[0].Name, 1e-9)
	assert.Greater(t, f.Columns[2].Phone, f.Columns[2].Name)
	assert.Equal(t, "Nome Completo", f.Name)
	assert.Equal(t, "E-mail", f.Email)
	assert.Equal(t, []string{"Telefone"}, f.Phones)
	assert.Empty(t, f.Error)

	assert.NotEmpty(t, got.Files[1].Error, "unreadable files are reported, not fatal")
}

func TestInspectCommand_InputDirectory(t *testing.T) {
	cfg := testConfig(t)
	writeCSV(t, cfg.InputDir, "crm.csv", mariaCRM)
	writeCSV(t, cfg.InputDir, "refs.csv", "Ref\nref 1001\n")

	out, err := executeCommand(t, NewInspectCommand(), cfg)
	require.NoError(t, err)

	assert.Contains(t, out, "## crm.csv (2 rows)")
	assert.Contains(t, out, "## refs.csv (1 rows)")
	assert.Contains(t, out, "| Column | Name | Email | Phone | Selected |")
	assert.Contains(t, out, "phone #1")
	assert.Contains(t, out, "> no email column found")
}

func TestInspectCommand_NoInputFiles(t *testing.T) {
	cfg := testConfig(t)

	_, err := executeCommand(t, NewInspectCommand(), cfg)
	assert.ErrorContains(t, err, "no input files found")
}

func TestSelectedFields(t *testing.T) {
	f := output.InspectFile{Name: "Contato", Email: "Mail", Phones: []string{"Cel", "Contato"}}

	assert.Equal(t, "name, phone #2", selectedFields(f, "Contato"))
	assert.Equal(t, "phone #1", selectedFields(f, "Cel"))
	assert.Equal(t, "", selectedFields(f, "Idade"))
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "-", formatScore(0))
	assert.Equal(t, "5.00", formatScore(5))
	assert.Equal(t, "2.25", formatScore(2.25))
}
