package sink

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leadsunifier/pkg/core"
)

func sampleContacts() []core.Contact {
	return []core.Contact{
		{Name: core.Some("Maria Silva"), Email: core.Some("maria@example.com"), Phone: core.Some("11912345678")},
		{Name: core.Some("Smith, John"), Email: core.Absent, Phone: core.Some("+15551234567")},
		{Name: core.Absent, Email: core.Some("ana@example.com"), Phone: core.Absent},
	}
}

func sampleSummary() core.RunSummary {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return core.RunSummary{
		ID:                "run-1",
		StartedAt:         start,
		CompletedAt:       start.Add(2 * time.Second),
		FilesProcessed:    2,
		TotalContacts:     4,
		DuplicatesRemoved: 1,
		UniqueContacts:    3,
	}
}

func TestInfer(t *testing.T) {
	tests := []struct {
		target string
		want   Format
	}{
		{"output/combined_contacts.csv", FormatCSV},
		{"output/contacts", FormatCSV},
		{"out.JSON", FormatJSON},
		{"state/contacts.db", FormatSQLite},
		{"contacts.sqlite3", FormatSQLite},
		{"postgres://user@localhost/leads", FormatPostgres},
		{"postgresql://localhost/leads", FormatPostgres},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			assert.Equal(t, tt.want, Infer(tt.target))
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, Format(""), f)

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	s, err := New("", "out/contacts.json")
	require.NoError(t, err)
	assert.IsType(t, &JSONSink{}, s)

	s, err = New(FormatCSV, "out/contacts.json")
	require.NoError(t, err)
	assert.IsType(t, &CSVSink{}, s)

	s, err = New("", "postgres://localhost/leads")
	require.NoError(t, err)
	assert.IsType(t, &SQLSink{}, s)

	_, err = New("", "")
	assert.Error(t, err)

	_, err = New("xml", "out.xml")
	assert.Error(t, err)
}

func TestCSVSink_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output", "combined_contacts.csv")

	err := NewCSV(path).Write(context.Background(), sampleSummary(), sampleContacts())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "name,email,phone\n"+
		"Maria Silva,maria@example.com,11912345678\n"+
		"\"Smith, John\",,+15551234567\n"+
		",ana@example.com,\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestCSVSink_Write_ReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.csv")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0600))

	require.NoError(t, NewCSV(path).Write(context.Background(), sampleSummary(), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "name,email,phone\n", string(data))
}

func TestCSVSink_Write_Cancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.csv")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewCSV(path).Write(ctx, sampleSummary(), sampleContacts())

	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, path)
}

func TestJSONSink_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.json")

	require.NoError(t, NewJSON(path).Write(context.Background(), sampleSummary(), sampleContacts()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []map[string]*string
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 3)
	assert.Equal(t, "Maria Silva", *got[0]["name"])
	assert.Nil(t, got[1]["email"])
	assert.Nil(t, got[2]["phone"])

	var contacts []core.Contact
	require.NoError(t, json.Unmarshal(data, &contacts))
	assert.Equal(t, sampleContacts(), contacts)
}

func TestJSONSink_Write_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.json")

	require.NoError(t, NewJSON(path).Write(context.Background(), sampleSummary(), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}
