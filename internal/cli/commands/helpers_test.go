package commands

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leadsunifier/internal/cli/config"
	"github.com/leapstack-labs/leadsunifier/internal/cli/output"
	"github.com/leapstack-labs/leadsunifier/internal/testutil"
)

// testConfig returns the default configuration rooted in a fresh temp dir
// without a log directory.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.InputDir = filepath.Join(dir, "input")
	cfg.OutputFile = filepath.Join(dir, "output", "contacts.csv")
	cfg.LogDir = ""
	return cfg
}

func testContext(t *testing.T, cfg *config.Config, mode output.Mode) (*CommandContext, *bytes.Buffer) {
	t.Helper()
	buf := new(bytes.Buffer)
	return &CommandContext{
		Cfg:      cfg,
		Logger:   testutil.NewTestLogger(t),
		Renderer: output.NewRenderer(buf, buf, mode),
	}, buf
}

// executeCommand runs cmd with cfg and a test logger in its context.
func executeCommand(t *testing.T, cmd *cobra.Command, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	ctx := config.WithConfig(context.Background(), cfg)
	ctx = context.WithValue(ctx, config.LoggerKey(), slog.New(slog.DiscardHandler))

	err := cmd.ExecuteContext(ctx)
	return buf.String(), err
}

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o750))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const mariaCRM = `Nome Completo,E-mail,Telefone
Maria Silva,Maria@Example.com,(11) 91234-5678
João Pedro de Souza,joao@example.com,(21) 98765-4321
`

const mariaEvents = `Full Name,Email Address,Mobile Phone
Maria Silva,maria@example.com,11912345678
Peter Parker,peter@example.com,+1 (212) 555-0187
`
