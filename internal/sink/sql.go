package sink

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // postgres driver
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // sqlite driver

	"github.com/leapstack-labs/leadsunifier/pkg/core"
)

//go:embed migrations/*.sql
var migrations embed.FS

// goose keeps its configuration in package state.
var migrateMu sync.Mutex

type dialect struct {
	driver string
	goose  string
	bind   func(n int) string
}

var (
	sqliteDialect = dialect{
		driver: "sqlite",
		goose:  "sqlite3",
		bind:   func(int) string { return "?" },
	}
	postgresDialect = dialect{
		driver: "pgx",
		goose:  "postgres",
		bind:   func(n int) string { return "$" + strconv.Itoa(n) },
	}
)

// SQLSink appends each run and its contacts to a SQL database.
type SQLSink struct {
	// SkipMigrations leaves the schema alone; the tables must exist.
	SkipMigrations bool
	// Logger receives migration output (optional, uses discard if nil).
	Logger *slog.Logger

	dsn     string
	path    string
	dialect dialect
	db      *sql.DB
}

// NewSQLite creates a sink writing to the SQLite database file at path.
func NewSQLite(path string) *SQLSink {
	return &SQLSink{
		dsn:     path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		path:    path,
		dialect: sqliteDialect,
	}
}

// NewPostgres creates a sink writing to the database at url.
func NewPostgres(url string) *SQLSink {
	return &SQLSink{dsn: url, dialect: postgresDialect}
}

// NewSQLWithDB creates a sink over an open connection. The caller keeps
// ownership of db.
func NewSQLWithDB(db *sql.DB, format Format) (*SQLSink, error) {
	s := &SQLSink{db: db}
	switch format {
	case FormatSQLite:
		s.dialect = sqliteDialect
	case FormatPostgres:
		s.dialect = postgresDialect
	default:
		return nil, fmt.Errorf("format %q is not a SQL format", format)
	}
	return s, nil
}

// Write implements Sink. The run row and every contact row are inserted in
// one transaction.
func (s *SQLSink) Write(ctx context.Context, summary core.RunSummary, contacts []core.Contact) (err error) {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	if s.db == nil {
		defer func() { _ = db.Close() }()
	}

	if !s.SkipMigrations {
		if err := s.migrate(db); err != nil {
			return err
		}
	}

	if summary.ID == "" {
		summary.ID = uuid.NewString()
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, s.insertRunSQL(),
		summary.ID,
		summary.StartedAt.UTC(),
		summary.CompletedAt.UTC(),
		summary.FilesProcessed,
		summary.FilesFailed,
		summary.TotalContacts,
		summary.DuplicatesRemoved,
		summary.UniqueContacts,
	); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, s.insertContactSQL())
	if err != nil {
		return fmt.Errorf("failed to prepare contact insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, c := range contacts {
		if _, err := stmt.ExecContext(ctx,
			summary.ID, i, nullString(c.Name), nullString(c.Email), nullString(c.Phone),
		); err != nil {
			return fmt.Errorf("failed to insert contact %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

func (s *SQLSink) open(ctx context.Context) (*sql.DB, error) {
	if s.db != nil {
		return s.db, nil
	}
	if s.path != "" {
		if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	db, err := sql.Open(s.dialect.driver, s.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", s.dialect.driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w", s.dialect.driver, err)
	}
	return db, nil
}

// migrate runs all pending schema migrations.
func (s *SQLSink) migrate(db *sql.DB) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{logger: s.logger()})

	if err := goose.SetDialect(s.dialect.goose); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *SQLSink) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

func (s *SQLSink) insertRunSQL() string {
	return "INSERT INTO runs (id, started_at, completed_at, files_processed, files_failed, " +
		"total_contacts, duplicates_removed, unique_contacts) VALUES (" + s.binds(8) + ")"
}

func (s *SQLSink) insertContactSQL() string {
	return "INSERT INTO contacts (run_id, position, name, email, phone) VALUES (" + s.binds(5) + ")"
}

func (s *SQLSink) binds(n int) string {
	parts := make([]string, n)
	for i := range n {
		parts[i] = s.dialect.bind(i + 1)
	}
	return strings.Join(parts, ", ")
}

func nullString(v core.Value) sql.NullString {
	str, ok := v.Get()
	return sql.NullString{String: str, Valid: ok}
}

// gooseLogger routes migration output to slog.
type gooseLogger struct {
	logger *slog.Logger
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
