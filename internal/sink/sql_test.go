package sink

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leadsunifier/internal/testutil"
)

func TestSQLSink_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "contacts.db")
	s := NewSQLite(path)
	s.Logger = testutil.NewTestLogger(t)

	require.NoError(t, s.Write(context.Background(), sampleSummary(), sampleContacts()))

	second := sampleSummary()
	second.ID = "run-2"
	require.NoError(t, s.Write(context.Background(), second, sampleContacts()[:1]))

	db, err := sql.Open("sqlite", path+"?mode=ro")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var runs, contacts int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&runs))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM contacts").Scan(&contacts))
	assert.Equal(t, 2, runs)
	assert.Equal(t, 4, contacts)

	var unique int
	require.NoError(t, db.QueryRow("SELECT unique_contacts FROM runs WHERE id = ?", "run-1").Scan(&unique))
	assert.Equal(t, 3, unique)

	var name, email, phone sql.NullString
	require.NoError(t, db.QueryRow(
		"SELECT name, email, phone FROM contacts WHERE run_id = ? AND position = 1", "run-1",
	).Scan(&name, &email, &phone))
	assert.Equal(t, "Smith, John", name.String)
	assert.False(t, email.Valid)
	assert.Equal(t, "+15551234567", phone.String)
}

func TestSQLSink_WithDB(t *testing.T) {
	tests := []struct {
		name      string
		format    Format
		setupMock func(mock sqlmock.Sqlmock)
		expectErr string
	}{
		{
			name:   "sqlite commits run and contacts",
			format: FormatSQLite,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO runs \(.*\) VALUES \(\?, \?, \?, \?, \?, \?, \?, \?\)`).
					WithArgs("run-1", sqlmock.AnyArg(), sqlmock.AnyArg(), 2, 0, 4, 1, 3).
					WillReturnResult(sqlmock.NewResult(1, 1))
				prep := mock.ExpectPrepare(`INSERT INTO contacts \(run_id, position, name, email, phone\) VALUES \(\?, \?, \?, \?, \?\)`)
				prep.ExpectExec().WithArgs("run-1", 0, "Maria Silva", "maria@example.com", "11912345678").
					WillReturnResult(sqlmock.NewResult(1, 1))
				prep.ExpectExec().WithArgs("run-1", 1, "Smith, John", nil, "+15551234567").
					WillReturnResult(sqlmock.NewResult(2, 1))
				prep.ExpectExec().WithArgs("run-1", 2, nil, "ana@example.com", nil).
					WillReturnResult(sqlmock.NewResult(3, 1))
				mock.ExpectCommit()
			},
		},
		{
			name:   "postgres uses numbered placeholders",
			format: FormatPostgres,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO runs \(.*\) VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7, \$8\)`).
					WillReturnResult(sqlmock.NewResult(1, 1))
				prep := mock.ExpectPrepare(`VALUES \(\$1, \$2, \$3, \$4, \$5\)`)
				for range 3 {
					prep.ExpectExec().WillReturnResult(sqlmock.NewResult(1, 1))
				}
				mock.ExpectCommit()
			},
		},
		{
			name:   "rolls back when a contact insert fails",
			format: FormatSQLite,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO runs").WillReturnResult(sqlmock.NewResult(1, 1))
				prep := mock.ExpectPrepare("INSERT INTO contacts")
				prep.ExpectExec().WillReturnResult(sqlmock.NewResult(1, 1))
				prep.ExpectExec().WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			expectErr: "failed to insert contact 1",
		},
		{
			name:   "rolls back when the run insert fails",
			format: FormatSQLite,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO runs").WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			expectErr: "failed to insert run",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer func() { _ = db.Close() }()

			tt.setupMock(mock)

			s, err := NewSQLWithDB(db, tt.format)
			require.NoError(t, err)
			s.SkipMigrations = true

			err = s.Write(context.Background(), sampleSummary(), sampleContacts())
			if tt.expectErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectErr)
				assert.ErrorIs(t, err, assert.AnError)
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestNewSQLWithDB_RejectsFileFormats(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = NewSQLWithDB(db, FormatCSV)
	assert.Error(t, err)
}
