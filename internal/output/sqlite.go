// internal/output/sqlite.go
package output

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/valpere/SurveyRanker/pkg/types"
)

// SQLiteWriter dumps the ranking into a SQLite database file, one row per
// video. Respondents are stored as a semicolon-joined list; this is an
// export sink, not a live store.
type SQLiteWriter struct {
	db    *sql.DB
	table string
}

// NewSQLiteWriter creates a writer targeting the given database path and
// table name.
func NewSQLiteWriter(databasePath, table string) (*SQLiteWriter, error) {
	if databasePath == "" {
		return nil, fmt.Errorf("sqlite database path is required")
	}
	if table == "" {
		table = "ranking"
	}

	db, err := sql.Open("sqlite3", databasePath+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	return &SQLiteWriter{
		db:    db,
		table: table,
	}, nil
}

// Write recreates the ranking table and inserts every row in one
// transaction.
func (w *SQLiteWriter) Write(rows []types.RankingRow) error {
	schema := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %q (
		rank_dense INTEGER NOT NULL,
		rank_competition INTEGER NOT NULL,
		title TEXT NOT NULL,
		video_id TEXT PRIMARY KEY,
		upload_date TEXT NOT NULL,
		uploader TEXT NOT NULL,
		selection_count INTEGER NOT NULL,
		respondents TEXT NOT NULL
	)`, w.table)
	if _, err := w.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create table %s: %w", w.table, err)
	}
	if _, err := w.db.Exec(fmt.Sprintf("DELETE FROM %q", w.table)); err != nil {
		return fmt.Errorf("failed to clear table %s: %w", w.table, err)
	}

	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(fmt.Sprintf(
		"INSERT INTO %q (rank_dense, rank_competition, title, video_id, upload_date, uploader, selection_count, respondents) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		w.table,
	))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		_, err := stmt.Exec(
			row.RankDense,
			row.RankCompetition,
			row.Title,
			row.VideoID,
			row.UploadDate,
			row.Uploader,
			row.SelectionCount,
			strings.Join(row.Respondents, ";"),
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert row for %s: %w", row.VideoID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ranking: %w", err)
	}
	return nil
}

// Close closes the database handle.
func (w *SQLiteWriter) Close() error {
	if w.db != nil {
		err := w.db.Close()
		w.db = nil
		return err
	}
	return nil
}
