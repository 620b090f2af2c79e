// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists fetched report rows in a SQLite database so
// periodic refreshes can be queried and exported without re-running the
// whole fetch.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/grant-reporter/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "grants.db"
)

// Store manages the report SQLite database.
type Store struct {
	db         *sql.DB
	reportDir  string
	maxResults int
}

// NewStore opens or creates the report database at
// reportDir/index/grants.db, creating the schema if needed.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.ReportDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 50
	}

	s := &Store{
		db:         db,
		reportDir:  cfg.ReportDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS grants (
			grant_num TEXT NOT NULL,
			pi_name TEXT,
			title TEXT,
			org_name TEXT,
			fy TEXT,
			award_amount TEXT,
			start_date TEXT,
			end_date TEXT,
			budget_start TEXT,
			budget_end TEXT,
			queried_last TEXT NOT NULL,
			queried_first TEXT NOT NULL,
			fetched_at TEXT NOT NULL,
			PRIMARY KEY (grant_num, fy, queried_last, queried_first)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_grants_queried ON grants(queried_last, queried_first)`,
		`CREATE INDEX IF NOT EXISTS idx_grants_fy ON grants(fy)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Ingest replaces the stored rows for one investigator with the records
// from the latest fetch. Passing zero records clears the investigator's
// previous contribution, matching a re-fetch that found nothing active.
func (s *Store) Ingest(ctx context.Context, name types.Name, records []types.ReportRecord) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM grants WHERE queried_last = ? AND queried_first = ?`,
		name.Last, name.First,
	); err != nil {
		return 0, fmt.Errorf("deleting old rows for %s: %w", name, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO grants (
			grant_num, pi_name, title, org_name, fy, award_amount,
			start_date, end_date, budget_start, budget_end,
			queried_last, queried_first, fetched_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	fetchedAt := time.Now().UTC().Format(time.RFC3339)
	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			r.GrantNum, r.PIName, r.Title, r.OrgName, r.FiscalYear,
			r.AwardAmount, r.StartDate, r.EndDate, r.BudgetStart, r.BudgetEnd,
			name.Last, name.First, fetchedAt,
		); err != nil {
			return 0, fmt.Errorf("inserting grant %s: %w", r.GrantNum, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return len(records), nil
}
