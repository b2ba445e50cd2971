// Package ledger keeps a local history of generated invoices in a sqlite
// database, one row per successful run.
package ledger

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Run is one recorded invoice generation.
type Run struct {
	ID         int64
	CreatedAt  time.Time
	Period     string
	Items      int
	TotalHours float64
	OutputPath string
}

type Ledger struct {
	conn *sql.DB
}

// Open creates or opens the run database under dataDir and brings the
// schema up to date.
func Open(dataDir string) (*Ledger, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create ledger directory: %w", err)
	}

	conn, err := sql.Open("sqlite", filepath.Join(dataDir, "runs.db"))
	if err != nil {
		return nil, fmt.Errorf("open ledger database: %w", err)
	}

	l := &Ledger{conn: conn}
	if err := l.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate ledger database: %w", err)
	}
	return l, nil
}

func (l *Ledger) migrate() error {
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.Up(l.conn, "migrations")
}

// Record stores one finished run.
func (l *Ledger) Record(run Run) error {
	_, err := l.conn.Exec(
		`INSERT INTO runs (created_at, period, items, total_hours, output_path) VALUES (?, ?, ?, ?, ?)`,
		run.CreatedAt.UTC().Format(time.RFC3339),
		run.Period,
		run.Items,
		run.TotalHours,
		run.OutputPath,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// Recent returns the most recent runs, newest first.
func (l *Ledger) Recent(n int) ([]Run, error) {
	rows, err := l.conn.Query(
		`SELECT id, created_at, period, items, total_hours, output_path
		 FROM runs ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var createdAt string
		if err := rows.Scan(&run.ID, &createdAt, &run.Period, &run.Items, &run.TotalHours, &run.OutputPath); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (l *Ledger) Close() error {
	return l.conn.Close()
}
