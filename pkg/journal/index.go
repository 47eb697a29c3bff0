package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Index is a queryable SQLite copy of journal entries.
type Index struct {
	db *sql.DB
}

func OpenIndex(path string) (*Index, error) {
	if path == "" {
		return nil, fmt.Errorf("journal: empty index path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := initIndex(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Index{db: db}, nil
}

func initIndex(db *sql.DB) error {
	stmts := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		`CREATE TABLE IF NOT EXISTS entries (
			seq INTEGER PRIMARY KEY,
			time TEXT NOT NULL,
			kind TEXT NOT NULL,
			menu_id INTEGER NOT NULL,
			menu_type TEXT NOT NULL,
			state_id INTEGER,
			slot INTEGER,
			raw_json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_kind ON entries(kind);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_menu_slot ON entries(menu_id, slot);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("journal: init index: %w", err)
		}
	}
	return nil
}

func (ix *Index) Close() error { return ix.db.Close() }

// Record inserts e, replacing any entry with the same sequence number.
func (ix *Index) Record(ctx context.Context, e Entry) error {
	var cols struct {
		StateID *int `json:"state_id"`
		Slot    *int `json:"slot"`
	}
	if err := json.Unmarshal(e.Data, &cols); err != nil {
		return fmt.Errorf("journal: decode entry %d: %w", e.Seq, err)
	}

	_, err := ix.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO entries (seq, time, kind, menu_id, menu_type, state_id, slot, raw_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Seq, e.Time.Format(time.RFC3339Nano), e.Kind, e.Menu.ID, e.Menu.Type,
		cols.StateID, cols.Slot, string(e.Data))
	if err != nil {
		return fmt.Errorf("journal: record entry %d: %w", e.Seq, err)
	}
	return nil
}

// CountByKind returns the number of indexed entries of each kind.
func (ix *Index) CountByKind(ctx context.Context) (map[string]int, error) {
	rows, err := ix.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM entries GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("journal: count by kind: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("journal: count by kind: %w", err)
		}
		out[kind] = n
	}
	return out, rows.Err()
}

// SlotHistory returns the sequence numbers of entries touching slot of the
// given menu, oldest first.
func (ix *Index) SlotHistory(ctx context.Context, menuID, slot int) ([]uint64, error) {
	rows, err := ix.db.QueryContext(ctx,
		`SELECT seq FROM entries WHERE menu_id = ? AND slot = ? ORDER BY seq`, menuID, slot)
	if err != nil {
		return nil, fmt.Errorf("journal: slot history: %w", err)
	}
	defer rows.Close()

	var seqs []uint64
	for rows.Next() {
		var seq uint64
		if err := rows.Scan(&seq); err != nil {
			return nil, fmt.Errorf("journal: slot history: %w", err)
		}
		seqs = append(seqs, seq)
	}
	return seqs, rows.Err()
}
