package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/i474232898/location-report/internal/location"

	_ "modernc.org/sqlite"
)

// SQLite keeps a domain table in an embedded SQLite database. Every codec
// column becomes a TEXT column; seq preserves insertion order.
type SQLite[R any] struct {
	mu    sync.Mutex
	db    *sql.DB
	table string
	codec Codec[R]
}

// OpenSQLite opens (or creates) the database at dbPath and ensures the table exists.
func OpenSQLite[R any](dbPath, table string, codec Codec[R]) (*SQLite[R], error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", dbPath, err)
	}
	db.SetMaxOpenConns(1)

	s := &SQLite[R]{db: db, table: table, codec: codec}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite[R]) init() error {
	cols := make([]string, 0, len(s.codec.Columns()))
	for _, c := range s.codec.Columns() {
		cols = append(cols, fmt.Sprintf("%s TEXT NOT NULL DEFAULT ''", c))
	}

	//nolint:gosec // table and column names come from codecs, not input
	_, err := s.db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %[1]s (
			seq          INTEGER PRIMARY KEY AUTOINCREMENT,
			capital      TEXT NOT NULL,
			country_code TEXT NOT NULL,
			%[2]s
		);
		CREATE INDEX IF NOT EXISTS idx_%[1]s_key ON %[1]s(country_code COLLATE NOCASE, capital COLLATE NOCASE);
	`, s.table, strings.Join(cols, ",\n\t\t\t")))
	if err != nil {
		return fmt.Errorf("initializing %s schema: %w", s.table, err)
	}
	return nil
}

func (s *SQLite[R]) selectColumns() string {
	return strings.Join(append([]string{"capital", "country_code"}, s.codec.Columns()...), ", ")
}

// LoadAll returns every row ordered by insertion.
func (s *SQLite[R]) LoadAll() ([]Row[R], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *SQLite[R]) load() ([]Row[R], error) {
	//nolint:gosec
	rows, err := s.db.Query(fmt.Sprintf("SELECT %s FROM %s ORDER BY seq", s.selectColumns(), s.table))
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", s.table, err)
	}
	defer rows.Close()

	width := 2 + len(s.codec.Columns())
	var out []Row[R]
	for rows.Next() {
		vals := make([]string, width)
		ptrs := make([]any, width)
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", s.table, err)
		}

		key := location.Key{Capital: vals[0], CountryCode: vals[1]}
		v, err := s.codec.Decode(key, vals[2:])
		if err != nil {
			return nil, fmt.Errorf("decoding %s row %s: %w", s.table, key, err)
		}
		out = append(out, Row[R]{Key: key, Value: v})
	}
	return out, rows.Err()
}

// Append inserts rows for keys the table does not hold yet, in one transaction.
func (s *SQLite[R]) Append(rows []Row[R]) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.load()
	if err != nil {
		return 0, err
	}
	fresh := onlyNew(Keys(existing), rows)
	if len(fresh) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	width := 2 + len(s.codec.Columns())
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", width), ", ")
	//nolint:gosec
	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", s.table, s.selectColumns(), placeholders))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, row := range fresh {
		cols, err := s.codec.Encode(row.Value)
		if err != nil {
			return 0, fmt.Errorf("encoding %s: %w", row.Key, err)
		}
		args := make([]any, 0, width)
		args = append(args, row.Key.Capital, row.Key.CountryCode)
		for _, c := range cols {
			args = append(args, c)
		}
		if _, err := stmt.Exec(args...); err != nil {
			return 0, fmt.Errorf("inserting %s: %w", row.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(fresh), nil
}

func (s *SQLite[R]) Close() error {
	return s.db.Close()
}
