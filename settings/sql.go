package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"

	// Pure-Go SQLite driver.
	_ "modernc.org/sqlite"
)

// SQLStore keeps the settings of many fonts in one sqlite database.
type SQLStore struct {
	db *sql.DB
}

// OpenSQL opens or creates the database at path.
func OpenSQL(ctx context.Context, path string) (*SQLStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("settings: open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	const ddl = `CREATE TABLE IF NOT EXISTS settings (
		font  TEXT NOT NULL,
		key   TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (font, key)
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("settings: create table: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// Close closes the database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Font returns the Store for one font.
func (s *SQLStore) Font(name string) Store {
	return fontStore{db: s.db, font: name}
}

// Fonts lists the fonts with saved settings.
func (s *SQLStore) Fonts(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT font FROM settings ORDER BY font`)
	if err != nil {
		return nil, fmt.Errorf("settings: list fonts: %w", err)
	}
	defer rows.Close()

	var fonts []string
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, fmt.Errorf("settings: list fonts: %w", err)
		}
		fonts = append(fonts, f)
	}
	return fonts, rows.Err()
}

type fontStore struct {
	db   *sql.DB
	font string
}

// Save replaces the font's settings in one transaction.
func (s fontStore) Save(ctx context.Context, st Settings) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("settings: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM settings WHERE font = ?`, s.font); err != nil {
		return fmt.Errorf("settings: clear %q: %w", s.font, err)
	}
	for k, v := range st.Values() {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("settings: encode %s: %w", k, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO settings (font, key, value) VALUES (?, ?, ?)`, s.font, k, string(data)); err != nil {
			return fmt.Errorf("settings: save %s: %w", k, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("settings: commit: %w", err)
	}
	return nil
}

func (s fontStore) Load(ctx context.Context) (Settings, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM settings WHERE font = ?`, s.font)
	if err != nil {
		return Settings{}, fmt.Errorf("settings: load %q: %w", s.font, err)
	}
	defer rows.Close()

	values := make(map[string]any)
	for rows.Next() {
		var k, raw string
		if err := rows.Scan(&k, &raw); err != nil {
			return Settings{}, fmt.Errorf("settings: load %q: %w", s.font, err)
		}
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return Settings{}, fmt.Errorf("settings: decode %s: %w", k, err)
		}
		values[k] = v
	}
	if err := rows.Err(); err != nil {
		return Settings{}, fmt.Errorf("settings: load %q: %w", s.font, err)
	}
	if _, ok := values[KeyThickness]; !ok {
		return Settings{}, ErrNoSettings
	}
	return FromValues(values)
}

func (s fontStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE font = ?`, s.font); err != nil {
		return fmt.Errorf("settings: clear %q: %w", s.font, err)
	}
	return nil
}
