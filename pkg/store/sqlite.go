package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/matzehuels/pagesmith/pkg/model"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS websites (
	id         TEXT PRIMARY KEY,
	slug       TEXT NOT NULL UNIQUE,
	title      TEXT NOT NULL DEFAULT '',
	status     TEXT NOT NULL DEFAULT 'draft',
	domain     TEXT NOT NULL DEFAULT '',
	components INTEGER NOT NULL DEFAULT 0,
	data       TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS websites_updated ON websites(updated_at DESC);
`

type sqliteConfig struct {
	busyTimeout int
	synchronous string
	mkdirAll    bool
}

// SQLiteOption customises OpenSQLite.
type SQLiteOption func(*sqliteConfig)

// WithBusyTimeout sets PRAGMA busy_timeout in milliseconds. Default: 10000.
func WithBusyTimeout(ms int) SQLiteOption { return func(c *sqliteConfig) { c.busyTimeout = ms } }

// WithSynchronous sets PRAGMA synchronous. Default: "NORMAL".
func WithSynchronous(mode string) SQLiteOption {
	return func(c *sqliteConfig) { c.synchronous = mode }
}

// WithoutMkdirAll stops OpenSQLite from creating the database directory.
func WithoutMkdirAll() SQLiteOption { return func(c *sqliteConfig) { c.mkdirAll = false } }

// SQLiteStore keeps websites in one SQLite table. The envelope is stored as
// JSON text; the other columns are copies used for lookups and listing.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (and if needed creates) the database at path with WAL
// journaling and a busy timeout applied.
func OpenSQLite(path string, opts ...SQLiteOption) (*SQLiteStore, error) {
	cfg := sqliteConfig{busyTimeout: 10_000, synchronous: "NORMAL", mkdirAll: true}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.mkdirAll && path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, persistence(err, "mkdir for", path)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, persistence(err, "open", path)
	}
	// A single connection keeps :memory: databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.busyTimeout),
		"PRAGMA journal_mode = WAL",
		fmt.Sprintf("PRAGMA synchronous = %s", cfg.synchronous),
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, persistence(fmt.Errorf("%s: %w", p, err), "configure", path)
		}
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, persistence(err, "migrate", path)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, persistence(err, "ping", path)
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

func (s *SQLiteStore) LoadWebsite(ctx context.Context, id string) (model.WebsiteRecord, error) {
	return s.loadWhere(ctx, "id", id)
}

func (s *SQLiteStore) FindBySlug(ctx context.Context, slug string) (model.WebsiteRecord, error) {
	return s.loadWhere(ctx, "slug", slug)
}

func (s *SQLiteStore) loadWhere(ctx context.Context, column, value string) (model.WebsiteRecord, error) {
	var id, data string
	row := s.db.QueryRowContext(ctx, "SELECT id, data FROM websites WHERE "+column+" = ?", value)
	if err := row.Scan(&id, &data); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return model.WebsiteRecord{}, NotFound(value)
		}
		return model.WebsiteRecord{}, persistence(err, "load", value)
	}
	w, err := Decode([]byte(data))
	if err != nil {
		return model.WebsiteRecord{}, err
	}
	w.ID = id
	return w, nil
}

func (s *SQLiteStore) SaveWebsite(ctx context.Context, id string, req SaveRequest) (SaveResult, error) {
	w, err := Prepare(id, req, s.now())
	if err != nil {
		return SaveResult{}, err
	}
	data, err := Encode(w)
	if err != nil {
		return SaveResult{}, persistence(err, "encode", w.ID)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SaveResult{}, persistence(err, "save", w.ID)
	}
	defer tx.Rollback()

	var owner string
	err = tx.QueryRowContext(ctx, "SELECT id FROM websites WHERE slug = ?", w.Slug).Scan(&owner)
	switch {
	case err == nil && owner != w.ID:
		return SaveResult{}, SlugTaken(w.Slug)
	case err != nil && !stderrors.Is(err, sql.ErrNoRows):
		return SaveResult{}, persistence(err, "save", w.ID)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO websites (id, slug, title, status, domain, components, data, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			slug = excluded.slug,
			title = excluded.title,
			status = excluded.status,
			domain = excluded.domain,
			components = excluded.components,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		w.ID, w.Slug, w.Title, string(w.Status), w.Domain, len(w.Components), string(data),
		w.UpdatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return SaveResult{}, persistence(err, "save", w.ID)
	}
	if err := tx.Commit(); err != nil {
		return SaveResult{}, persistence(err, "commit", w.ID)
	}
	return SaveResult{ID: w.ID, Domain: w.Domain}, nil
}

func (s *SQLiteStore) ListWebsites(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, slug, status, components, updated_at FROM websites")
	if err != nil {
		return nil, persistence(err, "list", "*")
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var (
			sum     Summary
			status  string
			updated string
		)
		if err := rows.Scan(&sum.ID, &sum.Title, &sum.Slug, &status, &sum.Components, &updated); err != nil {
			return nil, persistence(err, "list", "*")
		}
		sum.Status = model.Status(status)
		sum.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, persistence(err, "list", "*")
	}
	sortSummaries(out)
	return out, nil
}

func (s *SQLiteStore) DeleteWebsite(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM websites WHERE id = ?", id); err != nil {
		return persistence(err, "delete", id)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
