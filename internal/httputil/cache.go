// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const cacheFile = "cache.db"

// CacheEntry is one cached response body.
type CacheEntry struct {
	URL       string
	Body      []byte
	ETag      string
	FetchedAt time.Time
}

// Cache stores fetched page bodies in a SQLite database so repeated
// harvests skip the network. Entries older than the TTL are stale: they are
// still returned so the caller can revalidate with their ETag.
type Cache struct {
	db  *sql.DB
	dir string
	ttl time.Duration
	now func() time.Time
}

// NewCache opens or creates dir/cache.db. A zero ttl keeps entries fresh
// forever.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, cacheFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}
	// Harvest workers share the handle; one connection serializes writers.
	db.SetMaxOpenConns(1)

	c := &Cache{db: db, dir: dir, ttl: ttl, now: time.Now}
	if err := c.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return c, nil
}

// Close releases the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Dir returns the directory holding the cache database.
func (c *Cache) Dir() string { return c.dir }

func (c *Cache) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS responses (
			url TEXT PRIMARY KEY,
			body BLOB NOT NULL,
			etag TEXT,
			fetched_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_responses_fetched_at ON responses(fetched_at)`,
	}
	for _, stmt := range statements {
		if _, err := c.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Get returns the entry for url and whether it is still fresh. A missing
// entry yields (nil, false, nil).
func (c *Cache) Get(ctx context.Context, url string) (*CacheEntry, bool, error) {
	var (
		entry     CacheEntry
		etag      sql.NullString
		fetchedAt string
	)
	err := c.db.QueryRowContext(ctx,
		`SELECT url, body, etag, fetched_at FROM responses WHERE url = ?`, url,
	).Scan(&entry.URL, &entry.Body, &etag, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache entry: %w", err)
	}

	entry.ETag = etag.String
	entry.FetchedAt, err = time.Parse(time.RFC3339Nano, fetchedAt)
	if err != nil {
		return nil, false, fmt.Errorf("parsing cache timestamp %q: %w", fetchedAt, err)
	}
	return &entry, c.fresh(entry.FetchedAt), nil
}

func (c *Cache) fresh(fetchedAt time.Time) bool {
	return c.ttl <= 0 || c.now().Sub(fetchedAt) <= c.ttl
}

// Put stores body for url, replacing any earlier entry.
func (c *Cache) Put(ctx context.Context, url string, body []byte, etag string) error {
	if body == nil {
		body = []byte{}
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO responses (url, body, etag, fetched_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET
			body=excluded.body, etag=excluded.etag, fetched_at=excluded.fetched_at`,
		url, body, etag, c.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Touch marks the entry for url as fetched now, after a 304 revalidation.
func (c *Cache) Touch(ctx context.Context, url string) error {
	_, err := c.db.ExecContext(ctx,
		`UPDATE responses SET fetched_at = ? WHERE url = ?`,
		c.now().UTC().Format(time.RFC3339Nano), url,
	)
	if err != nil {
		return fmt.Errorf("touching cache entry: %w", err)
	}
	return nil
}

// Clear removes every entry and returns how many were removed.
func (c *Cache) Clear(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx, `DELETE FROM responses`)
	if err != nil {
		return 0, fmt.Errorf("clearing cache: %w", err)
	}
	return res.RowsAffected()
}

// CacheStats summarizes cache contents.
type CacheStats struct {
	Entries int
	Stale   int
	Bytes   int64
}

// Stats counts entries, stale entries, and stored body bytes.
func (c *Cache) Stats(ctx context.Context) (CacheStats, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT fetched_at, length(body) FROM responses`)
	if err != nil {
		return CacheStats{}, fmt.Errorf("querying cache: %w", err)
	}
	defer rows.Close()

	var stats CacheStats
	for rows.Next() {
		var (
			fetchedAt string
			size      int64
		)
		if err := rows.Scan(&fetchedAt, &size); err != nil {
			return CacheStats{}, fmt.Errorf("scanning cache row: %w", err)
		}
		stats.Entries++
		stats.Bytes += size
		if t, err := time.Parse(time.RFC3339Nano, fetchedAt); err != nil || !c.fresh(t) {
			stats.Stale++
		}
	}
	return stats, rows.Err()
}
