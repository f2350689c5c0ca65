package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/xastools/beamcat/internal/model"
)

// ErrNotCached is returned when no page is cached for the requested region.
var ErrNotCached = errors.New("no cached page for region")

// PageCache stores the last fetched source page per region.
type PageCache struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures PageCache behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default cache options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// CachedPage is a stored source page.
type CachedPage struct {
	// Region is the region the page was fetched for.
	Region model.Region

	// URL is the source URL the page came from.
	URL string

	// HTML is the raw page exactly as fetched.
	HTML string

	// FetchedAt is when the page was stored.
	FetchedAt time.Time
}

// Open opens or creates a PageCache in the given directory.
// If CreateIfNotExists is false and no cache exists, an error is returned.
func Open(dir string, opts Options) (*PageCache, error) {
	dbPath := filepath.Join(dir, "beamcat.db")

	var dsn string
	if opts.CreateIfNotExists {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
		dsn = dbPath + "?mode=rwc"
	} else {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("page cache not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check cache path: %w", err)
		}
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open page cache: %w", err)
	}

	// SQLite only supports one writer; the pipeline is single-threaded
	// anyway, so a single connection is enough.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	pc := &PageCache{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := pc.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return pc, nil
}

// Close closes the database connection.
func (pc *PageCache) Close() error {
	return pc.db.Close()
}

// createTables creates the cache schema if it doesn't exist.
func (pc *PageCache) createTables() error {
	schema := `
	-- One row per region: the last raw page fetched for it.
	CREATE TABLE IF NOT EXISTS pages (
		region TEXT PRIMARY KEY,
		url TEXT NOT NULL,
		html TEXT NOT NULL,
		fetched_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := pc.db.ExecContext(context.Background(), schema)
	return err
}

// Put stores the raw page for a region, replacing any previous entry.
func (pc *PageCache) Put(ctx context.Context, region model.Region, url, html string) error {
	query := `
	INSERT INTO pages (region, url, html, fetched_at)
	VALUES (?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(region) DO UPDATE SET
		url = excluded.url,
		html = excluded.html,
		fetched_at = CURRENT_TIMESTAMP
	`
	if _, err := pc.db.ExecContext(ctx, query, string(region), url, html); err != nil {
		return fmt.Errorf("failed to cache page for %s: %w", region, err)
	}
	return nil
}

// Get returns the cached page for a region, or ErrNotCached.
func (pc *PageCache) Get(ctx context.Context, region model.Region) (*CachedPage, error) {
	query := `SELECT url, html, fetched_at FROM pages WHERE region = ?`

	page := CachedPage{Region: region}
	err := pc.db.QueryRowContext(ctx, query, string(region)).
		Scan(&page.URL, &page.HTML, &page.FetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", region, ErrNotCached)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached page for %s: %w", region, err)
	}

	return &page, nil
}

// ListCached returns the regions that have a cached page, in region name order.
func (pc *PageCache) ListCached(ctx context.Context) ([]model.Region, error) {
	rows, err := pc.db.QueryContext(ctx, `SELECT region FROM pages ORDER BY region`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached regions: %w", err)
	}
	defer rows.Close()

	regions := make([]model.Region, 0)
	for rows.Next() {
		var r string
		if err := rows.Scan(&r); err != nil {
			return nil, err
		}
		regions = append(regions, model.Region(r))
	}
	return regions, rows.Err()
}
