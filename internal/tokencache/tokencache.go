// package tokencache persists the authorized token set between CLI runs
// using a single-row SQLite table.
package tokencache

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/desertthunder/tempo/auth"
)

// ErrNoToken is returned by [Cache.Load] when nothing has been saved yet.
var ErrNoToken = fmt.Errorf("no cached token")

const schema = `
CREATE TABLE IF NOT EXISTS tokens (
    id            INTEGER PRIMARY KEY CHECK (id = 1),
    access_token  TEXT    NOT NULL,
    refresh_token TEXT    NOT NULL,
    scopes        TEXT    NOT NULL,
    expires_at    INTEGER NOT NULL,
    updated_at    INTEGER NOT NULL
);`

// Cache stores at most one [auth.TokenSet] on disk.
type Cache struct {
	db *sql.DB
}

// Open opens (or creates) the cache database at path. The path can be
// ":memory:" for an in-memory cache.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open token cache: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping token cache: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create token cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Save writes the token set, replacing whatever was stored before.
func (c *Cache) Save(ts *auth.TokenSet) error {
	if ts == nil {
		return fmt.Errorf("nil token set")
	}

	_, err := c.db.Exec(`
		INSERT INTO tokens (id, access_token, refresh_token, scopes, expires_at, updated_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			scopes = excluded.scopes,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at`,
		ts.AccessToken, ts.RefreshToken, strings.Join(ts.Scopes, " "),
		ts.ExpiresAt.Unix(), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// Load reads the stored token set, or [ErrNoToken] when the cache is empty.
func (c *Cache) Load() (*auth.TokenSet, error) {
	var (
		access, refresh, scopes string
		expiresAt               int64
	)

	row := c.db.QueryRow(`SELECT access_token, refresh_token, scopes, expires_at FROM tokens WHERE id = 1`)
	if err := row.Scan(&access, &refresh, &scopes, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoToken
		}
		return nil, fmt.Errorf("failed to load token: %w", err)
	}

	ts := &auth.TokenSet{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    time.Unix(expiresAt, 0),
	}
	if scopes != "" {
		ts.Scopes = strings.Fields(scopes)
	}
	return ts, nil
}

// Clear deletes the stored token set.
func (c *Cache) Clear() error {
	if _, err := c.db.Exec(`DELETE FROM tokens`); err != nil {
		return fmt.Errorf("failed to clear token cache: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}
