package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"planvault/internal/application"
	"planvault/internal/domain"
	"planvault/internal/ports"

	_ "github.com/mattn/go-sqlite3"
)

const schemaVersion = "1"

// Index implements ports.VaultIndex using SQLite. The database is a
// throwaway cache under the vault; the markdown files stay the source
// of truth.
type Index struct {
	db        *sql.DB
	vaultPath string
	dbPath    string
}

// Ensure Index implements VaultIndex
var _ ports.VaultIndex = (*Index)(nil)

// NewIndex creates a new SQLite index
func NewIndex() *Index {
	return &Index{}
}

func databasePath(vaultPath string) string {
	return filepath.Join(vaultPath, ".planvault", "index.db")
}

// Open initializes the index for the given vault path
func (idx *Index) Open(vaultPath string) error {
	idx.vaultPath = vaultPath
	idx.dbPath = databasePath(vaultPath)

	if err := os.MkdirAll(filepath.Dir(idx.dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	db, err := sql.Open("sqlite3", idx.dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	idx.db = db

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS entities (
			path TEXT PRIMARY KEY,
			id TEXT NOT NULL,
			type TEXT NOT NULL,
			title TEXT,
			status TEXT NOT NULL,
			parent TEXT,
			mtime INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_entities_id ON entities(id);
		CREATE INDEX IF NOT EXISTS idx_entities_status ON entities(status);
		CREATE INDEX IF NOT EXISTS idx_entities_type ON entities(type);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	return nil
}

// Close releases the database handle.
func (idx *Index) Close() error {
	if idx.db == nil {
		return nil
	}
	return idx.db.Close()
}

// NeedsFullRebuild reports whether the on-disk schema predates this
// binary or the index has never been synced.
func (idx *Index) NeedsFullRebuild() bool {
	var version string
	err := idx.db.QueryRow(`SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&version)
	if err != nil || version != schemaVersion {
		return true
	}
	var lastSync string
	err = idx.db.QueryRow(`SELECT value FROM meta WHERE key = 'last_sync_time'`).Scan(&lastSync)
	return err != nil
}

// GetByID returns the cached entry for an entity id.
func (idx *Index) GetByID(id string) (*domain.IndexEntry, error) {
	row := idx.db.QueryRow(
		`SELECT path, id, type, title, status, parent, mtime FROM entities WHERE id = ?`, id)
	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, &application.NotFoundError{Kind: "entity", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query entity %s: %w", id, err)
	}
	return entry, nil
}

// ListByType returns all cached entries of one entity type, by id.
func (idx *Index) ListByType(typ domain.EntityType) ([]*domain.IndexEntry, error) {
	return idx.queryEntries(
		`SELECT path, id, type, title, status, parent, mtime FROM entities WHERE type = ? ORDER BY id`,
		string(typ))
}

// ListByStatus returns all cached entries with one status, by id.
func (idx *Index) ListByStatus(status domain.Status) ([]*domain.IndexEntry, error) {
	return idx.queryEntries(
		`SELECT path, id, type, title, status, parent, mtime FROM entities WHERE status = ? ORDER BY id`,
		string(status))
}

// Search matches ids and titles case-insensitively.
func (idx *Index) Search(query string) ([]*domain.IndexEntry, error) {
	pattern := "%" + query + "%"
	return idx.queryEntries(
		`SELECT path, id, type, title, status, parent, mtime FROM entities
		 WHERE id LIKE ? OR title LIKE ? ORDER BY id`,
		pattern, pattern)
}

func (idx *Index) queryEntries(query string, args ...any) ([]*domain.IndexEntry, error) {
	rows, err := idx.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query index: %w", err)
	}
	defer rows.Close()

	var entries []*domain.IndexEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*domain.IndexEntry, error) {
	var entry domain.IndexEntry
	var typ, status string
	if err := row.Scan(&entry.Path, &entry.ID, &typ, &entry.Title, &status, &entry.Parent, &entry.Mtime); err != nil {
		return nil, err
	}
	entry.Type = domain.EntityType(typ)
	entry.Status = domain.Status(status)
	return &entry, nil
}

func (idx *Index) upsertEntry(entry *domain.IndexEntry) error {
	_, err := idx.db.Exec(`
		INSERT INTO entities (path, id, type, title, status, parent, mtime)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			id = excluded.id,
			type = excluded.type,
			title = excluded.title,
			status = excluded.status,
			parent = excluded.parent,
			mtime = excluded.mtime`,
		entry.Path, entry.ID, string(entry.Type), entry.Title, string(entry.Status), entry.Parent, entry.Mtime)
	return err
}

func (idx *Index) deleteEntry(path string) error {
	_, err := idx.db.Exec(`DELETE FROM entities WHERE path = ?`, path)
	return err
}

func (idx *Index) setMeta(key, value string) error {
	_, err := idx.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, key, value)
	return err
}
