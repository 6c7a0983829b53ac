package sqlite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"planvault/internal/adapters/frontmatter"
	"planvault/internal/domain"
)

// SyncFull performs a complete rebuild of the index
func (idx *Index) SyncFull() (*domain.IndexStats, error) {
	start := time.Now()
	stats := &domain.IndexStats{}

	if _, err := idx.db.Exec(`DELETE FROM entities`); err != nil {
		return nil, err
	}

	err := idx.walkEntityFiles(func(relPath string, mtime int64) {
		stats.FilesScanned++
		entry, err := idx.readEntry(relPath, mtime)
		if err != nil {
			return // plain note or unparsable file, not indexed
		}
		if err := idx.upsertEntry(entry); err != nil {
			return
		}
		stats.Added++
	})
	if err != nil {
		return stats, err
	}

	if err := idx.finishSync(); err != nil {
		return stats, err
	}
	stats.Duration = time.Since(start)
	return stats, nil
}

// SyncIncremental updates only files that changed since the last sync
func (idx *Index) SyncIncremental() (*domain.IndexStats, error) {
	start := time.Now()
	stats := &domain.IndexStats{}

	var lastSync int64
	var value string
	if err := idx.db.QueryRow(`SELECT value FROM meta WHERE key = 'last_sync_time'`).Scan(&value); err == nil {
		lastSync, _ = strconv.ParseInt(value, 10, 64)
	}

	// Track indexed paths to detect deletions.
	stale := make(map[string]bool)
	rows, err := idx.db.Query(`SELECT path FROM entities`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			rows.Close()
			return nil, err
		}
		stale[path] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = idx.walkEntityFiles(func(relPath string, mtime int64) {
		stats.FilesScanned++
		known := stale[relPath]
		delete(stale, relPath)

		if known && mtime <= lastSync {
			return
		}
		entry, err := idx.readEntry(relPath, mtime)
		if err != nil {
			return
		}
		if err := idx.upsertEntry(entry); err != nil {
			return
		}
		if known {
			stats.Updated++
		} else {
			stats.Added++
		}
	})
	if err != nil {
		return stats, err
	}

	for path := range stale {
		if err := idx.deleteEntry(path); err == nil {
			stats.Deleted++
		}
	}

	if err := idx.finishSync(); err != nil {
		return stats, err
	}
	stats.Duration = time.Since(start)
	return stats, nil
}

// walkEntityFiles visits every markdown file in the entity folders.
func (idx *Index) walkEntityFiles(visit func(relPath string, mtime int64)) error {
	for _, folder := range domain.EntityFolders {
		root := filepath.Join(idx.vaultPath, folder)
		if _, err := os.Stat(root); os.IsNotExist(err) {
			continue
		}

		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if strings.HasPrefix(d.Name(), ".") && path != root {
					return filepath.SkipDir
				}
				return nil
			}
			if !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			relPath, err := filepath.Rel(idx.vaultPath, path)
			if err != nil {
				return nil
			}
			visit(filepath.ToSlash(relPath), info.ModTime().Unix())
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to walk %s: %w", folder, err)
		}
	}
	return nil
}

var errNotAnEntity = errors.New("not an entity file")

func (idx *Index) readEntry(relPath string, mtime int64) (*domain.IndexEntry, error) {
	content, err := os.ReadFile(filepath.Join(idx.vaultPath, relPath))
	if err != nil {
		return nil, err
	}
	e, err := frontmatter.Parse(content)
	if err != nil {
		return nil, errNotAnEntity
	}
	return &domain.IndexEntry{
		ID:     e.ID,
		Type:   e.Type,
		Title:  e.Title,
		Status: e.Status,
		Parent: e.Parent,
		Path:   relPath,
		Mtime:  mtime,
	}, nil
}

func (idx *Index) finishSync() error {
	if err := idx.setMeta("schema_version", schemaVersion); err != nil {
		return err
	}
	return idx.setMeta("last_sync_time", strconv.FormatInt(time.Now().Unix(), 10))
}
