package domain

import "time"

// IndexEntry is a cached view of one entity file, enough for listing
// and search without re-reading markdown.
type IndexEntry struct {
	ID     string
	Type   EntityType
	Title  string
	Status Status
	Parent string
	Path   string // vault-relative path (primary key)
	Mtime  int64  // unix timestamp for incremental sync
}

// IndexStats holds statistics from an index sync operation.
type IndexStats struct {
	Added        int
	Updated      int
	Deleted      int
	FilesScanned int
	Duration     time.Duration
}
