package main

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// sanitizeTitle replaces every character that is unsafe in a filename with
// an underscore. Nothing else is touched: the filename is the article's
// identity across runs, so the mapping must stay stable.
func sanitizeTitle(title string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\\', '/', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, title)
}

// archiveFilename derives the on-disk name for a record. The scheme
// "{YYYYMMDD}_{sanitizedTitle}.md" is the system's only durable state; there
// is no separate index file.
func archiveFilename(rec *ArticleRecord) string {
	return rec.DateStamp + "_" + sanitizeTitle(rec.Title) + ".md"
}

// ArchiveIndex snapshots the output directory's filenames once per run and
// answers the two existence questions the processor asks: a cheap title-based
// pre-fetch check and an authoritative exact-filename post-fetch check.
// Filenames written during the run are appended back so later targets see
// them.
type ArchiveIndex struct {
	mu    sync.Mutex
	names map[string]bool
}

// NewArchiveIndex enumerates the output directory. The directory must exist.
func NewArchiveIndex(dir string) (*ArchiveIndex, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading output directory %s: %w", dir, err)
	}

	names := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names[entry.Name()] = true
	}

	return &ArchiveIndex{names: names}, nil
}

// HasTitleSuffix reports whether any archived filename ends with
// "_{sanitizedTitle}.md", regardless of date stamp. Approximate: two articles
// sharing a sanitized title collide here, which is why explicit URL targets
// bypass this check.
func (a *ArchiveIndex) HasTitleSuffix(sanitizedTitle string) bool {
	suffix := "_" + sanitizedTitle + ".md"

	a.mu.Lock()
	defer a.mu.Unlock()
	for name := range a.names {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// HasFilename reports whether the exact filename is already archived.
func (a *ArchiveIndex) HasFilename(name string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.names[name]
}

// Add registers a filename written during this run so two refs resolving to
// the same record cannot both write it.
func (a *ArchiveIndex) Add(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.names[name] = true
}

// Len returns the snapshot size, for log lines.
func (a *ArchiveIndex) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.names)
}
