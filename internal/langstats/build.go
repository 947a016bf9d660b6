package langstats

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/moodmelody/melodystats/internal/linecount"
	"github.com/moodmelody/melodystats/internal/scan"
	"github.com/moodmelody/melodystats/internal/store"
)

// Cache remembers line counts between runs. *store.DB implements it.
type Cache interface {
	CachedLines(path string, mtime, size int64) (int, bool, error)
	PutFile(row store.FileRow) error
	PruneFiles(root string, seen map[string]struct{}) (int, error)
}

type Options struct {
	Root   string
	Filter scan.Filter
	Cache  Cache     // optional
	Warn   io.Writer // receives WARN lines; nil discards them
}

type Stats struct {
	Scanned int
	Counted int
	Cached  int
	Pruned  int
	Errors  int
}

func (s Stats) String() string {
	return fmt.Sprintf("scanned=%d counted=%d cached=%d pruned=%d errors=%d",
		s.Scanned, s.Counted, s.Cached, s.Pruned, s.Errors)
}

// Build walks opts.Root and counts the non-blank lines of every matching
// file. Files that cannot be read are reported and skipped.
func Build(ctx context.Context, opts Options) (*Report, Stats, error) {
	var stats Stats
	warn := opts.Warn
	if warn == nil {
		warn = io.Discard
	}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, stats, fmt.Errorf("resolve root: %w", err)
	}

	files, err := scan.Walk(root, opts.Filter)
	if err != nil {
		return nil, stats, fmt.Errorf("scan: %w", err)
	}
	stats.Scanned = len(files)

	report := newReport()
	seen := make(map[string]struct{}, len(files))

	for _, fi := range files {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		lines, fromCache, err := countFile(opts.Cache, fi)
		if err != nil {
			stats.Errors++
			fmt.Fprintf(warn, "  WARN: read %s: %v\n", fi.Path, err)
			continue
		}
		seen[fi.Path] = struct{}{}
		if fromCache {
			stats.Cached++
		} else {
			stats.Counted++
			if opts.Cache != nil {
				row := store.FileRow{
					Path: fi.Path, Root: root, Rel: fi.Rel, Ext: fi.Ext,
					Lines: lines, Mtime: fi.Mtime, Size: fi.Size,
				}
				if err := opts.Cache.PutFile(row); err != nil {
					fmt.Fprintf(warn, "  WARN: cache %s: %v\n", fi.Path, err)
				}
			}
		}
		report.add(FileLineRecord{Path: fi.Rel, Lines: lines, Ext: fi.Ext})
	}
	report.rollup()

	if opts.Cache != nil {
		pruned, err := opts.Cache.PruneFiles(root, seen)
		if err != nil {
			return nil, stats, fmt.Errorf("prune: %w", err)
		}
		stats.Pruned = pruned
	}

	return report, stats, nil
}

func countFile(cache Cache, fi scan.FileInfo) (int, bool, error) {
	if cache != nil {
		lines, ok, err := cache.CachedLines(fi.Path, fi.Mtime, fi.Size)
		if err == nil && ok {
			return lines, true, nil
		}
	}
	lines, err := linecount.CountFile(fi.Path)
	return lines, false, err
}
