package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

type FileInfo struct {
	Path  string // path as found on disk
	Rel   string // slash-separated path relative to the scan root
	Ext   string // recognized extension the name matched
	Mtime int64
	Size  int64
}

// Filter decides which directories are pruned and which files are kept.
type Filter struct {
	ExcludeDirs  []string
	ExcludeGlobs []string // doublestar patterns matched against Rel
	Extensions   []string
}

// MatchExt returns the first extension that name ends with.
func (f Filter) MatchExt(name string) (string, bool) {
	for _, ext := range f.Extensions {
		if strings.HasSuffix(name, ext) {
			return ext, true
		}
	}
	return "", false
}

// Excluded reports whether any component of rel is an excluded directory
// name or rel matches one of the exclude globs.
func (f Filter) Excluded(rel string) bool {
	if rel == "." || rel == "" {
		return false
	}
	for _, part := range strings.Split(rel, "/") {
		for _, ex := range f.ExcludeDirs {
			if part == ex {
				return true
			}
		}
	}
	for _, pattern := range f.ExcludeGlobs {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// Walk returns every file under root accepted by the filter, in lexical
// order. Symlinks to files are followed; symlinked directories are not.
// Unreadable directories are skipped.
func Walk(root string, filter Filter) ([]FileInfo, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, err
	}

	var files []FileInfo
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil // skip unreadable entries
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path != root && filter.Excluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() && d.Type()&fs.ModeSymlink == 0 {
			return nil
		}
		ext, ok := filter.MatchExt(d.Name())
		if !ok || filter.Excluded(rel) {
			return nil
		}
		info, ok := statFile(path, d)
		if !ok {
			return nil
		}
		files = append(files, FileInfo{
			Path:  path,
			Rel:   rel,
			Ext:   ext,
			Mtime: info.ModTime().Unix(),
			Size:  info.Size(),
		})
		return nil
	})
	return files, err
}

// statFile resolves symlinks to their target. A dangling link is still
// returned so the reader reports it.
func statFile(path string, d fs.DirEntry) (fs.FileInfo, bool) {
	if d.Type()&fs.ModeSymlink != 0 {
		target, err := os.Stat(path)
		if err == nil {
			return target, target.Mode().IsRegular()
		}
	}
	info, err := d.Info()
	return info, err == nil
}
