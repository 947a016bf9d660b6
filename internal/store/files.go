package store

import (
	"database/sql"
	"strings"
)

// FileRow is one cached line count.
type FileRow struct {
	Path  string
	Root  string
	Rel   string
	Ext   string
	Lines int
	Mtime int64
	Size  int64
}

// CachedLines returns the stored count for path if its mtime and size
// still match.
func (d *DB) CachedLines(path string, mtime, size int64) (int, bool, error) {
	var lines int
	var m, s int64
	err := d.db.QueryRow(
		"SELECT lines, mtime, size FROM files WHERE path = ?", path,
	).Scan(&lines, &m, &s)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if m != mtime || s != size {
		return 0, false, nil
	}
	return lines, true, nil
}

func (d *DB) PutFile(r FileRow) error {
	_, err := d.db.Exec(
		`INSERT OR REPLACE INTO files (path, root, rel, ext, lines, mtime, size)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Path, r.Root, r.Rel, r.Ext, r.Lines, r.Mtime, r.Size,
	)
	return err
}

// PruneFiles deletes rows under root whose path is not in seen.
func (d *DB) PruneFiles(root string, seen map[string]struct{}) (int, error) {
	rows, err := d.db.Query("SELECT path FROM files WHERE root = ?", root)
	if err != nil {
		return 0, err
	}
	var stale []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			rows.Close()
			return 0, err
		}
		if _, ok := seen[p]; !ok {
			stale = append(stale, p)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}
	if len(stale) == 0 {
		return 0, nil
	}

	tx, err := d.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()
	for _, p := range stale {
		if _, err := tx.Exec("DELETE FROM files WHERE path = ?", p); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(stale), nil
}

func (d *DB) FileCount(root string) (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM files WHERE root = ?", root).Scan(&n)
	return n, err
}

// FileQuery filters ListFiles. Empty fields match everything.
type FileQuery struct {
	Root  string
	Ext   string
	Match string // case-insensitive substring of rel
	Limit int
}

// ListFiles returns cached rows ordered by line count, largest first.
func (d *DB) ListFiles(q FileQuery) ([]FileRow, error) {
	var conditions []string
	var args []interface{}

	if q.Root != "" {
		conditions = append(conditions, "root = ?")
		args = append(args, q.Root)
	}
	if q.Ext != "" {
		conditions = append(conditions, "ext = ?")
		args = append(args, q.Ext)
	}
	if q.Match != "" {
		conditions = append(conditions, "LOWER(rel) LIKE ? ESCAPE '\\'")
		args = append(args, "%"+escapeLike(strings.ToLower(q.Match))+"%")
	}

	query := "SELECT path, root, rel, ext, lines, mtime, size FROM files"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY lines DESC, rel ASC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FileRow
	for rows.Next() {
		var r FileRow
		if err := rows.Scan(&r.Path, &r.Root, &r.Rel, &r.Ext, &r.Lines, &r.Mtime, &r.Size); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetFile looks a row up by root and relative path. It returns nil when absent.
func (d *DB) GetFile(root, rel string) (*FileRow, error) {
	var r FileRow
	err := d.db.QueryRow(
		"SELECT path, root, rel, ext, lines, mtime, size FROM files WHERE root = ? AND rel = ?",
		root, rel,
	).Scan(&r.Path, &r.Root, &r.Rel, &r.Ext, &r.Lines, &r.Mtime, &r.Size)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
