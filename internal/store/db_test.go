package store

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "nested", "mstats.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestFileCacheRoundTrip(t *testing.T) {
	db := openTestDB(t)

	row := FileRow{Path: "/r/a.py", Root: "/r", Rel: "a.py", Ext: ".py", Lines: 12, Mtime: 100, Size: 50}
	if err := db.PutFile(row); err != nil {
		t.Fatalf("put: %v", err)
	}

	lines, ok, err := db.CachedLines("/r/a.py", 100, 50)
	if err != nil || !ok || lines != 12 {
		t.Fatalf("hit: lines=%d ok=%v err=%v", lines, ok, err)
	}
	if _, ok, _ := db.CachedLines("/r/a.py", 101, 50); ok {
		t.Fatalf("changed mtime should miss")
	}
	if _, ok, _ := db.CachedLines("/r/b.py", 100, 50); ok {
		t.Fatalf("unknown path should miss")
	}

	got, err := db.GetFile("/r", "a.py")
	if err != nil || got == nil || got.Lines != 12 {
		t.Fatalf("get: %+v err=%v", got, err)
	}
	if missing, err := db.GetFile("/r", "zzz.py"); err != nil || missing != nil {
		t.Fatalf("expected nil row, got %+v err=%v", missing, err)
	}
}

func TestListFilesAndPrune(t *testing.T) {
	db := openTestDB(t)
	rows := []FileRow{
		{Path: "/r/src/app.ts", Root: "/r", Rel: "src/app.ts", Ext: ".ts", Lines: 40},
		{Path: "/r/src/App.tsx", Root: "/r", Rel: "src/App.tsx", Ext: ".tsx", Lines: 90},
		{Path: "/r/scripts/run_1.py", Root: "/r", Rel: "scripts/run_1.py", Ext: ".py", Lines: 10},
		{Path: "/other/x.ts", Root: "/other", Rel: "x.ts", Ext: ".ts", Lines: 500},
	}
	for _, r := range rows {
		if err := db.PutFile(r); err != nil {
			t.Fatalf("put: %v", err)
		}
	}

	all, err := db.ListFiles(FileQuery{Root: "/r"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].Rel != "src/App.tsx" {
		t.Fatalf("unexpected order: %+v", all)
	}

	byExt, _ := db.ListFiles(FileQuery{Root: "/r", Ext: ".ts"})
	if len(byExt) != 1 || byExt[0].Rel != "src/app.ts" {
		t.Fatalf("ext filter: %+v", byExt)
	}

	matched, _ := db.ListFiles(FileQuery{Root: "/r", Match: "APP"})
	if len(matched) != 2 {
		t.Fatalf("match filter: %+v", matched)
	}
	// underscore is literal, not a wildcard
	literal, _ := db.ListFiles(FileQuery{Root: "/r", Match: "n_1"})
	if len(literal) != 1 {
		t.Fatalf("literal match: %+v", literal)
	}

	limited, _ := db.ListFiles(FileQuery{Limit: 1})
	if len(limited) != 1 || limited[0].Lines != 500 {
		t.Fatalf("limit: %+v", limited)
	}

	pruned, err := db.PruneFiles("/r", map[string]struct{}{"/r/src/app.ts": {}})
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if pruned != 2 {
		t.Fatalf("pruned=%d want 2", pruned)
	}
	if n, _ := db.FileCount("/r"); n != 1 {
		t.Fatalf("remaining=%d", n)
	}
	if n, _ := db.FileCount("/other"); n != 1 {
		t.Fatalf("other root touched: %d", n)
	}
}

func TestSchemaVersionInvalidatesCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mstats.db")
	db, err := OpenDB(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.PutFile(FileRow{Path: "/r/a.js", Root: "/r", Rel: "a.js", Ext: ".js", Lines: 3, Mtime: 9, Size: 9}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := db.Raw().Exec("UPDATE meta SET value = '0' WHERE key = 'schema_version'"); err != nil {
		t.Fatalf("downgrade: %v", err)
	}
	db.Close()

	db, err = OpenDB(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	if _, ok, _ := db.CachedLines("/r/a.js", 9, 9); ok {
		t.Fatalf("cache should be invalidated after a schema bump")
	}
}

func TestMoodRuns(t *testing.T) {
	db := openTestDB(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	id1, err := db.AddMoodRun(MoodRun{CreatedAt: base, Samples: 10, AvgIntensity: 0.4, TopMood: "calm"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(id1) != 36 {
		t.Fatalf("expected uuid run id, got %q", id1)
	}
	if _, err := db.AddMoodRun(MoodRun{RunID: "fixed", CreatedAt: base.Add(time.Hour), Samples: 20, AvgIntensity: 0.6, TopMood: "happy"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	runs, err := db.MoodRuns(0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 2 || runs[0].RunID != "fixed" || runs[1].RunID != id1 {
		t.Fatalf("unexpected runs: %+v", runs)
	}
	if !runs[0].CreatedAt.Equal(base.Add(time.Hour)) {
		t.Fatalf("created_at=%v", runs[0].CreatedAt)
	}
	if runs[1].SummaryJSON != "{}" {
		t.Fatalf("summary_json default=%q", runs[1].SummaryJSON)
	}

	latest, _ := db.MoodRuns(1)
	if len(latest) != 1 || latest[0].TopMood != "happy" {
		t.Fatalf("limit: %+v", latest)
	}
	if n, _ := db.MoodRunCount(); n != 2 {
		t.Fatalf("count=%d", n)
	}
}
