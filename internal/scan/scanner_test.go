package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel, body string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func TestWalkFiltersAndExcludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.ts", "a\n")
	writeFile(t, root, "components/Card.tsx", "b\n")
	writeFile(t, root, "scripts/report.py", "c\n")
	writeFile(t, root, "README.md", "d\n")
	writeFile(t, root, "node_modules/lib/index.js", "e\n")
	writeFile(t, root, "dist/bundle.js", "f\n")
	writeFile(t, root, "src/gen/api_gen.ts", "g\n")

	filter := Filter{
		ExcludeDirs:  []string{"node_modules", ".git", "dist"},
		ExcludeGlobs: []string{"**/*_gen.ts"},
		Extensions:   []string{".py", ".ts", ".tsx", ".js", ".jsx"},
	}
	files, err := Walk(root, filter)
	if err != nil {
		t.Fatalf("walk: %v", err)
	}

	got := map[string]string{}
	for _, f := range files {
		got[f.Rel] = f.Ext
	}
	want := map[string]string{
		"app.ts":              ".ts",
		"components/Card.tsx": ".tsx",
		"scripts/report.py":   ".py",
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for rel, ext := range want {
		if got[rel] != ext {
			t.Errorf("%s: ext=%q want %q", rel, got[rel], ext)
		}
	}
}

func TestWalkFollowsFileSymlinks(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	writeFile(t, root, "main.py", "a\n")
	writeFile(t, outside, "shared.py", "b\nc\n")
	writeFile(t, outside, "pkg.js/index.js", "d\n")

	links := map[string]string{
		"shared.py":   filepath.Join(outside, "shared.py"),
		"dangling.ts": filepath.Join(outside, "gone.ts"),
		"pkg.js":      filepath.Join(outside, "pkg.js"),
	}
	for name, target := range links {
		if err := os.Symlink(target, filepath.Join(root, name)); err != nil {
			t.Skipf("symlinks unsupported: %v", err)
		}
	}

	files, err := Walk(root, Filter{Extensions: []string{".py", ".ts", ".js"}})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	got := map[string]int64{}
	for _, f := range files {
		got[f.Rel] = f.Size
	}
	if len(got) != 3 {
		t.Fatalf("files=%v", got)
	}
	if got["shared.py"] != 4 {
		t.Errorf("shared.py size=%d, want target size 4", got["shared.py"])
	}
	if _, ok := got["dangling.ts"]; !ok {
		t.Errorf("dangling link should be listed")
	}
	if _, ok := got["pkg.js"]; ok {
		t.Errorf("directory link should be skipped")
	}
}

func TestWalkMissingRoot(t *testing.T) {
	if _, err := Walk(filepath.Join(t.TempDir(), "missing"), Filter{}); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestMatchExtFirstWins(t *testing.T) {
	f := Filter{Extensions: []string{".ts", ".d.ts"}}
	ext, ok := f.MatchExt("types.d.ts")
	if !ok || ext != ".ts" {
		t.Fatalf("ext=%q ok=%v", ext, ok)
	}
	if _, ok := f.MatchExt("main.go"); ok {
		t.Fatalf("main.go should not match")
	}
}

func TestExcluded(t *testing.T) {
	f := Filter{ExcludeDirs: []string{".git"}, ExcludeGlobs: []string{"vendor/**"}}
	cases := map[string]bool{
		".":                 false,
		"src/main.py":       false,
		".git/config":       true,
		"a/.git/hooks/x.py": true,
		"vendor/pkg/a.js":   true,
		"src/vendor.js":     false,
	}
	for rel, want := range cases {
		if got := f.Excluded(rel); got != want {
			t.Errorf("Excluded(%q)=%v want %v", rel, got, want)
		}
	}
}
