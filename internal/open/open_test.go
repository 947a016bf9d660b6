package open

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/moodmelody/melodystats/internal/store"
)

func TestEditorCommand(t *testing.T) {
	cases := []struct {
		editor string
		want   []string
	}{
		{"nvim", []string{"nvim", "+7", "/r/a.py"}},
		{"code", []string{"code", "--goto", "/r/a.py:7"}},
		{"less", []string{"less", "+7", "/r/a.py"}},
		{"emacs", []string{"emacs", "/r/a.py"}},
	}
	for _, tc := range cases {
		cmd := editorCommand(tc.editor, "/r/a.py", 7)
		if !reflect.DeepEqual(cmd.Args, tc.want) {
			t.Errorf("%s: args=%v want %v", tc.editor, cmd.Args, tc.want)
		}
	}
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	onDisk := filepath.Join(root, "scripts", "gen.py")
	if err := os.MkdirAll(filepath.Dir(onDisk), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(onDisk, []byte("x\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	db, err := store.OpenDB(filepath.Join(t.TempDir(), "o.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	absRoot, _ := filepath.Abs(root)
	if err := db.PutFile(store.FileRow{Path: "/cached/App.tsx", Root: absRoot, Rel: "App.tsx", Ext: ".tsx"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := Resolve(db, root, "App.tsx")
	if err != nil || got != "/cached/App.tsx" {
		t.Fatalf("cached: %q err=%v", got, err)
	}
	got, err = Resolve(db, root, "scripts/gen.py")
	if err != nil || got != filepath.Join(absRoot, "scripts", "gen.py") {
		t.Fatalf("on disk: %q err=%v", got, err)
	}
	if _, err := Resolve(nil, root, "missing.ts"); err == nil {
		t.Fatalf("expected not found")
	}
}
