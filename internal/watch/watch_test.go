package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/moodmelody/melodystats/internal/scan"
)

var filter = scan.Filter{
	ExcludeDirs: []string{"node_modules"},
	Extensions:  []string{".py", ".ts"},
}

func TestRelevant(t *testing.T) {
	root := t.TempDir()
	w := &Watcher{Root: root, Filter: filter}
	cases := []struct {
		name string
		op   fsnotify.Op
		want bool
	}{
		{"a.py", fsnotify.Write, true},
		{"a.py", fsnotify.Chmod, false},
		{"notes.md", fsnotify.Write, false},
		{"node_modules/x.ts", fsnotify.Create, false},
		{"olddir", fsnotify.Remove, true},
		{"olddir", fsnotify.Write, false},
	}
	for _, tc := range cases {
		ev := fsnotify.Event{Name: filepath.Join(root, filepath.FromSlash(tc.name)), Op: tc.op}
		if got := w.relevant(ev); got != tc.want {
			t.Errorf("relevant(%s %s)=%v want %v", tc.name, tc.op, got, tc.want)
		}
	}
}

func TestRunDebouncesChanges(t *testing.T) {
	root := t.TempDir()
	w, err := New(root, filter)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	w.Debounce = 50 * time.Millisecond

	calls := make(chan struct{}, 10)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func() error {
			calls <- struct{}{}
			return nil
		})
	}()

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(filepath.Join(root, "main.py"), []byte("print(1)\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	select {
	case <-calls:
	case <-time.After(5 * time.Second):
		t.Fatalf("onChange was not called")
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("run: %v", err)
	}
}
