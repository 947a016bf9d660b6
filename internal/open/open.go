package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/moodmelody/melodystats/internal/linecount"
	"github.com/moodmelody/melodystats/internal/store"
)

// Resolve finds the file for target, which may be a path relative to root
// as stored in the cache or a path on disk. Counted files win.
func Resolve(db *store.DB, root, target string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	if db != nil {
		row, err := db.GetFile(absRoot, filepath.ToSlash(filepath.Clean(target)))
		if err != nil {
			return "", fmt.Errorf("lookup %s: %w", target, err)
		}
		if row != nil {
			return row.Path, nil
		}
	}
	candidates := []string{target}
	if !filepath.IsAbs(target) {
		candidates = append(candidates, filepath.Join(absRoot, target))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", fmt.Errorf("file not found: %s", target)
}

// OpenFile opens path in $EDITOR (less when unset) at its first non-blank line.
func OpenFile(path string) error {
	lineNum, err := linecount.FirstContentLine(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "less"
	}

	cmd := editorCommand(editor, path, lineNum)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func editorCommand(editor, filePath string, lineNum int) *exec.Cmd {
	switch {
	case strings.Contains(editor, "vim") || strings.Contains(editor, "nvim"):
		return exec.Command(editor, fmt.Sprintf("+%d", lineNum), filePath)
	case strings.Contains(editor, "code"):
		return exec.Command(editor, "--goto", filePath+":"+strconv.Itoa(lineNum))
	case strings.Contains(editor, "less"), strings.Contains(editor, "nano"):
		return exec.Command(editor, "+"+strconv.Itoa(lineNum), filePath)
	default:
		return exec.Command(editor, filePath)
	}
}
