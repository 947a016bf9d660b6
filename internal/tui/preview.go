package tui

import (
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/moodmelody/melodystats/internal/render"
	"github.com/moodmelody/melodystats/internal/search"
)

// maxPreviewBytes caps how much of a file the preview loads.
const maxPreviewBytes = 512 * 1024

// previewRenderedMsg is sent when an async preview render completes.
type previewRenderedMsg struct {
	path    string
	content string
	hitRow  int
	err     error
}

// loadPreviewCmd returns a tea.Cmd that renders the file preview async.
func loadPreviewCmd(r search.Result, query string, width int) tea.Cmd {
	return func() tea.Msg {
		data, err := readHead(r.Path, maxPreviewBytes)
		if err != nil {
			return previewRenderedMsg{path: r.Path, err: err}
		}
		content, _, hitRow := render.FilePreview(r.Rel, data, r.LineNum, render.Options{
			Color: true,
			Width: width,
			Query: query,
		})
		return previewRenderedMsg{path: r.Path, content: content, hitRow: hitRow}
	}
}

func readHead(path string, limit int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	buf := make([]byte, limit)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	return buf[:n], nil
}

// newViewport creates a new viewport model with the given dimensions.
func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.Style = stylePanelBorder
	return vp
}
