package render

import (
	"fmt"
	"strings"
)

// FilePreview renders file content with line numbers. Blank lines are
// dimmed and carry no number, matching how they are left out of counts.
// It returns the rendered text, the number of content lines and the 0-based
// rendered row of file line hitLine (-1 when hitLine is not positive).
func FilePreview(rel string, content []byte, hitLine int, opts Options) (string, int, int) {
	w := &lineWriter{width: opts.Width}
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")

	w.writeLine(opts.paint(colorDim, fmt.Sprintf("--- %s ---", rel)))
	counted := 0
	hitRow := -1
	for i, l := range lines {
		if i+1 == hitLine {
			hitRow = w.lines
		}
		if strings.TrimSpace(l) == "" {
			w.writeLine(opts.paint(colorDim, "     │"))
			continue
		}
		counted++
		l = strings.ReplaceAll(l, "\t", "    ")
		if opts.Color {
			l = highlightKeywords(l, opts.Query)
		}
		w.writeLine(fmt.Sprintf("%s %s", opts.paint(colorDim, fmt.Sprintf("%4d │", counted)), l))
	}
	return w.String(), counted, hitRow
}
