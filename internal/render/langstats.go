package render

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/moodmelody/melodystats/internal/langstats"
)

const barWidth = 30

// LanguageTable renders the per-extension rollup with a proportional bar.
func LanguageTable(r *langstats.Report, opts Options) string {
	w := &lineWriter{width: opts.Width}
	if len(r.ByExtension) == 0 {
		w.writeLine(opts.paint(colorDim, "(no matching files)"))
		return w.String()
	}

	exts := r.Extensions()
	extW := len("EXT")
	for _, ext := range exts {
		extW = max(extW, len(ext))
	}
	linesW := max(len("LINES"), len(humanize.Comma(int64(r.TotalLines))))

	header := fmt.Sprintf("%s  %s  %s", padRight("EXT", extW), padLeft("LINES", linesW), padLeft("%", 4))
	w.writeLine(opts.paint(colorHeader, header))

	for _, ext := range exts {
		st := r.ByExtension[ext]
		filled := 0
		if r.TotalLines > 0 {
			filled = st.Lines * barWidth / r.TotalLines
		}
		bar := opts.paint(colorBar, strings.Repeat("█", filled)) + strings.Repeat("·", barWidth-filled)
		w.writeLine(fmt.Sprintf("%s  %s  %s  %s",
			padRight(ext, extW),
			padLeft(humanize.Comma(int64(st.Lines)), linesW),
			padLeft(fmt.Sprintf("%d%%", st.Percent), 4),
			bar,
		))
	}

	w.writeLine(opts.paint(colorDim, fmt.Sprintf("%s  %s  %d files",
		padRight("total", extW),
		padLeft(humanize.Comma(int64(r.TotalLines)), linesW),
		len(r.Files),
	)))
	return w.String()
}
