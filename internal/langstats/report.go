package langstats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
)

// FileLineRecord is one counted file.
type FileLineRecord struct {
	Path  string `json:"path"`
	Lines int    `json:"lines"`
	Ext   string `json:"ext"`
}

// ExtensionStat is the rollup for one extension.
type ExtensionStat struct {
	Lines   int `json:"lines"`
	Percent int `json:"percent"`
}

// Report is the document written to language_stats.json.
type Report struct {
	Files       []FileLineRecord         `json:"files"`
	ByExtension map[string]ExtensionStat `json:"by_extension"`
	TotalLines  int                      `json:"total_lines"`
}

func newReport() *Report {
	return &Report{
		Files:       []FileLineRecord{},
		ByExtension: map[string]ExtensionStat{},
	}
}

func (r *Report) add(rec FileLineRecord) {
	r.Files = append(r.Files, rec)
	r.TotalLines += rec.Lines
}

// rollup recomputes ByExtension from Files.
func (r *Report) rollup() {
	counts := make(map[string]int)
	for _, f := range r.Files {
		counts[f.Ext] += f.Lines
	}
	r.ByExtension = make(map[string]ExtensionStat, len(counts))
	for ext, n := range counts {
		r.ByExtension[ext] = ExtensionStat{Lines: n, Percent: percent(n, r.TotalLines)}
	}
}

// percent rounds half to even, so 12.5 becomes 12.
func percent(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.RoundToEven(float64(n) / float64(total) * 100))
}

// Extensions returns the report's extensions, most lines first.
func (r *Report) Extensions() []string {
	exts := make([]string, 0, len(r.ByExtension))
	for ext := range r.ByExtension {
		exts = append(exts, ext)
	}
	sort.Slice(exts, func(i, j int) bool {
		a, b := r.ByExtension[exts[i]], r.ByExtension[exts[j]]
		if a.Lines != b.Lines {
			return a.Lines > b.Lines
		}
		return exts[i] < exts[j]
	})
	return exts
}

// Write stores the report as indented JSON, creating parent directories.
func Write(path string, r *Report) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// Read loads a report previously written by Write.
func Read(path string) (*Report, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r := newReport()
	if err := json.Unmarshal(b, r); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", path, err)
	}
	return r, nil
}
