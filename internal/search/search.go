package search

import (
	"bufio"
	"os"
	"strings"

	"github.com/moodmelody/melodystats/internal/store"
)

type Result struct {
	Path    string
	Rel     string
	Ext     string
	Lines   int
	LineNum int    // first content match, 0 when the path matched
	Snippet string // matched text wrapped in >>> <<<
}

type Options struct {
	Root  string
	Query string
	Ext   string // "" = all
	Limit int
}

const snippetContext = 30

// makeSnippet extracts a snippet around the first occurrence of query in text.
func makeSnippet(text, query string, contextChars int) string {
	lower := strings.ToLower(text)
	qLower := strings.ToLower(query)
	idx := strings.Index(lower, qLower)
	if idx < 0 || len(lower) != len(text) {
		// no match, or case folding changed byte offsets
		runes := []rune(text)
		if len(runes) > contextChars*2 {
			return string(runes[:contextChars*2]) + "..."
		}
		return text
	}
	runes := []rune(text)
	qRunes := []rune(text[idx : idx+len(qLower)])
	runePos := len([]rune(text[:idx]))
	start := max(runePos-contextChars, 0)
	end := min(runePos+len(qRunes)+contextChars, len(runes))
	prefix := ""
	suffix := ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(runes) {
		suffix = "..."
	}
	snippet := string(runes[start:runePos]) +
		">>>" + string(runes[runePos:runePos+len(qRunes)]) + "<<<" +
		string(runes[runePos+len(qRunes):end])
	return prefix + snippet + suffix
}

// ListAll returns counted files, largest first.
func ListAll(db *store.DB, opts Options) ([]Result, error) {
	rows, err := db.ListFiles(store.FileQuery{Root: opts.Root, Ext: opts.Ext, Limit: opts.Limit})
	if err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(rows))
	for _, r := range rows {
		results = append(results, fromRow(r))
	}
	return results, nil
}

// Search returns files whose path or content contains the query,
// case-insensitively. Path matches rank before content matches.
func Search(db *store.DB, opts Options) ([]Result, error) {
	if strings.TrimSpace(opts.Query) == "" {
		return ListAll(db, opts)
	}
	if opts.Limit <= 0 {
		opts.Limit = 100
	}

	rows, err := db.ListFiles(store.FileQuery{Root: opts.Root, Ext: opts.Ext})
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(opts.Query)
	var byPath, byContent []Result
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Rel), q) {
			byPath = append(byPath, fromRow(r))
			continue
		}
		if len(byPath)+len(byContent) >= opts.Limit {
			continue
		}
		lineNum, line, ok := grepFile(r.Path, q)
		if !ok {
			continue
		}
		res := fromRow(r)
		res.LineNum = lineNum
		res.Snippet = makeSnippet(strings.TrimSpace(line), opts.Query, snippetContext)
		byContent = append(byContent, res)
	}

	results := append(byPath, byContent...)
	if len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results, nil
}

func fromRow(r store.FileRow) Result {
	return Result{Path: r.Path, Rel: r.Rel, Ext: r.Ext, Lines: r.Lines}
}

// grepFile returns the first line containing the lowercased query.
func grepFile(path, lowerQuery string) (int, string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return 0, "", false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Text()
		if strings.Contains(strings.ToLower(line), lowerQuery) {
			return n, line, true
		}
	}
	return 0, "", false
}
