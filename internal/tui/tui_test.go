package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/moodmelody/melodystats/internal/search"
)

func testModel() model {
	m := initialModel(nil, search.Options{})
	m.results = []search.Result{
		{Path: "/r/App.tsx", Rel: "App.tsx", Ext: ".tsx", Lines: 300},
		{Path: "/r/services/api.ts", Rel: "services/api.ts", Ext: ".ts", Lines: 40},
		{Path: "/r/scripts/stats.py", Rel: "scripts/stats.py", Ext: ".py", Lines: 12},
	}
	m.width, m.height, m.ready = 120, 40, true
	return m
}

func TestCursorMovement(t *testing.T) {
	m := testModel()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(model)
	if m.cursor != 1 {
		t.Fatalf("cursor=%d after down", m.cursor)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.(model).Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(model)
	if m.cursor != 2 {
		t.Fatalf("cursor=%d should stop at last item", m.cursor)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if next.(model).cursor != 1 {
		t.Fatalf("cursor=%d after up", next.(model).cursor)
	}
}

func TestEnterChoosesForCopy(t *testing.T) {
	m := testModel()
	m.cursor = 1
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	fm := next.(model)
	if fm.chosen == nil || fm.chosen.Rel != "services/api.ts" || fm.action != actionCopy {
		t.Fatalf("chosen=%+v action=%v", fm.chosen, fm.action)
	}
	if cmd == nil || !fm.quitting {
		t.Fatalf("expected quit")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	if next.(model).action != actionOpen {
		t.Fatalf("ctrl+o should choose open")
	}
}

func TestStaleSearchResultIgnored(t *testing.T) {
	m := testModel()
	m.query = "api"
	next, _ := m.Update(searchResultMsg{query: "ap", results: nil})
	if len(next.(model).results) != 3 {
		t.Fatalf("stale result replaced list")
	}
	next, _ = m.Update(searchResultMsg{query: "api", results: m.results[1:2]})
	if got := next.(model).results; len(got) != 1 || got[0].Rel != "services/api.ts" {
		t.Fatalf("results=%+v", got)
	}
}

func TestFormatResultLine(t *testing.T) {
	r := search.Result{Rel: "services/geminiService.ts", Ext: ".ts", Lines: 80, LineNum: 4, Snippet: "const >>>model<<< = x"}
	lines := formatResultLine(r, 60, true)
	if len(lines) != 2 {
		t.Fatalf("lines=%q", lines)
	}
	if !strings.Contains(lines[0], "geminiService.ts") || !strings.Contains(lines[0], "80") {
		t.Errorf("line1=%q", lines[0])
	}
	if !strings.Contains(lines[1], "4: const model = x") {
		t.Errorf("line2=%q", lines[1])
	}

	plain := formatResultLine(search.Result{Rel: "a/b/c.py", Ext: ".py", Lines: 1}, 60, false)
	if !strings.HasPrefix(plain[0], "  ") || !strings.Contains(plain[1], "a/b") {
		t.Errorf("plain=%q", plain)
	}
}

func TestAdjustListScroll(t *testing.T) {
	m := testModel()
	m.cursor = 2
	m.adjustListScroll(4) // two items visible
	if m.listOffset != 1 {
		t.Fatalf("offset=%d", m.listOffset)
	}
	m.cursor = 0
	m.adjustListScroll(4)
	if m.listOffset != 0 {
		t.Fatalf("offset=%d", m.listOffset)
	}
}
