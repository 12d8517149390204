package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"vecsmith/internal/driver"
)

func newModel(n int) *progressModel {
	names := make([]string, n)
	for i := range names {
		names[i] = driver.FileName(uint64(i))
	}
	return NewProgressModel("batch", names, nil).(*progressModel)
}

func TestApplyEventTracksStatus(t *testing.T) {
	m := newModel(3)
	m.applyEvent(driver.Event{Kind: driver.EventStarted, Index: 0})
	m.applyEvent(driver.Event{Kind: driver.EventGenerated, Index: 0})
	m.applyEvent(driver.Event{Kind: driver.EventCached, Index: 1})
	m.applyEvent(driver.Event{Kind: driver.EventFailed, Index: 2})
	m.applyEvent(driver.Event{Kind: driver.EventGenerated, Index: 7})

	want := []string{"written", "cached", "error"}
	for i, w := range want {
		if m.items[i].status != w {
			t.Fatalf("item %d status %q, want %q", i, m.items[i].status, w)
		}
	}
	if m.finished() != 3 || m.failed != 1 {
		t.Fatalf("finished %d, failed %d", m.finished(), m.failed)
	}
}

func TestViewWindowsLargeBatches(t *testing.T) {
	m := newModel(40)
	for i := 0; i < 20; i++ {
		m.applyEvent(driver.Event{Kind: driver.EventStarted, Index: i})
	}
	if rows := m.rows(); len(rows) != visibleRows || rows[0] != 20-visibleRows {
		t.Fatalf("rows %v", rows)
	}
	_, cmd := m.Update(doneMsg{})
	if cmd == nil || !m.done {
		t.Fatalf("done message must quit")
	}
	view := m.View()
	if !strings.Contains(view, "done: batch (0/40)") {
		t.Fatalf("unexpected header:\n%s", view)
	}
	if strings.Count(view, "prog_") != visibleRows {
		t.Fatalf("expected %d rows:\n%s", visibleRows, view)
	}
}

func TestWindowResize(t *testing.T) {
	m := newModel(1)
	m.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	if m.width != 30 || m.prog.Width != 26 {
		t.Fatalf("width %d, bar %d", m.width, m.prog.Width)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("prog_123456.c", 8); runewidth.StringWidth(got) > 8 || !strings.HasSuffix(got, "...") {
		t.Fatalf("got %q", got)
	}
	if got := truncate("short", 20); got != "short" {
		t.Fatalf("got %q", got)
	}
}
