// Package ui renders batch progress in the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"vecsmith/internal/driver"
)

// visibleRows caps the program list; older finished rows scroll away.
const visibleRows = 12

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	prog    progress.Model
	items   []programItem
	active  []int
	width   int
	done    bool
	failed  int
}

type programItem struct {
	name   string
	status string
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders batch progress.
// names holds the output file of each program, indexed like Event.Index.
func NewProgressModel(title string, names []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]programItem, len(names))
	for i, name := range names {
		items[i] = programItem{name: name, status: "queued"}
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s (%d/%d)", m.title, m.finished(), len(m.items))
	if m.failed > 0 {
		header = fmt.Sprintf("%s, %d failed", header, m.failed)
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 12
	nameWidth := max(m.width-statusWidth-4, 20)
	for _, idx := range m.rows() {
		item := m.items[idx]
		status := styleStatus(item.status).Render(fmt.Sprintf("%12s", item.status))
		fmt.Fprintf(&b, "  %s %s\n", status, truncate(item.name, nameWidth))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

// rows returns the indices to draw: the most recently touched programs, in
// program order.
func (m *progressModel) rows() []int {
	if len(m.items) <= visibleRows {
		out := make([]int, len(m.items))
		for i := range out {
			out[i] = i
		}
		return out
	}
	recent := m.active
	if len(recent) > visibleRows {
		recent = recent[len(recent)-visibleRows:]
	}
	return recent
}

func (m *progressModel) finished() int {
	n := 0
	for _, item := range m.items {
		if isFinal(item.status) {
			n++
		}
	}
	return n
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	if ev.Index < 0 || ev.Index >= len(m.items) {
		return nil
	}
	label := statusLabel(ev.Kind)
	if label == "" {
		return nil
	}
	m.items[ev.Index].status = label
	if ev.Kind == driver.EventFailed {
		m.failed++
	}
	if ev.Kind == driver.EventStarted {
		m.active = append(m.active, ev.Index)
	}
	return m.prog.SetPercent(float64(m.finished()) / float64(len(m.items)))
}

func statusLabel(kind driver.EventKind) string {
	switch kind {
	case driver.EventStarted:
		return "generating"
	case driver.EventGenerated:
		return "written"
	case driver.EventCached:
		return "cached"
	case driver.EventFailed:
		return "error"
	default:
		return ""
	}
}

func isFinal(status string) bool {
	return status == "written" || status == "cached" || status == "error"
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "written", "cached":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "generating":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
