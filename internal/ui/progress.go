// Package ui renders a compile run's progress as a Bubble Tea program,
// driven directly off pass.ProgressSink events rather than a separate
// event-bus type.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"soyc/internal/pass"
)

// passEvent is one ProgressSink callback, queued onto a channel so the
// Bubble Tea update loop (which must not block) can consume it.
type passEvent struct {
	name   pass.Name
	starts bool
	status pass.Status
}

// ChanProgressSink adapts pass.ProgressSink onto a channel a tea.Program
// can listen on. Close must be called once Run returns so the model's
// listen loop can terminate.
type ChanProgressSink struct {
	events chan passEvent
}

// NewChanProgressSink returns a sink with room for buffered events so
// PassManager.Run never blocks waiting on the UI goroutine.
func NewChanProgressSink() *ChanProgressSink {
	return &ChanProgressSink{events: make(chan passEvent, 64)}
}

func (s *ChanProgressSink) OnPassStart(name pass.Name) {
	s.events <- passEvent{name: name, starts: true}
}

func (s *ChanProgressSink) OnPassEnd(name pass.Name, status pass.Status) {
	s.events <- passEvent{name: name, status: status}
}

// Close signals the model's listen loop that no further events are coming.
func (s *ChanProgressSink) Close() { close(s.events) }

type passItem struct {
	name   pass.Name
	status string
}

type progressModel struct {
	title   string
	events  <-chan passEvent
	spinner spinner.Model
	prog    progress.Model
	order   []pass.Name
	items   map[pass.Name]*passItem
	width   int
	done    bool
	total   int
	ended   int
}

type eventMsg passEvent
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders pass-by-pass
// progress for a single PassManager.Run call. passNames is the full
// ordered pipeline (phase 1 then phase 2) so the view can show not-yet-
// started passes as queued instead of only discovering them as they fire.
func NewProgressModel(title string, passNames []pass.Name, sink *ChanProgressSink) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make(map[pass.Name]*passItem, len(passNames))
	for _, name := range passNames {
		items[name] = &passItem{name: name, status: "queued"}
	}
	return &progressModel{
		title:   title,
		events:  sink.events,
		spinner: sp,
		prog:    prog,
		order:   passNames,
		items:   items,
		width:   80,
		total:   len(passNames),
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(passEvent(msg))
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
	if len(m.order) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 12
	nameWidth := m.width - statusWidth - 4
	if nameWidth < 20 {
		nameWidth = 20
	}

	for _, name := range m.order {
		item := m.items[name]
		label := truncate(string(name), nameWidth)
		statusStyled := styleStatus(item.status).Render(fmt.Sprintf("%12s", item.status))
		b.WriteString(fmt.Sprintf("  %s %s\n", statusStyled, label))
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

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev passEvent) tea.Cmd {
	item, ok := m.items[ev.name]
	if !ok {
		return nil
	}
	if ev.starts {
		item.status = "running"
	} else {
		item.status = statusLabel(ev.status)
		m.ended++
	}
	if m.total == 0 {
		return nil
	}
	return m.prog.SetPercent(float64(m.ended) / float64(m.total))
}

func statusLabel(status pass.Status) string {
	switch status {
	case pass.StatusComplete:
		return "done"
	case pass.StatusStoppedEarly:
		return "stopped"
	case pass.StatusFailed:
		return "error"
	default:
		return ""
	}
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "done":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "stopped":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	case "running":
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
