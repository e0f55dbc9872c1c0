// Package tui renders a running control loop in the terminal.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/armctl/internal/joint"
	"github.com/san-kum/armctl/internal/trajectory"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

const historyLen = 240

// StreamObserver forwards loop samples into the TUI. Slow frames are
// dropped rather than stalling the loop.
type StreamObserver struct {
	ch chan joint.Sample
}

func NewStreamObserver() *StreamObserver {
	return &StreamObserver{ch: make(chan joint.Sample, 64)}
}

func (o *StreamObserver) OnTick(s joint.Sample) {
	select {
	case o.ch <- s:
	default:
	}
}

// Close signals the TUI that the run ended.
func (o *StreamObserver) Close() {
	close(o.ch)
}

type sampleMsg joint.Sample

type finishedMsg struct{}

type Model struct {
	traj    trajectory.Trajectory
	samples <-chan joint.Sample
	latest  joint.Sample
	history [][]float64
	width   int
	done    bool
	started bool
}

func NewModel(traj trajectory.Trajectory, obs *StreamObserver) Model {
	return Model{
		traj:    traj,
		samples: obs.ch,
		history: make([][]float64, traj.Dim()),
		width:   80,
	}
}

func (m Model) Init() tea.Cmd {
	return m.waitForSample()
}

func (m Model) waitForSample() tea.Cmd {
	return func() tea.Msg {
		s, ok := <-m.samples
		if !ok {
			return finishedMsg{}
		}
		return sampleMsg(s)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case sampleMsg:
		m.latest = joint.Sample(msg)
		m.started = true
		for j := range m.history {
			if j < len(m.latest.Position) {
				m.history[j] = append(m.history[j], m.latest.Position[j])
				if len(m.history[j]) > historyLen {
					m.history[j] = m.history[j][1:]
				}
			}
		}
		return m, m.waitForSample()
	case finishedMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(cyan.Render("armctl live"))
	b.WriteString(dim.Render(fmt.Sprintf("  t=%.3fs", m.latest.T)))
	b.WriteString("\n\n")

	if !m.started {
		b.WriteString(dim.Render("waiting for first sample..."))
		b.WriteString("\n")
		return b.String()
	}

	desired := m.traj.At(m.latest.T)
	for j := range m.latest.Position {
		line := fmt.Sprintf("joint %d  q=%+.3f  q*=%+.3f  dq=%+.3f  tau=%+.3f",
			j, m.latest.Position[j], desired.Position[j],
			m.latest.Velocity[j], m.latest.Torque[j])
		if err := desired.Position[j] - m.latest.Position[j]; err > 0.05 || err < -0.05 {
			b.WriteString(yellow.Render(line))
		} else {
			b.WriteString(green.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for j, h := range m.history {
		if len(h) < 2 {
			continue
		}
		plotWidth := m.width - 12
		if plotWidth > historyLen {
			plotWidth = historyLen
		}
		if plotWidth < 20 {
			plotWidth = 20
		}
		graph := asciigraph.Plot(h,
			asciigraph.Height(5),
			asciigraph.Width(plotWidth),
			asciigraph.Caption(fmt.Sprintf("joint %d position", j)),
		)
		b.WriteString(graph)
		b.WriteString("\n\n")
	}

	b.WriteString(dim.Render("q to quit"))
	b.WriteString("\n")
	return b.String()
}

// Run blocks until the stream closes or the user quits.
func Run(traj trajectory.Trajectory, obs *StreamObserver) error {
	p := tea.NewProgram(NewModel(traj, obs))
	_, err := p.Run()
	return err
}
