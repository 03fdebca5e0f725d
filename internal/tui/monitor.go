// Package tui is the terminal monitoring dashboard. It refreshes the
// status snapshot on a timer and renders it with the shared report styles.
package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bernhq/meshkube/internal/status"
	"github.com/bernhq/meshkube/internal/ui"
)

const refreshInterval = 5 * time.Second

type snapshotMsg struct {
	snap *status.Snapshot
	err  error
}

type tickMsg time.Time

// Model is the dashboard state.
type Model struct {
	verifier    *status.Verifier
	clusterName string

	snap        *status.Snapshot
	err         error
	lastRefresh time.Time
	refreshing  bool
}

// NewModel wires a dashboard over the given verifier.
func NewModel(verifier *status.Verifier, clusterName string) Model {
	return Model{verifier: verifier, clusterName: clusterName}
}

// Run starts the dashboard and blocks until the operator quits.
func Run(ctx context.Context, verifier *status.Verifier, clusterName string) error {
	program := tea.NewProgram(NewModel(verifier, clusterName), tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("monitor exited: %w", err)
	}
	return nil
}

// Init kicks off the first refresh and the timer.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), tick())
}

// Update handles refresh results, timer ticks, and keys (q quit, r refresh).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			if m.refreshing {
				return m, nil
			}
			m.refreshing = true
			return m, m.fetch()
		}

	case tickMsg:
		if m.refreshing {
			return m, tick()
		}
		m.refreshing = true
		return m, tea.Batch(m.fetch(), tick())

	case snapshotMsg:
		m.refreshing = false
		m.err = msg.err
		if msg.err == nil {
			m.snap = msg.snap
			m.lastRefresh = time.Now()
		}
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	header := ui.TitleStyle.Render(fmt.Sprintf("meshkube monitor: %s", m.clusterName))
	out := "\n  " + header + "\n\n"

	switch {
	case m.err != nil:
		out += "  " + ui.FailedStyle.Render("status unavailable: "+m.err.Error()) + "\n"
	case m.snap == nil:
		out += "  " + ui.DimStyle.Render("loading...") + "\n"
	default:
		out += status.Render(m.snap, true)
	}

	footer := "q quit · r refresh"
	if m.snap != nil {
		footer = fmt.Sprintf("%d/%d nodes ready · %d pods running · %s",
			m.snap.ReadyNodes(), len(m.snap.Nodes), m.snap.RunningPods(), footer)
	}
	if !m.lastRefresh.IsZero() {
		footer += fmt.Sprintf(" · updated %s ago", time.Since(m.lastRefresh).Round(time.Second))
	}
	out += "\n  " + ui.DimStyle.Render(footer) + "\n"
	return out
}

func (m Model) fetch() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		snap, err := m.verifier.Snapshot(ctx)
		return snapshotMsg{snap: snap, err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
