package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bernhq/meshkube/internal/status"
)

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune{r}})
}

func TestUpdate_QuitKeys(t *testing.T) {
	m := NewModel(nil, "meshroom")

	_, cmd := m.Update(keyMsg('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyCtrlC}))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestUpdate_RefreshKey(t *testing.T) {
	m := NewModel(nil, "meshroom")

	next, cmd := m.Update(keyMsg('r'))
	assert.NotNil(t, cmd)
	assert.True(t, next.(Model).refreshing)

	// A second refresh while one is in flight is ignored.
	_, cmd = next.Update(keyMsg('r'))
	assert.Nil(t, cmd)
}

func TestUpdate_SnapshotMsg(t *testing.T) {
	m := NewModel(nil, "meshroom")
	m.refreshing = true

	snap := &status.Snapshot{Namespace: "meshroom"}
	next, _ := m.Update(snapshotMsg{snap: snap})

	got := next.(Model)
	assert.False(t, got.refreshing)
	assert.Equal(t, snap, got.snap)
	assert.NoError(t, got.err)
	assert.False(t, got.lastRefresh.IsZero())
}

func TestUpdate_SnapshotError_KeepsLastSnapshot(t *testing.T) {
	m := NewModel(nil, "meshroom")
	m.snap = &status.Snapshot{Namespace: "meshroom"}

	next, _ := m.Update(snapshotMsg{err: errors.New("unreachable")})
	got := next.(Model)
	assert.Error(t, got.err)
	assert.NotNil(t, got.snap)
}

func TestView(t *testing.T) {
	m := NewModel(nil, "meshroom")
	assert.Contains(t, m.View(), "loading...")

	m.err = errors.New("connection refused")
	assert.Contains(t, m.View(), "status unavailable")

	m.err = nil
	m.snap = &status.Snapshot{
		Namespace: "meshroom",
		Nodes:     []status.NodeInfo{{Name: "docker-desktop", Ready: true}},
		Pods: []status.PodInfo{
			{Name: "meshroom-worker-abc", Phase: "Running"},
			{Name: "meshroom-worker-def", Phase: "Pending"},
		},
	}
	out := m.View()
	assert.Contains(t, out, "docker-desktop")
	assert.Contains(t, out, "q quit")
	assert.Contains(t, out, "1/1 nodes ready")
	assert.Contains(t, out, "1 pods running")
}
