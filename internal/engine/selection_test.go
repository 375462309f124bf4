package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPanels(values ...int) []Panel {
	panels := make([]Panel, len(values))
	for i, v := range values {
		panels[i] = Panel{Value: v, Expiry: t0.Add(15 * time.Second)}
	}
	return panels
}

func TestSelectionToggleKeepsFlagsAndMembershipInSync(t *testing.T) {
	panels := newPanels(4, 5, 6)
	s := NewSelection(panels)

	s.Toggle(2)
	s.Toggle(0)
	require.Equal(t, []int{2, 0}, s.Indices())
	require.True(t, panels[0].Selected)
	require.True(t, panels[2].Selected)
	require.False(t, panels[1].Selected)

	s.Toggle(2)
	assert.Equal(t, []int{0}, s.Indices())
	assert.False(t, panels[2].Selected)
	assert.False(t, s.Contains(2))
	assert.True(t, s.Contains(0))
}

func TestSelectionToggleTwiceLeavesNoDuplicate(t *testing.T) {
	panels := newPanels(1, 2)
	s := NewSelection(panels)

	for i := 0; i < 5; i++ {
		s.Toggle(1)
	}
	assert.Equal(t, []int{1}, s.Indices())
	assert.Equal(t, 1, s.Len())
}

func TestSelectionSum(t *testing.T) {
	panels := newPanels(7, 8, 9)
	s := NewSelection(panels)
	assert.Zero(t, s.Sum(), "empty selection sums to 0")

	s.Toggle(0)
	s.Toggle(2)
	assert.Equal(t, 16, s.Sum())
}

func TestSelectionClear(t *testing.T) {
	panels := newPanels(1, 2, 3)
	s := NewSelection(panels)
	s.Toggle(0)
	s.Toggle(1)

	s.Clear()
	assert.Zero(t, s.Len())
	for i, p := range panels {
		assert.Falsef(t, p.Selected, "panel %d", i)
	}
}

func TestSelectionRemoveLeavesPanelAlone(t *testing.T) {
	panels := newPanels(1, 2)
	s := NewSelection(panels)
	s.Toggle(0)

	require.True(t, s.Remove(0))
	require.False(t, s.Remove(0))
	assert.True(t, panels[0].Selected, "Remove does not clear the flag")
}
