package engine

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// scriptedSource hands out panel values in order, then falls back to 1.
type scriptedSource struct {
	values []int
}

func valuesSource(values ...int) *scriptedSource {
	return &scriptedSource{values: values}
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[0]
	s.values = s.values[1:]
	return v - 1
}

func startedGame(t *testing.T, values ...int) *Game {
	t.Helper()
	g, err := NewGame(DefaultRules(), valuesSource(values...))
	require.NoError(t, err)
	g.Start(t0)
	return g
}

func panelValues(g *Game) []int {
	var out []int
	for _, p := range g.Panels() {
		out = append(out, p.Value)
	}
	return out
}

// requireSelectionConsistent checks that the selected flag and set membership agree.
func requireSelectionConsistent(t *testing.T, g *Game) {
	t.Helper()
	selected := g.Selected()
	for i, p := range g.Panels() {
		require.Equalf(t, p.Selected, slices.Contains(selected, i), "panel %d", i)
	}
}

func at(d time.Duration) time.Time { return t0.Add(d) }
