package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlow(t *testing.T, values ...int) *Flow {
	t.Helper()
	f, err := NewFlow(DefaultRules(), valuesSource(values...))
	require.NoError(t, err)
	return f
}

func TestFlowStartsOnMenu(t *testing.T) {
	f := newFlow(t)
	assert.Equal(t, ScreenMenu, f.Screen())
	assert.Empty(t, f.Tick(at(time.Hour)))
	assert.Empty(t, f.ClickIndex(0, t0))
	assert.Empty(t, f.ReturnToMenu())
	assert.Equal(t, PhaseNotStarted, f.Game().Phase())
}

func TestFlowRoundTrip(t *testing.T) {
	f := newFlow(t, 7, 8, 1, 1, 1, 1, 1, 1, 1)

	events := f.Start(t0)
	require.True(t, ContainsEvent(events, EvtRoundStarted))
	require.Equal(t, ScreenPlaying, f.Screen())

	f.ClickIndex(0, t0)
	events = f.ClickIndex(1, t0)
	require.True(t, ContainsEvent(events, EvtMatched))

	events = f.ReturnToMenu()
	assert.Equal(t, []Event{{Type: EvtReturnedToMenu, Index: -1, Value: 15}}, events)
	assert.Equal(t, ScreenMenu, f.Screen())
}

func TestFlowClickAfterGameOverReturnsToMenu(t *testing.T) {
	f := newFlow(t)
	f.Start(t0)
	f.Tick(at(61 * time.Second))
	require.True(t, f.Game().GameOver())
	require.Equal(t, ScreenPlaying, f.Screen())

	events := f.Click(Point{X: 400, Y: 300}, at(62*time.Second))
	assert.True(t, ContainsEvent(events, EvtReturnedToMenu))
	assert.Equal(t, ScreenMenu, f.Screen())
}

func TestFlowApply(t *testing.T) {
	f := newFlow(t, 4, 5, 6, 7, 8, 9, 1, 2, 3)

	cases := []struct {
		name    string
		cmd     Command
		want    EventType
		wantErr error
	}{
		{name: "start", cmd: Command{Type: CmdStartRound}, want: EvtRoundStarted},
		{name: "click index", cmd: Command{Type: CmdClickPanel, Index: 2}, want: EvtPanelSelected},
		{name: "click point", cmd: Command{Type: CmdClickPoint, Point: Point{X: 250, Y: 150}}, want: EvtPanelSelected},
		{name: "menu", cmd: Command{Type: CmdReturnToMenu}, want: EvtReturnedToMenu},
		{name: "unknown", cmd: Command{Type: "Dance"}, wantErr: ErrUnsupportedCommand},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			events, err := f.Apply(tc.cmd, t0)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, ContainsEvent(events, tc.want), "events: %+v", events)
		})
	}
}

func TestFlowApplyTick(t *testing.T) {
	f := newFlow(t)
	f.Start(t0)

	events, err := f.Apply(Command{Type: CmdTick}, at(61*time.Second))
	require.NoError(t, err)
	assert.True(t, ContainsEvent(events, EvtGameOver))
}

func TestFlowSnapshotCarriesScreen(t *testing.T) {
	f := newFlow(t)
	assert.Equal(t, ScreenMenu, f.Snapshot(t0).Screen)
	f.Start(t0)
	assert.Equal(t, ScreenPlaying, f.Snapshot(t0).Screen)
}
