package engine

import (
	"fmt"
	"time"
)

// Flow toggles between the menu and a round in progress.
type Flow struct {
	screen Screen
	game   *Game
}

func NewFlow(rules Rules, rnd RandomSource) (*Flow, error) {
	g, err := NewGame(rules, rnd)
	if err != nil {
		return nil, err
	}
	return &Flow{screen: ScreenMenu, game: g}, nil
}

func (f *Flow) Screen() Screen { return f.screen }
func (f *Flow) Game() *Game    { return f.game }

// Start leaves the menu (or abandons the current round) and begins a fresh one.
func (f *Flow) Start(now time.Time) []Event {
	f.screen = ScreenPlaying
	return f.game.Start(now)
}

func (f *Flow) ReturnToMenu() []Event {
	if f.screen == ScreenMenu {
		return nil
	}
	f.screen = ScreenMenu
	return []Event{{Type: EvtReturnedToMenu, Index: -1, Value: f.game.Score()}}
}

func (f *Flow) Tick(now time.Time) []Event {
	if f.screen != ScreenPlaying {
		return nil
	}
	return f.game.Tick(now)
}

// Click forwards to the game. Once the round is over any click goes back to the menu.
func (f *Flow) Click(p Point, now time.Time) []Event {
	if f.screen != ScreenPlaying {
		return nil
	}
	if f.game.GameOver() {
		return f.ReturnToMenu()
	}
	return f.game.HandleClick(p, now)
}

func (f *Flow) ClickIndex(i int, now time.Time) []Event {
	if f.screen != ScreenPlaying {
		return nil
	}
	if f.game.GameOver() {
		return f.ReturnToMenu()
	}
	return f.game.ClickPanel(i, now)
}

func (f *Flow) Apply(cmd Command, now time.Time) ([]Event, error) {
	switch cmd.Type {
	case CmdStartRound:
		return f.Start(now), nil
	case CmdClickPanel:
		return f.ClickIndex(cmd.Index, now), nil
	case CmdClickPoint:
		return f.Click(cmd.Point, now), nil
	case CmdReturnToMenu:
		return f.ReturnToMenu(), nil
	case CmdTick:
		return f.Tick(now), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCommand, cmd.Type)
	}
}

func (f *Flow) Snapshot(now time.Time) State {
	s := f.game.Snapshot(now)
	s.Screen = f.screen
	return s
}
