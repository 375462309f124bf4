package engine

import (
	"fmt"
	"slices"
	"time"
)

// Game owns one round: the panels, the selection over them, the round clock and the score.
// It is not safe for concurrent use; a single owner drives Start, Tick and the click methods.
type Game struct {
	rules     Rules
	layout    Layout
	rnd       RandomSource
	phase     Phase
	score     int
	panels    []Panel
	selection *Selection
	clock     RoundClock
}

func NewGame(rules Rules, rnd RandomSource) (*Game, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if rnd == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidRules)
	}
	return &Game{
		rules:     rules,
		layout:    rules.Layout.withGrid(rules.Rows, rules.Cols),
		rnd:       rnd,
		phase:     PhaseNotStarted,
		selection: NewSelection(nil),
		clock:     NewRoundClock(rules.RoundDuration),
	}, nil
}

// Start begins a fresh round from any phase: score 0, new panels, empty selection.
func (g *Game) Start(now time.Time) []Event {
	g.clock = NewRoundClock(g.rules.RoundDuration)
	g.clock.Start(now)
	g.score = 0
	g.panels = make([]Panel, g.rules.NumPanels())
	for i := range g.panels {
		g.panels[i] = NewPanel(g.rnd, now, g.rules.ResetInterval)
	}
	g.selection = NewSelection(g.panels)
	g.phase = PhaseRunning
	return []Event{{Type: EvtRoundStarted, Index: -1}}
}

// Tick ends the round once the clock runs out. Until then it resets every expired panel,
// charging the expiry penalty for each one and evicting it from the selection.
func (g *Game) Tick(now time.Time) []Event {
	if g.phase != PhaseRunning {
		return nil
	}
	if ev, over := g.checkClock(now); over {
		return []Event{ev}
	}

	var events []Event
	for i := range g.panels {
		p := &g.panels[i]
		if !p.IsExpired(now) {
			continue
		}
		g.selection.Remove(i)
		p.Reset(g.rnd, now, g.rules.ResetInterval)
		g.score -= g.rules.ExpiryPenalty
		events = append(events, Event{
			Type:  EvtPanelExpired,
			Index: i,
			Value: p.Value,
			Delta: -g.rules.ExpiryPenalty,
		})
	}
	return events
}

// HandleClick hit-tests p against the panel layout. A miss is not an error.
func (g *Game) HandleClick(p Point, now time.Time) []Event {
	i, ok := g.layout.HitTest(p)
	if !ok {
		return nil
	}
	return g.ClickPanel(i, now)
}

// ClickPanel toggles panel i and applies the match rule.
func (g *Game) ClickPanel(i int, now time.Time) []Event {
	if g.phase != PhaseRunning {
		return nil
	}
	if ev, over := g.checkClock(now); over {
		return []Event{ev}
	}
	if i < 0 || i >= len(g.panels) {
		return nil
	}

	g.selection.Toggle(i)
	evt := EvtPanelDeselected
	if g.panels[i].Selected {
		evt = EvtPanelSelected
	}
	events := []Event{{Type: evt, Index: i, Value: g.panels[i].Value}}

	if match, ok := g.match(now); ok {
		events = append(events, match)
	}
	return events
}

// match pays out and recycles the selection when it sums to the target.
// Sums above the target stay selected until the player deselects.
func (g *Game) match(now time.Time) (Event, bool) {
	if g.selection.Len() < g.rules.MinSelection {
		return Event{}, false
	}
	sum := g.selection.Sum()
	if sum != g.rules.TargetSum {
		return Event{}, false
	}

	matched := g.selection.Indices()
	g.selection.Clear()
	for _, i := range matched {
		g.panels[i].Reset(g.rnd, now, g.rules.ResetInterval)
	}
	g.score += g.rules.MatchReward
	return Event{
		Type:    EvtMatched,
		Index:   -1,
		Value:   sum,
		Delta:   g.rules.MatchReward,
		Indices: matched,
	}, true
}

func (g *Game) checkClock(now time.Time) (Event, bool) {
	if !g.clock.HasExpired(now) {
		return Event{}, false
	}
	g.phase = PhaseGameOver
	return Event{Type: EvtGameOver, Index: -1, Value: g.score}, true
}

func (g *Game) Phase() Phase    { return g.phase }
func (g *Game) GameOver() bool  { return g.phase == PhaseGameOver }
func (g *Game) Score() int      { return g.score }
func (g *Game) Rules() Rules    { return g.rules }
func (g *Game) Layout() Layout  { return g.layout }
func (g *Game) Sum() int        { return g.selection.Sum() }
func (g *Game) Selected() []int { return g.selection.Indices() }

// Panels returns a copy of the grid in index order.
func (g *Game) Panels() []Panel { return slices.Clone(g.panels) }

func (g *Game) Remaining(now time.Time) time.Duration { return g.clock.Remaining(now) }

type PanelView struct {
	Index     int     `json:"index"`
	Value     int     `json:"value"`
	Selected  bool    `json:"selected"`
	Remaining float64 `json:"remaining"` // fraction of the reset interval left
	Bounds    Rect    `json:"bounds"`
}

// State is the read-only view a renderer or client needs for one frame.
type State struct {
	Screen      Screen      `json:"screen,omitempty"`
	Phase       Phase       `json:"phase"`
	Score       int         `json:"score"`
	RemainingMs int64       `json:"remaining_ms"`
	GameOver    bool        `json:"game_over"`
	Sum         int         `json:"sum"`
	Target      int         `json:"target"`
	Selected    []int       `json:"selected"`
	Panels      []PanelView `json:"panels"`
}

// Remaining converts RemainingMs back to a duration.
func (s State) Remaining() time.Duration {
	return time.Duration(s.RemainingMs) * time.Millisecond
}

func (g *Game) Snapshot(now time.Time) State {
	s := State{
		Phase:       g.phase,
		Score:       g.score,
		RemainingMs: g.clock.Remaining(now).Milliseconds(),
		GameOver:    g.GameOver(),
		Sum:         g.selection.Sum(),
		Target:      g.rules.TargetSum,
		Selected:    g.selection.Indices(),
		Panels:      make([]PanelView, len(g.panels)),
	}
	for i, p := range g.panels {
		s.Panels[i] = PanelView{
			Index:     i,
			Value:     p.Value,
			Selected:  p.Selected,
			Remaining: p.RemainingFraction(now, g.rules.ResetInterval),
			Bounds:    g.layout.Bounds(i),
		}
	}
	return s
}
