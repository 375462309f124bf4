// Package ui turns pointer input into flow transitions for the desktop client. It knows
// where the buttons are but nothing about drawing them.
package ui

import (
	"fmt"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/DoyleJ11/attack15/internal/engine"
)

type Action string

const (
	ActionNone  Action = ""
	ActionStart Action = "start"
	ActionExit  Action = "exit"
	ActionBack  Action = "back"
	ActionGame  Action = "game"
)

type Button struct {
	Label  string
	Bounds engine.Rect
}

func (b Button) Contains(p engine.Point) bool { return b.Bounds.Contains(p) }

type Buttons struct {
	Start Button
	Exit  Button
	Back  Button
}

// NewButtons places the menu buttons around the screen centre and Back in the bottom-left
// corner.
func NewButtons(l engine.Layout) Buttons {
	cx, cy := l.ScreenWidth/2, l.ScreenHeight/2
	return Buttons{
		Start: Button{Label: "Start", Bounds: rect(cx-100, cy-30, 200, 60)},
		Exit:  Button{Label: "Exit", Bounds: rect(cx-100, cy+50, 200, 60)},
		Back:  Button{Label: "Back", Bounds: rect(20, l.ScreenHeight-70, 120, 50)},
	}
}

func rect(x, y, w, h int) engine.Rect {
	return engine.Rect{Min: engine.Point{X: x, Y: y}, Max: engine.Point{X: x + w, Y: y + h}}
}

type Controller struct {
	flow    *engine.Flow
	buttons Buttons
	clock   clockwork.Clock
	log     *zap.Logger
}

func NewController(flow *engine.Flow, clock clockwork.Clock, log *zap.Logger) *Controller {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		flow:    flow,
		buttons: NewButtons(flow.Game().Layout()),
		clock:   clock,
		log:     log,
	}
}

func (c *Controller) Buttons() Buttons { return c.buttons }

// Tick advances the flow to the clock's current time.
func (c *Controller) Tick() []engine.Event {
	events := c.flow.Tick(c.clock.Now())
	c.logEvents(events)
	return events
}

// Click routes one press. On the game screen a finished round swallows the click and
// returns to the menu before Back or the board are considered.
func (c *Controller) Click(p engine.Point) (Action, []engine.Event) {
	now := c.clock.Now()

	if c.flow.Screen() == engine.ScreenMenu {
		switch {
		case c.buttons.Start.Contains(p):
			events := c.flow.Start(now)
			c.logEvents(events)
			return ActionStart, events
		case c.buttons.Exit.Contains(p):
			return ActionExit, nil
		}
		return ActionNone, nil
	}

	if c.flow.Game().GameOver() {
		events := c.flow.Click(p, now)
		c.logEvents(events)
		return ActionBack, events
	}
	if c.buttons.Back.Contains(p) {
		return ActionBack, c.Back()
	}

	events := c.flow.Click(p, now)
	c.logEvents(events)
	return ActionGame, events
}

// Back abandons the current round.
func (c *Controller) Back() []engine.Event {
	events := c.flow.ReturnToMenu()
	c.logEvents(events)
	return events
}

func (c *Controller) Snapshot() engine.State {
	return c.flow.Snapshot(c.clock.Now())
}

func (c *Controller) logEvents(events []engine.Event) {
	for _, ev := range events {
		switch ev.Type {
		case engine.EvtMatched:
			c.log.Debug("match", zap.Ints("panels", ev.Indices), zap.Int("delta", ev.Delta))
		case engine.EvtPanelExpired:
			c.log.Debug("panel expired", zap.Int("panel", ev.Index), zap.Int("delta", ev.Delta))
		case engine.EvtGameOver:
			c.log.Info("round over", zap.Int("score", ev.Value))
		}
	}
}

// SumLabel renders the running selection total against the target, e.g. "Sum: 7/15".
func SumLabel(s engine.State) string {
	return fmt.Sprintf("Sum: %d/%d", s.Sum, s.Target)
}

// SumOverTarget reports whether the selection has overshot the target. The HUD shows the
// total in the alert colour then.
func SumOverTarget(s engine.State) bool { return s.Sum > s.Target }
