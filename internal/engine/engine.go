package engine

import "errors"

var ErrInvalidRules = errors.New("invalid rules")
var ErrUnsupportedCommand = errors.New("unsupported command")

type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseRunning    Phase = "running"
	PhaseGameOver   Phase = "game_over"
)

type Screen string

const (
	ScreenMenu    Screen = "menu"
	ScreenPlaying Screen = "playing"
)

type CommandType string

const (
	CmdStartRound   CommandType = "StartRound"
	CmdClickPanel   CommandType = "ClickPanel"
	CmdClickPoint   CommandType = "ClickPoint"
	CmdReturnToMenu CommandType = "ReturnToMenu"
	CmdTick         CommandType = "Tick"
)

/*
	CmdStartRound   -> EvtRoundStarted
	CmdClickPanel   -> EvtPanelSelected | EvtPanelDeselected -> EvtMatched (sum hit the target)
	CmdClickPoint   -> same as CmdClickPanel after hit-testing, nothing on a miss
	CmdTick         -> EvtPanelExpired per stale panel, or EvtGameOver once the round clock runs out
	CmdReturnToMenu -> EvtReturnedToMenu
	Any click while the round is over also yields EvtReturnedToMenu.
*/

type Command struct {
	Type  CommandType
	Index int
	Point Point
}

type EventType string

const (
	EvtRoundStarted    EventType = "RoundStarted"
	EvtPanelSelected   EventType = "PanelSelected"
	EvtPanelDeselected EventType = "PanelDeselected"
	EvtMatched         EventType = "Matched"
	EvtPanelExpired    EventType = "PanelExpired"
	EvtGameOver        EventType = "GameOver"
	EvtReturnedToMenu  EventType = "ReturnedToMenu"
)

// Event describes one state change. Index is -1 when no single panel is involved.
type Event struct {
	Type    EventType
	Index   int
	Value   int   // panel value, or the matched sum for EvtMatched
	Delta   int   // score change
	Indices []int // matched panels
}
