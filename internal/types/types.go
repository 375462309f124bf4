package types

import "github.com/DoyleJ11/attack15/internal/engine"

type ClientMessage struct {
	Type  string `json:"type"` // "Start" | "Click" | "Menu"
	Index *int   `json:"index,omitempty"`
	X     *int   `json:"x,omitempty"`
	Y     *int   `json:"y,omitempty"`
}

type ServerMessage struct {
	Type    string        `json:"type"` // "StateSnapshot" | "Error"
	Version int           `json:"version,omitempty"`
	State   *engine.State `json:"state,omitempty"`
	Error   string        `json:"error,omitempty"`
}
