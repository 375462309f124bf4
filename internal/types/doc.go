// Package types holds the websocket wire messages.
//
// Client -> Server
//
//	Start: {}
//
//	Click (either form):
//	  index: number        // panel index, row-major
//	  x: number, y: number // screen point, hit-tested on the server
//
//	Menu: {}
//
// Server -> Client
//
//	StateSnapshot:
//	  version: number
//	  state:
//	    screen: "menu" | "playing"
//	    phase: "not_started" | "running" | "game_over"
//	    score: number
//	    remaining_ms: number
//	    game_over: boolean
//	    sum: number
//	    target: number
//	    selected: number[] // panel indices in click order
//	    panels: { index, value, selected, remaining, bounds }[]
//
//	Error:
//	  error: string
package types
