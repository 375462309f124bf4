package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DoyleJ11/attack15/internal/engine"
	"github.com/DoyleJ11/attack15/internal/hub"
	"github.com/DoyleJ11/attack15/internal/session"
	"github.com/DoyleJ11/attack15/internal/types"
)

const (
	readTimeout  = 2 * time.Minute
	writeTimeout = 3 * time.Second
	outboxSize   = 8
)

type Options struct {
	OriginPatterns []string
	OutboxSize     int
	Logger         *zap.Logger
}

func Handler(h *hub.Hub, opts Options) http.HandlerFunc {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.OutboxSize <= 0 {
		opts.OutboxSize = outboxSize
	}

	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		reply := make(chan *session.Session, 1)
		h.Inbox() <- hub.GetSession{Code: code, Reply: reply}
		s := <-reply
		if s == nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: opts.OriginPatterns,
		})
		if err != nil {
			opts.Logger.Warn("websocket accept failed", zap.String("session", code), zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan session.Snapshot, opts.OutboxSize)
		clientID := uuid.NewString()
		log := opts.Logger.With(zap.String("session", code), zap.String("client", clientID))

		if !s.Send(r.Context(), session.Join{ClientID: clientID, Outbox: out}) {
			return
		}
		defer s.Send(context.Background(), session.Leave{ClientID: clientID})

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			// Ends when the session closes our outbox (shutdown or slow client) or stops
			// before it ever processed our Join.
			defer conn.Close(websocket.StatusGoingAway, "session closed")
			for {
				select {
				case snap, ok := <-out:
					if !ok {
						return
					}
					msg := types.ServerMessage{Type: "StateSnapshot", Version: snap.Version, State: &snap.State}
					if err := writeJSON(writeCtx, conn, msg); err != nil {
						log.Debug("snapshot write failed", zap.Error(err))
					}
				case <-s.Done():
					return
				case <-writeCtx.Done():
					return
				}
			}
		}()

		// Reader loop
		for {
			ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
			_, data, err := conn.Read(ctx)
			cancel()
			if err != nil {
				// Treat clean close/going-away as normal:
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				log.Debug("websocket read ended", zap.Error(err))
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				_ = writeJSON(r.Context(), conn, types.ServerMessage{Type: "Error", Error: "bad json"})
				continue
			}

			cmd, ok := toEngineCommand(cm)
			if !ok {
				_ = writeJSON(r.Context(), conn, types.ServerMessage{Type: "Error", Error: "unknown type"})
				continue
			}

			if !s.Send(r.Context(), session.FromClient{ClientID: clientID, Cmd: cmd}) {
				return
			}
		}
	}
}

func writeJSON(ctx context.Context, conn *websocket.Conn, msg types.ServerMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, payload)
}

func toEngineCommand(m types.ClientMessage) (engine.Command, bool) {
	switch m.Type {
	case "Start":
		return engine.Command{Type: engine.CmdStartRound}, true
	case "Menu":
		return engine.Command{Type: engine.CmdReturnToMenu}, true
	case "Click":
		if m.Index != nil {
			return engine.Command{Type: engine.CmdClickPanel, Index: *m.Index}, true
		}
		if m.X != nil && m.Y != nil {
			return engine.Command{Type: engine.CmdClickPoint, Point: engine.Point{X: *m.X, Y: *m.Y}}, true
		}
		return engine.Command{}, false
	default:
		return engine.Command{}, false
	}
}
