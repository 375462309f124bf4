package hub

import (
	"context"
	"math/rand"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/DoyleJ11/attack15/internal/engine"
	"github.com/DoyleJ11/attack15/internal/session"
)

type HubMsg interface{ isHubMsg() }

type CreateSession struct {
	Code  string
	Reply chan *session.Session
}

type GetSession struct {
	Code  string
	Reply chan *session.Session
}

type EnsureSession struct {
	Code  string
	Reply chan *session.Session
}

type RemoveSession struct {
	Code string
}

type CountSessions struct {
	Reply chan int
}

type Hub struct {
	inbox    chan HubMsg
	sessions map[string]*session.Session
	rules    engine.Rules
	opts     session.Options
	log      *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

type ShutdownHub struct{}

func (CreateSession) isHubMsg() {}
func (GetSession) isHubMsg()    {}
func (EnsureSession) isHubMsg() {}
func (RemoveSession) isHubMsg() {}
func (CountSessions) isHubMsg() {}
func (ShutdownHub) isHubMsg()   {}

// NewHub starts the registry. Every session it creates plays by rules and ticks with opts.
func NewHub(parent context.Context, rules engine.Rules, opts session.Options) *Hub {
	ctx, cancel := context.WithCancel(parent)
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	h := &Hub{
		inbox:    make(chan HubMsg, 64),
		sessions: make(map[string]*session.Session),
		rules:    rules,
		opts:     opts,
		log:      opts.Logger,
		ctx:      ctx,
		cancel:   cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

// Rules returns the rules new sessions are created with.
func (h *Hub) Rules() engine.Rules { return h.rules }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateSession:
				msg.Reply <- h.ensure(msg.Code)

			case GetSession:
				s := h.sessions[msg.Code]
				if s != nil && isDone(s) {
					delete(h.sessions, msg.Code)
					s = nil
				}
				msg.Reply <- s // May be nil

			case EnsureSession:
				msg.Reply <- h.ensure(msg.Code)

			case RemoveSession:
				if s := h.sessions[msg.Code]; s != nil {
					s.Send(h.ctx, session.Shutdown{})
					delete(h.sessions, msg.Code)
				}

			case CountSessions:
				h.prune()
				msg.Reply <- len(h.sessions)

			case ShutdownHub:
				h.shutdown()
				h.cancel()
				return
			}
		}
	}
}

func (h *Hub) ensure(code string) *session.Session {
	if s := h.sessions[code]; s != nil && !isDone(s) {
		return s
	}

	seed := h.opts.Clock.Now().UnixNano()
	flow, err := engine.NewFlow(h.rules, rand.New(rand.NewSource(seed)))
	if err != nil {
		h.log.Error("failed to create session", zap.String("session", code), zap.Error(err))
		return nil
	}
	s := session.New(h.ctx, code, flow, h.opts)
	h.sessions[code] = s
	h.log.Info("session created", zap.String("session", code))
	return s
}

func (h *Hub) shutdown() {
	for code, s := range h.sessions {
		s.Send(context.Background(), session.Shutdown{})
		delete(h.sessions, code)
	}
}

// prune forgets sessions that stopped on their own, such as after an idle timeout.
func (h *Hub) prune() {
	for code, s := range h.sessions {
		if isDone(s) {
			delete(h.sessions, code)
		}
	}
}

func isDone(s *session.Session) bool {
	select {
	case <-s.Done():
		return true
	default:
		return false
	}
}
