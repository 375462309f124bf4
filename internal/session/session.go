package session

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/DoyleJ11/attack15/internal/engine"
)

type Msg interface{ isSessionMsg() }

type FromClient struct {
	ClientID string
	Cmd      engine.Command
}

func (FromClient) isSessionMsg() {}

type Join struct {
	ClientID string
	Outbox   chan Snapshot // where this client wants to receive snapshots
}

func (Join) isSessionMsg() {}

type Leave struct{ ClientID string }

func (Leave) isSessionMsg() {}

type Shutdown struct{}

func (Shutdown) isSessionMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isSessionMsg() {}

type Snapshot struct {
	Version int
	State   engine.State
}

type View struct {
	Version    int
	NumClients int
	State      engine.State
}

type Options struct {
	Clock        clockwork.Clock
	TickInterval time.Duration
	// IdleTimeout stops a session that has had no clients for this long. Zero keeps it alive.
	IdleTimeout time.Duration
	Logger      *zap.Logger
}

// Session runs one puzzle flow on its own goroutine. Every mutation, including the
// periodic tick, happens inside loop, so the engine only ever sees one caller.
type Session struct {
	code     string
	inbox    chan Msg
	flow     *engine.Flow
	version  int
	lastSec  int64
	clients  map[string]chan Snapshot
	clock    clockwork.Clock
	interval time.Duration
	idle     time.Duration
	emptyAt  time.Time
	log      *zap.Logger
	done     chan struct{}
	ctx      context.Context
	cancel   context.CancelFunc
}

func New(parent context.Context, code string, flow *engine.Flow, opts Options) *Session {
	ctx, cancel := context.WithCancel(parent)

	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second / 60
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	s := &Session{
		code:     code,
		inbox:    make(chan Msg, 64), // Small buffer
		flow:     flow,
		lastSec:  -1,
		clients:  make(map[string]chan Snapshot),
		clock:    opts.Clock,
		interval: opts.TickInterval,
		idle:     opts.IdleTimeout,
		emptyAt:  opts.Clock.Now(),
		log:      opts.Logger.With(zap.String("session", code)),
		done:     make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}

	go s.loop()
	return s
}

func (s *Session) loop() {
	defer close(s.done)

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			s.shutdown()
			return

		case <-ticker.Chan():
			now := s.clock.Now()
			if s.idleExpired(now) {
				s.log.Info("closing idle session", zap.Duration("idle", now.Sub(s.emptyAt)))
				s.shutdown()
				return
			}
			s.tick(now)

		case m := <-s.inbox:
			switch msg := m.(type) {
			case Join:
				// Register client + send current snapshot immediately
				s.clients[msg.ClientID] = msg.Outbox
				msg.Outbox <- s.snapshot(s.clock.Now())
				s.log.Debug("client joined", zap.String("client", msg.ClientID), zap.Int("clients", len(s.clients)))

			case Leave:
				if ch, ok := s.clients[msg.ClientID]; ok {
					close(ch)
					delete(s.clients, msg.ClientID)
				}
				if len(s.clients) == 0 {
					s.emptyAt = s.clock.Now()
				}

			case FromClient:
				now := s.clock.Now()
				events, err := s.flow.Apply(msg.Cmd, now)
				if err != nil {
					s.log.Warn("rejected command",
						zap.String("client", msg.ClientID),
						zap.String("type", string(msg.Cmd.Type)),
						zap.Error(err))
					break
				}
				s.record(events)
				if len(events) > 0 {
					s.publish(now)
				}

			case GetState:
				msg.Reply <- View{
					Version:    s.version,
					NumClients: len(s.clients),
					State:      s.flow.Snapshot(s.clock.Now()),
				}

			case Shutdown:
				s.shutdown()
				return
			}
		}
	}
}

// tick advances panel expiry and the round clock. Clients hear about it when something
// changed or when the whole-second countdown moved.
func (s *Session) tick(now time.Time) {
	events := s.flow.Tick(now)
	s.record(events)

	sec := int64(-1)
	if s.flow.Screen() == engine.ScreenPlaying && !s.flow.Game().GameOver() {
		sec = int64(s.flow.Game().Remaining(now) / time.Second)
	}
	if len(events) > 0 || sec != s.lastSec {
		s.publish(now)
	}
}

func (s *Session) idleExpired(now time.Time) bool {
	return s.idle > 0 && len(s.clients) == 0 && now.Sub(s.emptyAt) >= s.idle
}

func (s *Session) record(events []engine.Event) {
	for _, ev := range events {
		switch ev.Type {
		case engine.EvtRoundStarted:
			s.log.Info("round started")
		case engine.EvtMatched:
			s.log.Debug("match", zap.Ints("panels", ev.Indices), zap.Int("score", s.flow.Game().Score()))
		case engine.EvtPanelExpired:
			s.log.Debug("panel expired", zap.Int("panel", ev.Index), zap.Int("score", s.flow.Game().Score()))
		case engine.EvtGameOver:
			s.log.Info("round over", zap.Int("score", ev.Value))
		}
	}
}

func (s *Session) snapshot(now time.Time) Snapshot {
	return Snapshot{Version: s.version, State: s.flow.Snapshot(now)}
}

func (s *Session) publish(now time.Time) {
	s.version++
	snap := s.snapshot(now)
	s.lastSec = snap.State.RemainingMs / 1000
	if s.flow.Screen() != engine.ScreenPlaying || snap.State.GameOver {
		s.lastSec = -1
	}
	s.broadcast(snap)
}

func (s *Session) shutdown() {
	for id, ch := range s.clients {
		close(ch) // Tell client no more snapshots
		delete(s.clients, id)
	}
	s.cancel()
}

func (s *Session) broadcast(snap Snapshot) {
	for id, ch := range s.clients {
		select {
		case ch <- snap:
			//ok
		default:
			// Client is slow/full - drop them.
			s.log.Warn("dropping slow client", zap.String("client", id))
			close(ch)
			delete(s.clients, id)
			if len(s.clients) == 0 {
				s.emptyAt = s.clock.Now()
			}
		}
	}
}

func (s *Session) Code() string { return s.code }

// Expose the inbox so tests or WS layer can send messages.
func (s *Session) Inbox() chan<- Msg { return s.inbox }

// Send delivers m unless the session has stopped or ctx ends first.
func (s *Session) Send(ctx context.Context, m Msg) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.inbox <- m:
		return true
	case <-s.done:
		return false
	case <-ctx.Done():
		return false
	}
}

// Done is closed once the loop has exited.
func (s *Session) Done() <-chan struct{} { return s.done }
