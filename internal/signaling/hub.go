package signaling

import (
	"context"
	"log/slog"
	"time"
)

type inboundEvent struct {
	conn    Conn
	session *Session
	msg     *Message
}

type closeEvent struct {
	conn    Conn
	session *Session
}

type expiredEvent struct {
	code  string
	token uint64
}

// Hub is the central brain of the signaling server.
// A single goroutine (Run) owns every room and session mutation, so the
// Broker, Registry and Scheduler never race with each other.
type Hub struct {
	rooms  *Registry
	timers *Scheduler
	broker *Broker

	register   chan Conn
	unregister chan closeEvent
	inbound    chan inboundEvent
	expired    chan expiredEvent

	done chan struct{}
}

// NewHub creates a Hub whose unpaired rooms expire after idleTimeout.
func NewHub(idleTimeout time.Duration) *Hub {
	h := &Hub{
		rooms:      NewRegistry(),
		timers:     NewScheduler(idleTimeout),
		register:   make(chan Conn),
		unregister: make(chan closeEvent),
		inbound:    make(chan inboundEvent),
		expired:    make(chan expiredEvent),
		done:       make(chan struct{}),
	}
	h.broker = NewBroker(h.rooms, h.timers, h.expire)
	return h
}

// Register announces a new connection.
func (h *Hub) Register(c Conn) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// Unregister announces that c went away. Its session, if bound, is torn
// down exactly like a hang-up.
func (h *Hub) Unregister(c Conn, s *Session) {
	select {
	case h.unregister <- closeEvent{conn: c, session: s}:
	case <-h.done:
		c.Close()
	}
}

// Receive hands a decoded message from c to the Hub.
func (h *Hub) Receive(c Conn, s *Session, msg *Message) {
	select {
	case h.inbound <- inboundEvent{conn: c, session: s, msg: msg}:
	case <-h.done:
	}
}

// expire is called from timer goroutines.
func (h *Hub) expire(code string, token uint64) {
	select {
	case h.expired <- expiredEvent{code: code, token: token}:
	case <-h.done:
	}
}

// Stats counts live rooms. Safe to call from any goroutine.
func (h *Hub) Stats() Stats {
	return h.rooms.Stats()
}

// RoomState reports the state of the room for code, if it is alive.
// Safe to call from any goroutine.
func (h *Hub) RoomState(code string) (State, bool) {
	return h.rooms.State(code)
}

// IdleTimeout returns how long unpaired rooms live.
func (h *Hub) IdleTimeout() time.Duration {
	return h.timers.Timeout()
}

// Run processes events until ctx is cancelled. Pending expiries are stopped
// on return.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		h.timers.Stop()
	}()

	for {
		select {
		case c := <-h.register:
			slog.Debug("client registered", "conn", c.ID())

		case ev := <-h.unregister:
			h.handleClose(ev.conn, ev.session)

		case ev := <-h.inbound:
			h.handleMessage(ev.conn, ev.session, ev.msg)

		case ev := <-h.expired:
			h.broker.Expire(ev.code, ev.token)

		case <-ctx.Done():
			slog.Info("hub stopped", "rooms", h.rooms.Len())
			return
		}
	}
}

func (h *Hub) handleMessage(c Conn, s *Session, msg *Message) {
	switch msg.Type {
	case TypeCreate:
		if h.inRoom(c, s) {
			slog.Debug("create ignored: already in a room", "conn", c.ID(), "code", s.Code)
			return
		}
		if err := h.broker.Create(msg.Code, c); err != nil {
			slog.Info("create rejected", "conn", c.ID(), "code", msg.Code, "err", err)
			c.Send(ErrorMessage(err))
			return
		}
		s.bind(msg.Code, RoleCaller)

	case TypeJoin:
		if h.inRoom(c, s) {
			slog.Debug("join ignored: already in a room", "conn", c.ID(), "code", s.Code)
			return
		}
		if err := h.broker.Join(msg.Code, c); err != nil {
			slog.Info("join rejected", "conn", c.ID(), "code", msg.Code, "err", err)
			c.Send(ErrorMessage(err))
			return
		}
		s.bind(msg.Code, RoleCallee)

	case TypeOffer, TypeAnswer, TypeICECandidate:
		if !s.Bound() {
			return
		}
		h.broker.Relay(s.Code, s.Role, c, msg)

	case TypeHangUp:
		if !s.Bound() {
			return
		}
		h.broker.HangUp(s.Code, s.Role, c)
		s.reset()

	default:
		slog.Debug("unknown message type", "conn", c.ID(), "type", msg.Type)
	}
}

func (h *Hub) handleClose(c Conn, s *Session) {
	slog.Debug("client unregistered", "conn", c.ID(), "code", s.Code)
	if s.Bound() {
		h.broker.HangUp(s.Code, s.Role, c)
	}
	s.reset()
	c.Close()
}

// inRoom reports whether the session still occupies a live room. A session
// whose room was torn down by the other side or by expiry may bind again.
func (h *Hub) inRoom(c Conn, s *Session) bool {
	return s.Bound() && h.broker.Holds(s.Code, s.Role, c)
}
