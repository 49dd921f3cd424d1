package chat

import (
	"log/slog"
	"sync"
	"time"
)

// Sender is the outbound half of a data channel.
type Sender interface {
	Send(data []byte) error
}

// Line is one received text message.
type Line struct {
	Text string
	At   time.Time
}

// Session exchanges chat messages over one data channel.
type Session struct {
	out   Sender
	now   func() time.Time
	lines chan Line
	ended chan struct{}
	once  sync.Once
}

func NewSession(out Sender) *Session {
	return &Session{
		out:   out,
		now:   time.Now,
		lines: make(chan Line, 64),
		ended: make(chan struct{}),
	}
}

// Say sends a text line to the peer.
func (s *Session) Say(text string) error {
	data, err := EncodeText(text, s.now())
	if err != nil {
		return err
	}
	return s.out.Send(data)
}

// Receive handles one inbound frame from the data channel.
func (s *Session) Receive(data []byte) {
	msg, err := Decode(data)
	if err != nil {
		slog.Debug("dropping chat frame", "err", err)
		return
	}

	switch msg.Type {
	case TypeText:
		var p TextPayload
		if err := msg.DecodePayload(&p); err != nil {
			slog.Debug("dropping chat text", "err", err)
			return
		}
		select {
		case s.lines <- Line{Text: p.Text, At: p.Time()}:
		case <-s.ended:
		}
	case TypeBye:
		s.End()
	}
}

// Leave tells the peer we are going and ends the session.
func (s *Session) Leave() error {
	defer s.End()
	data, err := EncodeBye()
	if err != nil {
		return err
	}
	return s.out.Send(data)
}

// End marks the session over. Safe to call more than once.
func (s *Session) End() {
	s.once.Do(func() { close(s.ended) })
}

func (s *Session) Lines() <-chan Line {
	return s.lines
}

// Ended is closed when either side leaves or the channel goes away.
func (s *Session) Ended() <-chan struct{} {
	return s.ended
}
