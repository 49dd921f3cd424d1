package chat

import (
	"errors"
	"testing"
	"time"
)

// pipe delivers sent frames straight to another session.
type pipe struct {
	to  *Session
	err error
}

func (p *pipe) Send(data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.to.Receive(data)
	return nil
}

func connected() (*Session, *Session) {
	ab, ba := &pipe{}, &pipe{}
	a, b := NewSession(ab), NewSession(ba)
	ab.to, ba.to = b, a
	return a, b
}

func TestSessionSay(t *testing.T) {
	a, b := connected()
	at := time.UnixMilli(1_700_000_000_000)
	a.now = func() time.Time { return at }

	if err := a.Say("hi"); err != nil {
		t.Fatalf("say: %v", err)
	}

	select {
	case line := <-b.Lines():
		if line.Text != "hi" || !line.At.Equal(at) {
			t.Errorf("unexpected line %+v", line)
		}
	case <-time.After(time.Second):
		t.Fatal("no line delivered")
	}
}

func TestSessionLeaveEndsBothSides(t *testing.T) {
	a, b := connected()

	if err := a.Leave(); err != nil {
		t.Fatalf("leave: %v", err)
	}
	for name, s := range map[string]*Session{"a": a, "b": b} {
		select {
		case <-s.Ended():
		default:
			t.Errorf("session %s should have ended", name)
		}
	}

	// Ending twice is harmless.
	a.End()
	b.End()
}

func TestSessionLeaveStillEndsOnSendError(t *testing.T) {
	broken := errors.New("channel closed")
	s := NewSession(&pipe{err: broken})

	if err := s.Leave(); !errors.Is(err, broken) {
		t.Errorf("expected send error, got %v", err)
	}
	select {
	case <-s.Ended():
	default:
		t.Error("session should end even when bye cannot be sent")
	}
}

func TestSessionIgnoresGarbage(t *testing.T) {
	s := NewSession(&pipe{})
	s.Receive([]byte("not msgpack"))

	select {
	case line := <-s.Lines():
		t.Errorf("unexpected line %+v", line)
	case <-s.Ended():
		t.Error("garbage should not end the session")
	default:
	}
}
