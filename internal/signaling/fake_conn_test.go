package signaling

import (
	"sync"
	"testing"
	"time"
)

// fakeConn records every message sent to it.
type fakeConn struct {
	id string

	mu     sync.Mutex
	open   bool
	sent   []*Message
	queued chan *Message
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id, open: true, queued: make(chan *Message, 64)}
}

func (f *fakeConn) ID() string { return f.id }

func (f *fakeConn) Send(msg *Message) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.open {
		return false
	}
	f.sent = append(f.sent, msg)
	f.queued <- msg
	return true
}

func (f *fakeConn) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

func (f *fakeConn) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = false
}

func (f *fakeConn) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.sent))
	for i, m := range f.sent {
		out[i] = m.Type
	}
	return out
}

func (f *fakeConn) count(msgType string) int {
	n := 0
	for _, t := range f.types() {
		if t == msgType {
			n++
		}
	}
	return n
}

// next waits for the next message sent to f.
func (f *fakeConn) next(t *testing.T) *Message {
	t.Helper()
	select {
	case msg := <-f.queued:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatalf("%s: timed out waiting for message", f.id)
		return nil
	}
}

// expect waits for the next message and checks its type.
func (f *fakeConn) expect(t *testing.T, msgType string) *Message {
	t.Helper()
	msg := f.next(t)
	if msg.Type != msgType {
		t.Fatalf("%s: expected %s, got %s", f.id, msgType, msg.Type)
	}
	return msg
}

// expectNothing asserts that nothing arrives within d.
func (f *fakeConn) expectNothing(t *testing.T, d time.Duration) {
	t.Helper()
	select {
	case msg := <-f.queued:
		t.Fatalf("%s: expected no message, got %s", f.id, msg.Type)
	case <-time.After(d):
	}
}

func equalTypes(got []string, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
