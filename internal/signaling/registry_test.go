package signaling

import (
	"errors"
	"testing"
)

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry()
	caller := newFakeConn("caller")

	if r.Get("ABC") != nil {
		t.Fatal("empty registry returned a room")
	}

	room, err := r.Create("ABC", caller)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if room.Code != "ABC" || room.Caller != caller {
		t.Errorf("unexpected room %+v", room)
	}
	if r.Get("ABC") != room {
		t.Error("get should return the created room")
	}
	if state, ok := r.State("ABC"); !ok || state != StateOpen {
		t.Errorf("expected open, got %s (alive=%v)", state, ok)
	}

	r.Delete("ABC")
	r.Delete("ABC")
	if r.Get("ABC") != nil {
		t.Error("room should be gone")
	}
	if _, ok := r.State("ABC"); ok {
		t.Error("deleted room should not report a state")
	}
}

func TestRegistryCreateErrors(t *testing.T) {
	r := NewRegistry()
	r.Create("ABC", newFakeConn("a"))

	tests := []struct {
		name string
		code string
	}{
		{"empty", ""},
		{"taken", "ABC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Create(tt.code, newFakeConn("b")); !errors.Is(err, ErrCodeTaken) {
				t.Errorf("expected ErrCodeTaken, got %v", err)
			}
		})
	}
}

func TestRegistryStats(t *testing.T) {
	r := NewRegistry()
	r.Create("a", newFakeConn("a"))
	r.Create("b", newFakeConn("b"))
	if _, err := r.attach("b", newFakeConn("b2")); err != nil {
		t.Fatalf("attach: %v", err)
	}

	s := r.Stats()
	if s.Open != 1 || s.Paired != 1 || s.Total() != 2 {
		t.Errorf("unexpected stats %+v", s)
	}
	if r.Len() != 2 {
		t.Errorf("expected 2 rooms, got %d", r.Len())
	}
}
