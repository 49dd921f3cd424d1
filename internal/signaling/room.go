package signaling

import "time"

// State is the lifecycle stage of a live room. A closed room is simply
// absent from the Registry.
type State int

const (
	StateOpen State = iota
	StatePaired
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StatePaired:
		return "paired"
	}
	return "unknown"
}

// Room represents a single room where two peers (caller and callee) can connect.
// The Registry owns rooms; the connections are shared with the transport layer.
type Room struct {
	// Code is the caller-supplied identifier, unique while the room is alive.
	Code string

	// Caller is the connection that created the room. Never nil.
	Caller Conn

	// Callee is the connection that joined the room, set at most once.
	Callee Conn

	CreatedAt time.Time
}

// State reports whether the room is waiting for a callee or paired.
func (r *Room) State() State {
	if r.Callee == nil {
		return StateOpen
	}
	return StatePaired
}

// occupant returns the connection holding role.
func (r *Room) occupant(role Role) Conn {
	switch role {
	case RoleCaller:
		return r.Caller
	case RoleCallee:
		return r.Callee
	}
	return nil
}

// peerOf returns the connection opposite to role, or nil.
func (r *Room) peerOf(role Role) Conn {
	switch role {
	case RoleCaller:
		return r.Callee
	case RoleCallee:
		return r.Caller
	}
	return nil
}
