package signaling

import (
	"sync"
	"time"
)

// Registry maps room codes to live rooms. A code is present if and only if
// its room is alive.
//
// Mutation happens on the Hub goroutine; the lock lets the health endpoint
// read counts concurrently.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// Create inserts a new open room owned by caller. It fails with
// ErrCodeTaken when code is empty or already in use.
func (r *Registry) Create(code string, caller Conn) (*Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if code == "" {
		return nil, ErrCodeTaken
	}
	if _, ok := r.rooms[code]; ok {
		return nil, ErrCodeTaken
	}

	room := &Room{
		Code:      code,
		Caller:    caller,
		CreatedAt: time.Now(),
	}
	r.rooms[code] = room
	return room, nil
}

// Get returns the room for code, or nil.
func (r *Registry) Get(code string) *Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rooms[code]
}

// Delete removes the room for code. It is a no-op if absent.
func (r *Registry) Delete(code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, code)
}

// State reports the state of the room for code, if it is alive.
func (r *Registry) State(code string) (State, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[code]
	if !ok {
		return 0, false
	}
	return room.State(), true
}

// attach sets the callee of an open room.
func (r *Registry) attach(code string, callee Conn) (*Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	if room.Callee != nil {
		return nil, ErrRoomFull
	}
	room.Callee = callee
	return room, nil
}

// Stats is a point-in-time count of live rooms.
type Stats struct {
	Open   int
	Paired int
}

// Total is the number of live rooms.
func (s Stats) Total() int {
	return s.Open + s.Paired
}

// Stats counts live rooms by state.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var s Stats
	for _, room := range r.rooms {
		if room.State() == StatePaired {
			s.Paired++
		} else {
			s.Open++
		}
	}
	return s
}

// Len returns the number of live rooms.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}
