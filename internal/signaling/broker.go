package signaling

import "log/slog"

// Broker enforces the room lifecycle: absent -> open -> paired -> closed.
//
// It is not safe for concurrent use; the Hub serialises every call on its
// own goroutine, including expiries which arrive through onExpire.
type Broker struct {
	rooms    *Registry
	timers   *Scheduler
	onExpire ExpireFunc
}

// NewBroker creates a Broker over rooms and timers. onExpire receives fired
// timers and must route them back to Expire on the serialising goroutine.
func NewBroker(rooms *Registry, timers *Scheduler, onExpire ExpireFunc) *Broker {
	return &Broker{
		rooms:    rooms,
		timers:   timers,
		onExpire: onExpire,
	}
}

// Create opens a room for caller and arms its idle expiry.
func (b *Broker) Create(code string, caller Conn) error {
	if _, err := b.rooms.Create(code, caller); err != nil {
		return err
	}
	b.timers.Schedule(code, b.onExpire)

	slog.Info("room created", "code", code, "conn", caller.ID())
	caller.Send(Created(code))
	return nil
}

// Join pairs callee with the caller of an open room and disarms the expiry.
func (b *Broker) Join(code string, callee Conn) error {
	room, err := b.rooms.attach(code, callee)
	if err != nil {
		return err
	}
	b.timers.Cancel(code)

	slog.Info("room paired", "code", code, "conn", callee.ID())
	callee.Send(Joined(code))
	room.Caller.Send(PeerJoined())
	return nil
}

// Relay forwards a negotiation message from the occupant holding role to the
// other occupant. It is silently dropped when the room is gone, the sender no
// longer occupies it, or the other side is absent or closed.
func (b *Broker) Relay(code string, role Role, from Conn, msg *Message) {
	room := b.rooms.Get(code)
	if room == nil || room.occupant(role) != from {
		return
	}

	target := room.peerOf(role)
	if target == nil || !target.IsOpen() {
		slog.Debug("relay dropped", "code", code, "type", msg.Type)
		return
	}
	target.Send(msg)
}

// HangUp closes the room on behalf of the occupant holding role. The other
// occupant, if still connected, receives a hang-up. Disconnects take the
// same path.
func (b *Broker) HangUp(code string, role Role, from Conn) {
	room := b.rooms.Get(code)
	if room == nil || room.occupant(role) != from {
		return
	}

	if target := room.peerOf(role); target != nil && target.IsOpen() {
		target.Send(HangUp())
	}

	slog.Info("room closed", "code", code, "by", string(role))
	b.teardown(room, false)
}

// Expire destroys an open room whose idle timeout elapsed. Stale tokens,
// from timers cancelled or replaced after firing, are ignored.
func (b *Broker) Expire(code string, token uint64) {
	if !b.timers.Claim(code, token) {
		return
	}
	room := b.rooms.Get(code)
	if room == nil || room.State() != StateOpen {
		return
	}

	slog.Info("room expired", "code", code)
	b.teardown(room, true)
}

// Holds reports whether conn still occupies code in role.
func (b *Broker) Holds(code string, role Role, conn Conn) bool {
	room := b.rooms.Get(code)
	return room != nil && room.occupant(role) == conn
}

// teardown removes the room and its timer. With notify set, every occupant
// still connected receives room-closed.
func (b *Broker) teardown(room *Room, notify bool) {
	if notify {
		for _, c := range []Conn{room.Caller, room.Callee} {
			if c != nil && c.IsOpen() {
				c.Send(RoomClosed())
			}
		}
	}
	b.rooms.Delete(room.Code)
	b.timers.Cancel(room.Code)
}
