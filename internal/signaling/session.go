package signaling

// Role is the part a connection plays in its room.
type Role string

const (
	RoleNone   Role = ""
	RoleCaller Role = "caller"
	RoleCallee Role = "callee"
)

// Session is the per-connection binding to at most one room.
// It is owned by the connection and only mutated by the Hub goroutine.
type Session struct {
	Code string
	Role Role
}

// Bound reports whether the session references a room.
func (s *Session) Bound() bool {
	return s.Code != "" && s.Role != RoleNone
}

func (s *Session) bind(code string, role Role) {
	s.Code = code
	s.Role = role
}

func (s *Session) reset() {
	*s = Session{}
}
