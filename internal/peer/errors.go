package peer

import (
	"errors"
	"fmt"

	"github.com/BioHazard786/warpline/internal/signaling"
)

var (
	ErrPeerLeft         = errors.New("peer hung up")
	ErrRoomClosed       = errors.New("room closed by server")
	ErrSignaling        = errors.New("signaling server error")
	ErrDisconnected     = errors.New("disconnected from signaling server")
	ErrTimeout          = errors.New("timeout")
	ErrConnectionFailed = errors.New("connection failed")
)

// Error records the operation that failed.
type Error struct {
	Op      string
	Err     error
	Details string
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %v (%s)", e.Op, e.Err, e.Details)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(op string, err error) *Error {
	return &Error{Op: op, Err: err}
}

func WrapError(op string, err error, details string) *Error {
	return &Error{Op: op, Err: err, Details: details}
}

// describeReason turns a server error reason into something a person can act on.
func describeReason(reason string) string {
	switch reason {
	case signaling.ReasonCodeTaken:
		return "that code is already in use"
	case signaling.ReasonNotFound:
		return "no room with that code"
	case signaling.ReasonRoomFull:
		return "the room already has two people"
	case "":
		return "unknown error"
	}
	return reason
}
