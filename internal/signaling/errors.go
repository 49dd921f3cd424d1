package signaling

import "errors"

var (
	ErrCodeTaken        = errors.New("code taken")
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomFull         = errors.New("room full")
	ErrMalformedMessage = errors.New("malformed message")
)

// Wire reasons carried by "error" messages.
const (
	ReasonCodeTaken = "code-taken"
	ReasonNotFound  = "not-found"
	ReasonRoomFull  = "room-full"
)

// Reason maps a rejection to its wire reason. Unknown errors map to "".
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrCodeTaken):
		return ReasonCodeTaken
	case errors.Is(err, ErrRoomNotFound):
		return ReasonNotFound
	case errors.Is(err, ErrRoomFull):
		return ReasonRoomFull
	}
	return ""
}
