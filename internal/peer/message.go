package peer

import (
	pion "github.com/pion/webrtc/v4"

	"github.com/BioHazard786/warpline/internal/signaling"
)

// Message is the client's view of a signaling frame. The server relays
// offer, answer and ice-candidate frames verbatim, so their fields are
// defined here rather than by the server.
type Message struct {
	Type   string `json:"type"`
	Code   string `json:"code,omitempty"`
	Reason string `json:"reason,omitempty"`

	SDP       string                  `json:"sdp,omitempty"`
	Candidate *pion.ICECandidateInit `json:"candidate,omitempty"`
}

// Create requests a new room.
func Create(code string) *Message {
	return &Message{Type: signaling.TypeCreate, Code: code}
}

// Join requests to pair with the caller of code.
func Join(code string) *Message {
	return &Message{Type: signaling.TypeJoin, Code: code}
}

// HangUp asks the server to close the room.
func HangUp() *Message {
	return &Message{Type: signaling.TypeHangUp}
}

func offer(sdp string) *Message {
	return &Message{Type: signaling.TypeOffer, SDP: sdp}
}

func answer(sdp string) *Message {
	return &Message{Type: signaling.TypeAnswer, SDP: sdp}
}

func iceCandidate(c pion.ICECandidateInit) *Message {
	return &Message{Type: signaling.TypeICECandidate, Candidate: &c}
}
