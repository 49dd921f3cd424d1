package signaling

import (
	"encoding/json"
	"fmt"
)

// Message type constants.
const (
	// Client to server
	TypeCreate = "create"
	TypeJoin   = "join"

	// Relayed verbatim between the two occupants
	TypeOffer        = "offer"
	TypeAnswer       = "answer"
	TypeICECandidate = "ice-candidate"
	TypeHangUp       = "hang-up"

	// Server to client
	TypeCreated    = "created"
	TypeJoined     = "joined"
	TypePeerJoined = "peer-joined"
	TypeRoomClosed = "room-closed"
	TypeError      = "error"
)

// Message is a single websocket frame, in either direction.
//
// Inbound relay frames keep their original bytes so the peer receives the
// negotiation payload exactly as the sender wrote it.
type Message struct {
	Type   string `json:"type"`
	Code   string `json:"code,omitempty"`
	Reason string `json:"reason,omitempty"`

	raw json.RawMessage
}

type wireMessage Message

// MarshalJSON returns the original frame for decoded messages and the
// envelope fields for messages built by the server.
func (m *Message) MarshalJSON() ([]byte, error) {
	if m.raw != nil {
		return m.raw, nil
	}
	return json.Marshal((*wireMessage)(m))
}

// Raw returns the frame the message was decoded from, or nil.
func (m *Message) Raw() json.RawMessage {
	return m.raw
}

// DecodeMessage parses an inbound frame. Anything that is not a JSON object
// with a string "type" is ErrMalformedMessage.
//
// A "code" that is not a string does not reject the frame; it decodes as the
// empty code, so create answers code-taken and join answers not-found.
func DecodeMessage(data []byte) (*Message, error) {
	var head struct {
		Type string          `json:"type"`
		Code json.RawMessage `json:"code"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if head.Type == "" {
		return nil, fmt.Errorf("%w: missing type", ErrMalformedMessage)
	}

	msg := &Message{
		Type: head.Type,
		raw:  append(json.RawMessage(nil), data...),
	}
	if len(head.Code) > 0 {
		var code string
		if err := json.Unmarshal(head.Code, &code); err == nil {
			msg.Code = code
		}
	}
	return msg, nil
}

// Created acknowledges a create request.
func Created(code string) *Message {
	return &Message{Type: TypeCreated, Code: code}
}

// Joined acknowledges a join request to the joining connection.
func Joined(code string) *Message {
	return &Message{Type: TypeJoined, Code: code}
}

// PeerJoined tells the caller that a callee arrived.
func PeerJoined() *Message {
	return &Message{Type: TypePeerJoined}
}

// HangUp tells an occupant that the other side left.
func HangUp() *Message {
	return &Message{Type: TypeHangUp}
}

// RoomClosed tells a still-connected occupant that the room no longer exists.
func RoomClosed() *Message {
	return &Message{Type: TypeRoomClosed}
}

// ErrorMessage reports a rejected request to the requester.
func ErrorMessage(err error) *Message {
	return &Message{Type: TypeError, Reason: Reason(err)}
}
