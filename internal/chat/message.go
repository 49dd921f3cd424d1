// Package chat is the message format spoken over the peers' data channel.
package chat

import (
	"errors"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	TypeText = "text"
	TypeBye  = "bye"
)

var ErrUnknownType = errors.New("unknown chat message type")

// Message represents all data channel messages
type Message struct {
	Type    string             `msgpack:"type"`
	Payload msgpack.RawMessage `msgpack:"payload,omitempty"`
}

// TextPayload carries one line typed by a peer.
type TextPayload struct {
	Text   string `msgpack:"text"`
	SentAt int64  `msgpack:"sentAt"`
}

// Time returns when the line was sent.
func (p TextPayload) Time() time.Time {
	return time.UnixMilli(p.SentAt)
}

// DecodePayload decodes the message payload into the provided struct
func (m Message) DecodePayload(v any) error {
	return msgpack.Unmarshal(m.Payload, v)
}

// NewMessage creates a new Message with the given type and payload
func NewMessage(t string, payload any) (Message, error) {
	if payload == nil {
		return Message{Type: t}, nil
	}
	b, err := msgpack.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: b}, nil
}

// EncodeText packs a text line stamped with now.
func EncodeText(text string, now time.Time) ([]byte, error) {
	msg, err := NewMessage(TypeText, TextPayload{Text: text, SentAt: now.UnixMilli()})
	if err != nil {
		return nil, err
	}
	return msgpack.Marshal(msg)
}

// EncodeBye packs the farewell sent before a peer closes the channel.
func EncodeBye() ([]byte, error) {
	return msgpack.Marshal(Message{Type: TypeBye})
}

// Decode unpacks a data channel frame.
func Decode(data []byte) (Message, error) {
	var msg Message
	if err := msgpack.Unmarshal(data, &msg); err != nil {
		return Message{}, fmt.Errorf("decode chat message: %w", err)
	}
	switch msg.Type {
	case TypeText, TypeBye:
		return msg, nil
	}
	return Message{}, fmt.Errorf("%w: %q", ErrUnknownType, msg.Type)
}
