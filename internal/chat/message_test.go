package chat

import (
	"errors"
	"testing"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

func TestTextMessage(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_123)
	data, err := EncodeText("hello there", now)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	msg, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Type != TypeText {
		t.Fatalf("expected %s, got %s", TypeText, msg.Type)
	}

	var p TextPayload
	if err := msg.DecodePayload(&p); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if p.Text != "hello there" {
		t.Errorf("unexpected text %q", p.Text)
	}
	if !p.Time().Equal(now) {
		t.Errorf("expected %v, got %v", now, p.Time())
	}
}

func TestByeMessage(t *testing.T) {
	data, err := EncodeBye()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	msg, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Type != TypeBye || len(msg.Payload) != 0 {
		t.Errorf("unexpected bye %+v", msg)
	}
}

func TestDecodeRejectsUnknownType(t *testing.T) {
	data, err := msgpack.Marshal(Message{Type: "chunk"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(data); !errors.Is(err, ErrUnknownType) {
		t.Errorf("expected ErrUnknownType, got %v", err)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte{0xc1}); err == nil {
		t.Error("expected an error for invalid msgpack")
	}
}
